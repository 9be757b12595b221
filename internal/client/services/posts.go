package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/netx"
)

// PostService reads posts anonymously and runs the admin operations with the
// current session's token.
type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, title, content string) (*models.Post, error)
	Update(ctx context.Context, id, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, data []byte) (string, error)
}

type postService struct {
	client client.Client
	auth   AuthService
	upload func(ctx context.Context, url, contentType string, data []byte) error
}

func NewPostService(client client.Client, auth AuthService) PostService {
	return &postService{client: client, auth: auth, upload: netx.UploadToPresignedURL}
}

func (p *postService) List(ctx context.Context) ([]*models.Post, error) {
	return p.client.ListPosts(ctx)
}

func (p *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	return p.client.GetPost(ctx, id)
}

func (p *postService) Create(ctx context.Context, title, content string) (*models.Post, error) {
	var post *models.Post
	err := p.auth.WithToken(ctx, func(ctx context.Context, token string) error {
		var err error
		post, err = p.client.CreatePost(ctx, token, title, content)
		return err
	})
	return post, err
}

func (p *postService) Update(ctx context.Context, id, title, content string) (*models.Post, error) {
	var post *models.Post
	err := p.auth.WithToken(ctx, func(ctx context.Context, token string) error {
		var err error
		post, err = p.client.UpdatePost(ctx, token, id, title, content)
		return err
	})
	return post, err
}

func (p *postService) Delete(ctx context.Context, id string) error {
	return p.auth.WithToken(ctx, func(ctx context.Context, token string) error {
		return p.client.DeletePost(ctx, token, id)
	})
}

// UploadImage requests an upload target for the post and PUTs data to it.
// It returns the new object key.
func (p *postService) UploadImage(ctx context.Context, id string, data []byte) (string, error) {
	var target *client.ImageUpload
	err := p.auth.WithToken(ctx, func(ctx context.Context, token string) error {
		var err error
		target, err = p.client.AttachImage(ctx, token, id)
		return err
	})
	if err != nil {
		return "", err
	}

	if err := p.upload(ctx, target.UploadURL, http.DetectContentType(data), data); err != nil {
		return "", err
	}
	return target.Key, nil
}
