package client

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
)

// AuthResult is returned by the calls that issue tokens. User is not set by
// Refresh.
type AuthResult struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	Role         string       `json:"role"`
	User         *models.User `json:"user,omitempty"`
}

// ImageUpload is a presigned PUT target for a post cover image.
type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

type Client interface {
	Ping(ctx context.Context) error
	Signup(ctx context.Context, name, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, token string) (*models.User, error)
	ListPosts(ctx context.Context) ([]*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, token, title, content string) (*models.Post, error)
	UpdatePost(ctx context.Context, token, id, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, token, id string) error
	AttachImage(ctx context.Context, token, id string) (*ImageUpload, error)
}
