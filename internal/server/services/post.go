package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/storage"
	"github.com/google/uuid"
)

// ImageStore presigns object-storage URLs for post cover images.
type ImageStore interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// PostService implements post CRUD. Reads are public; callers are expected
// to have checked the admin role before any mutation.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageStore
	newKey      func(postID string) string
}

// NewPostService builds the service. images may be nil, in which case
// AttachImage reports common.ErrStorageUnavailable.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager, images ImageStore) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		images:      images,
		newKey:      storage.NewObjectKey,
	}
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repomanager.Posts(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	for _, p := range posts {
		if err := s.attachImageURL(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "error loading post")
	}
	if err := s.attachImageURL(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Create stores a post by authorID. Title and content must be non-blank.
func (s *PostService) Create(ctx context.Context, authorID, title, content string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrValidation)
	}
	if !validID(authorID) {
		return nil, common.ErrUserNotFound
	}

	author, err := s.repomanager.Users(s.db).GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading author: %w", err)
	}

	post, err := s.repomanager.Posts(s.db).Create(ctx, &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
	})
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	post.Author = models.Author{ID: author.ID, Name: author.Name, Email: author.Email}
	return post, nil
}

// Update replaces title and content; an empty argument keeps the stored value.
// The read-modify-write runs under a row lock.
func (s *PostService) Update(ctx context.Context, id, title, content string) (*models.Post, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	var post *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		current, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return wrapNotFound(err, "error loading post")
		}
		if strings.TrimSpace(title) != "" {
			current.Title = title
		}
		if strings.TrimSpace(content) != "" {
			current.Content = content
		}
		if err := repo.Update(ctx, current); err != nil {
			return wrapNotFound(err, "error updating post")
		}

		post, err = repo.GetByID(ctx, id)
		if err != nil {
			return wrapNotFound(err, "error reloading post")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachImageURL(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Posts(s.db).Delete(ctx, id); err != nil {
		return wrapNotFound(err, "error deleting post")
	}
	return nil
}

// AttachImage assigns a new cover image key to the post and returns it with
// a presigned upload URL. The previous image, if any, is left in the bucket.
func (s *PostService) AttachImage(ctx context.Context, id string) (key string, uploadURL string, err error) {
	if s.images == nil {
		return "", "", common.ErrStorageUnavailable
	}
	if !validID(id) {
		return "", "", common.ErrorNotFound
	}

	key = s.newKey(id)
	uploadURL, err = s.images.PresignPut(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if err := s.repomanager.Posts(s.db).SetImageKey(ctx, id, key); err != nil {
		return "", "", wrapNotFound(err, "error saving image key")
	}
	return key, uploadURL, nil
}

func (s *PostService) attachImageURL(ctx context.Context, post *models.Post) error {
	if post.ImageKey == "" || s.images == nil {
		return nil
	}
	u, err := s.images.PresignGet(ctx, post.ImageKey)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	post.ImageURL = u
	return nil
}

// validID reports whether id can be a stored UUID. Anything else cannot
// match a row and is treated as missing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// wrapNotFound passes common.ErrorNotFound through and wraps anything else.
func wrapNotFound(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
