// Package posts declares the server-side repository contract for blog posts
// and provides its PostgreSQL implementation.
package posts

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository defines persistence operations on posts. Reads return posts
// with Author populated from the users table.
type Repository interface {
	// Create inserts post and fills in ID, CreatedAt and UpdatedAt. An
	// AuthorID that does not reference a user yields common.ErrUserNotFound.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)

	// GetByID returns common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Post, error)

	// GetByIDForUpdate is GetByID that also locks the row until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Post, error)

	// List returns all posts, newest first.
	List(ctx context.Context) ([]*models.Post, error)

	// Update writes Title and Content and bumps updated_at.
	Update(ctx context.Context, post *models.Post) error

	// SetImageKey records the object-storage key of the post's cover image.
	SetImageKey(ctx context.Context, id string, key string) error

	// Delete removes a post, returning common.ErrorNotFound when absent.
	Delete(ctx context.Context, id string) error
}
