// Package users declares the server-side repository contract for user
// accounts and provides its PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository defines persistence operations on user accounts.
type Repository interface {
	// Create inserts user and fills in its ID and CreatedAt. A duplicate
	// email yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by normalized email, returning
	// common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
