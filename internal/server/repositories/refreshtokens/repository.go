// Package refreshtokens declares the server-side repository contract for
// refresh tokens and provides its PostgreSQL implementation.
package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Repository defines operations for issuing, redeeming and revoking refresh tokens.
type Repository interface {
	// Create stores token. Expires must already be set.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Consume atomically removes the token and returns what it was bound to,
	// so a token can be redeemed at most once. Returns common.ErrorNotFound
	// when the token is absent.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting a non-existent token is not an error.
	Delete(ctx context.Context, token string) error
}
