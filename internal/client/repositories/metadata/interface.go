// Package metadata is the CLI's key/value store for the saved session.
package metadata

import (
	"context"
)

// Keys under which the session is stored.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyRole         = "role"
	KeyEmail        = "email"
)

// SessionKeys lists every key that belongs to the session.
var SessionKeys = []string{KeyToken, KeyRefreshToken, KeyRole, KeyEmail}

// Repository stores string values by key. Get reports ok=false for a key
// that was never set.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
