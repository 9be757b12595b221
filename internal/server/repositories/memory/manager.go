// Package memory provides map-backed repositories behind the same
// RepositoryManager contract as the PostgreSQL ones. The DBTX argument is
// ignored, so writes inside a rolled-back transaction are not undone.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

type InMemoryRepositoryManager struct {
	store *store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: newStore()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return &UserRepository{s: m.store}
}

func (m *InMemoryRepositoryManager) Posts(dbx.DBTX) posts.Repository {
	return &PostRepository{s: m.store}
}

func (m *InMemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return &RefreshTokenRepository{s: m.store}
}

// store is shared by all repositories of one manager so that joins
// (post author) see the same users.
type store struct {
	mu            sync.RWMutex
	users         map[string]models.User
	posts         map[string]postRow
	refreshTokens map[string]models.RefreshToken
	seq           int64
}

func newStore() *store {
	return &store{
		users:         map[string]models.User{},
		posts:         map[string]postRow{},
		refreshTokens: map[string]models.RefreshToken{},
	}
}
