package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/google/uuid"
)

type postRow struct {
	models.Post
	seq int64
}

type UserRepository struct{ s *store }

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type PostRepository struct{ s *store }

func (r *PostRepository) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return nil, common.ErrUserNotFound
	}
	r.s.seq++
	now := time.Now()
	post.ID = uuid.NewString()
	post.CreatedAt, post.UpdatedAt = now, now
	r.s.posts[post.ID] = postRow{Post: *post, seq: r.s.seq}
	return post, nil
}

func (r *PostRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.s.withAuthor(row.Post), nil
}

func (r *PostRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Post, error) {
	return r.GetByID(ctx, id)
}

func (r *PostRepository) List(_ context.Context) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]postRow, 0, len(r.s.posts))
	for _, row := range r.s.posts {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	result := make([]*models.Post, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.s.withAuthor(row.Post))
	}
	return result, nil
}

func (r *PostRepository) Update(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.posts[post.ID]
	if !ok {
		return common.ErrorNotFound
	}
	row.Title, row.Content, row.UpdatedAt = post.Title, post.Content, time.Now()
	r.s.posts[post.ID] = row
	return nil
}

func (r *PostRepository) SetImageKey(_ context.Context, id string, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	row.ImageKey, row.UpdatedAt = key, time.Now()
	r.s.posts[id] = row
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.posts, id)
	return nil
}

// withAuthor must be called with s.mu held.
func (s *store) withAuthor(p models.Post) *models.Post {
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = models.Author{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return &p
}

type RefreshTokenRepository struct{ s *store }

func (r *RefreshTokenRepository) Create(_ context.Context, token *models.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.refreshTokens[token.Token] = *token
	return nil
}

func (r *RefreshTokenRepository) Consume(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.refreshTokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.s.refreshTokens, token)
	return &t, nil
}

func (r *RefreshTokenRepository) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.refreshTokens, token)
	return nil
}
