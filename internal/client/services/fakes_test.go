package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client. Tokens it hands out are accepted
// until expire() is called.
type fakeClient struct {
	SignupErr  error
	LoginErr   error
	LogoutErr  error
	RefreshErr error
	PingErr    error

	Role string

	valid        string
	issued       int
	refreshCalls int
	lastRefresh  string
	loggedOut    []string
	tokensSeen   []string

	posts  map[string]*models.Post
	upload *client.ImageUpload
}

func newFakeClient() *fakeClient {
	return &fakeClient{Role: "admin", posts: map[string]*models.Post{}}
}

func (f *fakeClient) issue() *client.AuthResult {
	f.issued++
	f.valid = "access-" + string(rune('0'+f.issued))
	return &client.AuthResult{
		Token:        f.valid,
		RefreshToken: "refresh-" + string(rune('0'+f.issued)),
		Role:         f.Role,
	}
}

func (f *fakeClient) expire() { f.valid = "" }

func (f *fakeClient) check(token string) error {
	f.tokensSeen = append(f.tokensSeen, token)
	if token == "" || token != f.valid {
		return tokenExpiredErr
	}
	return nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Signup(ctx context.Context, name, email, password, role string) (*client.AuthResult, error) {
	if f.SignupErr != nil {
		return nil, f.SignupErr
	}
	f.Role = role
	res := f.issue()
	res.User = &models.User{ID: "u1", Name: name, Email: email, Role: role}
	return res, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*client.AuthResult, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.issue(), nil
}

func (f *fakeClient) Refresh(ctx context.Context, refreshToken string) (*client.AuthResult, error) {
	f.refreshCalls++
	f.lastRefresh = refreshToken
	if f.RefreshErr != nil {
		return nil, f.RefreshErr
	}
	return f.issue(), nil
}

func (f *fakeClient) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, refreshToken)
	return f.LogoutErr
}

func (f *fakeClient) Me(ctx context.Context, token string) (*models.User, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	return &models.User{ID: "u1", Role: f.Role}, nil
}

func (f *fakeClient) ListPosts(ctx context.Context) ([]*models.Post, error) {
	out := make([]*models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeClient) GetPost(ctx context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return p, nil
}

func (f *fakeClient) CreatePost(ctx context.Context, token, title, content string) (*models.Post, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	p := &models.Post{ID: "p" + string(rune('0'+len(f.posts)+1)), Title: title, Content: content}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakeClient) UpdatePost(ctx context.Context, token, id, title, content string) (*models.Post, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	if title != "" {
		p.Title = title
	}
	if content != "" {
		p.Content = content
	}
	return p, nil
}

func (f *fakeClient) DeletePost(ctx context.Context, token, id string) error {
	if err := f.check(token); err != nil {
		return err
	}
	if _, ok := f.posts[id]; !ok {
		return client.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeClient) AttachImage(ctx context.Context, token, id string) (*client.ImageUpload, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	if f.upload == nil {
		return nil, client.ErrUnavailable
	}
	return f.upload, nil
}
