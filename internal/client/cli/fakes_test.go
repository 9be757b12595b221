package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/services"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

type fakeAuth struct {
	session *models.Session
	user    *models.User
	err     error

	signupArgs []string
	password   []byte
	logouts    int
}

func (f *fakeAuth) Signup(_ context.Context, name, email string, pw []byte, role string) (*models.Session, error) {
	f.signupArgs = []string{name, email, role}
	f.password = append([]byte(nil), pw...)
	if f.err != nil {
		return nil, f.err
	}
	if role == "" {
		role = "user"
	}
	f.session = &models.Session{Token: "t", RefreshToken: "r", Role: role, Email: email}
	return f.session, nil
}

func (f *fakeAuth) Login(_ context.Context, email string, pw []byte) (*models.Session, error) {
	f.password = append([]byte(nil), pw...)
	if f.err != nil {
		return nil, f.err
	}
	f.session = &models.Session{Token: "t", RefreshToken: "r", Role: "admin", Email: email}
	return f.session, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	f.session = &models.Session{}
	return f.err
}

func (f *fakeAuth) Session(context.Context) (*models.Session, error) {
	if f.session == nil {
		return &models.Session{}, nil
	}
	return f.session, nil
}

func (f *fakeAuth) WithToken(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	return fn(ctx, "t")
}

func (f *fakeAuth) Me(context.Context) (*models.User, error) { return f.user, f.err }
func (f *fakeAuth) Ping(context.Context) error               { return f.err }

type fakePosts struct {
	posts   []*models.Post
	err     error
	calls   []string
	created [2]string
	updated [3]string
	image   []byte
}

func (f *fakePosts) List(context.Context) ([]*models.Post, error) {
	f.calls = append(f.calls, "list")
	return f.posts, f.err
}

func (f *fakePosts) Get(_ context.Context, id string) (*models.Post, error) {
	f.calls = append(f.calls, "get "+id)
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakePosts) Create(_ context.Context, title, content string) (*models.Post, error) {
	f.created = [2]string{title, content}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: "p-new", Title: title, Content: content}, nil
}

func (f *fakePosts) Update(_ context.Context, id, title, content string) (*models.Post, error) {
	f.updated = [3]string{id, title, content}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Post{ID: id}, nil
}

func (f *fakePosts) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete "+id)
	return f.err
}

func (f *fakePosts) UploadImage(_ context.Context, id string, data []byte) (string, error) {
	f.image = data
	if f.err != nil {
		return "", f.err
	}
	return "posts/" + id + "/key", nil
}

var (
	_ services.AuthService = (*fakeAuth)(nil)
	_ services.PostService = (*fakePosts)(nil)
)

// newTestApp returns an App reading input from the given text.
func newTestApp(t *testing.T, as *fakeAuth, ps *fakePosts, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &App{
		authService: as,
		postService: ps,
		reader:      bufio.NewReader(bytes.NewBufferString(input)),
		out:         &out,
		logger:      logging.Nop{},
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), path)
	if err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	return db
}
