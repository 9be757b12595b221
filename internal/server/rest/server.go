// Package rest exposes the blog over HTTP/JSON: auth endpoints, public post
// reads, and admin-only post mutations behind bearer-token middleware.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 10 * time.Second

// UserService is the account logic the auth endpoints call.
type UserService interface {
	Signup(ctx context.Context, name, email, password, role string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.User, *services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*models.User, error)
}

// PostService is the post logic behind /posts.
type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, authorID, title, content string) (*models.Post, error)
	Update(ctx context.Context, id, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	AttachImage(ctx context.Context, id string) (string, string, error)
}

// TokenVerifier checks bearer tokens for Authenticate.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Options are the transport settings that do not come from services.
type Options struct {
	Address            string
	CorsAllowedOrigins []string
}

// Server is the HTTP transport for the blog.
type Server struct {
	opts   Options
	logger logging.Logger
	users  UserService
	posts  PostService
	tokens TokenVerifier
}

// NewServer wires the services into a Server. Call Router or Run to use it.
func NewServer(opts Options, l logging.Logger, us UserService, ps PostService, tv TokenVerifier) *Server {
	return &Server{
		opts:   opts,
		logger: l.With("module", "http_server"),
		users:  us,
		posts:  ps,
		tokens: tv,
	}
}

// Router builds the handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.signup)
		r.Post("/login", s.login)
		r.Post("/refresh", s.refresh)
		r.Post("/logout", s.logout)
		r.With(s.Authenticate).Get("/me", s.me)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.listPosts)
		r.Get("/{id}", s.getPost)

		r.Group(func(r chi.Router) {
			r.Use(s.Authenticate)
			r.Use(s.RequireRole(models.RoleAdmin))
			r.Post("/", s.createPost)
			r.Put("/{id}", s.updatePost)
			r.Delete("/{id}", s.deletePost)
			r.Post("/{id}/image", s.attachImage)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
