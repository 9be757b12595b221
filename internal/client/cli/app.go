package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/services"
	"github.com/dmitrijs2005/gophblog/internal/filex"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	postService services.PostService
	session     *models.Session
	reader      *bufio.Reader
	out         io.Writer
	logger      logging.Logger
	db          *sql.DB
}

// NewApp opens the session store under cfg.StateDir and connects the
// services to the API at cfg.ServerURL. Nothing is sent to the server yet.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, "warn")

	dir, err := filex.EnsureDir(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, config.StateFile))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db)
	ps := services.NewPostService(apiClient, as)

	return &App{
		config:      cfg,
		authService: as,
		postService: ps,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		logger:      logger,
		db:          db,
	}, nil
}

// Run restores the saved session and serves the REPL until the user exits,
// stdin closes or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	a.loadSession(ctx)
	if err := a.authService.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "server not reachable", "url", a.config.ServerURL, "error", err)
		fmt.Fprintf(a.out, "Server %s is not reachable, commands will fail until it is up\n", a.config.ServerURL)
	}

	fmt.Fprintln(a.out, "Blog CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string {
		a.loadSession(ctx)
		return a.getStatus()
	}, a.reader, a.out)
	return nil
}

// loadSession re-reads the stored session; a token refresh inside a command
// may have changed it.
func (a *App) loadSession(ctx context.Context) {
	s, err := a.authService.Session(ctx)
	if err != nil {
		a.logger.Error(ctx, "error reading session", "error", err)
		return
	}
	a.session = s
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.session.Email, a.session.Role)
}
