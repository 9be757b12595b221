// Package services contains the application services of the blog CLI.
// This file holds the session side: signup, login, logout and keeping the
// access token fresh.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
)

// ErrNotLoggedIn is returned by calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup / Login: call the server and persist the returned session.
//   - Logout: revoke the refresh token on the server and forget the session.
//   - Session: the persisted session; a zero Session when logged out.
//   - WithToken: run fn with the access token, refreshing it once if the
//     server reports it expired.
type AuthService interface {
	Signup(ctx context.Context, name, email string, password []byte, role string) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*models.Session, error)
	WithToken(ctx context.Context, fn func(ctx context.Context, token string) error) error
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and
// session database.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) Signup(ctx context.Context, name, email string, password []byte, role string) (*models.Session, error) {
	res, err := a.client.Signup(ctx, name, email, string(password), role)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	return a.startSession(ctx, email, res)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return a.startSession(ctx, email, res)
}

func (a *authService) startSession(ctx context.Context, email string, res *client.AuthResult) (*models.Session, error) {
	if res.User != nil && res.User.Email != "" {
		email = res.User.Email
	}
	s := &models.Session{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		Role:         res.Role,
		Email:        email,
	}
	if err := a.saveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

// saveSession replaces the stored session in a single transaction.
func (a *authService) saveSession(ctx context.Context, s *models.Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		values := map[string]string{
			metadata.KeyToken:        s.Token,
			metadata.KeyRefreshToken: s.RefreshToken,
			metadata.KeyRole:         s.Role,
			metadata.KeyEmail:        s.Email,
		}
		for _, k := range metadata.SessionKeys {
			if err := repo.Set(ctx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) clearSession(ctx context.Context) error {
	return a.getMetadataRepo(a.db).Delete(ctx, metadata.SessionKeys...)
}

func (a *authService) Session(ctx context.Context) (*models.Session, error) {
	m, err := a.getMetadataRepo(a.db).List(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		Token:        m[metadata.KeyToken],
		RefreshToken: m[metadata.KeyRefreshToken],
		Role:         m[metadata.KeyRole],
		Email:        m[metadata.KeyEmail],
	}, nil
}

// Logout forgets the local session even when the server cannot be reached.
// A refresh token the server no longer knows is not an error.
func (a *authService) Logout(ctx context.Context) error {
	s, err := a.Session(ctx)
	if err != nil {
		return err
	}
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}

	serverErr := a.client.Logout(ctx, s.RefreshToken)
	if err := a.clearSession(ctx); err != nil {
		return err
	}
	if serverErr != nil && !errors.Is(serverErr, client.ErrUnauthorized) {
		return fmt.Errorf("logged out locally, server logout failed: %w", serverErr)
	}
	return nil
}

// refresh rotates the token pair. A rejected refresh token ends the session.
func (a *authService) refresh(ctx context.Context, s *models.Session) (*models.Session, error) {
	res, err := a.client.Refresh(ctx, s.RefreshToken)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if cerr := a.clearSession(ctx); cerr != nil {
				return nil, cerr
			}
			return nil, fmt.Errorf("session expired, log in again: %w", err)
		}
		return nil, fmt.Errorf("refresh error: %w", err)
	}

	next := &models.Session{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		Role:         res.Role,
		Email:        s.Email,
	}
	if err := a.saveSession(ctx, next); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return next, nil
}

func (a *authService) WithToken(ctx context.Context, fn func(ctx context.Context, token string) error) error {
	s, err := a.Session(ctx)
	if err != nil {
		return err
	}
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}

	err = fn(ctx, s.Token)
	if !errors.Is(err, common.ErrTokenExpired) || s.RefreshToken == "" {
		return err
	}

	s, err = a.refresh(ctx, s)
	if err != nil {
		return err
	}
	return fn(ctx, s.Token)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	var u *models.User
	err := a.WithToken(ctx, func(ctx context.Context, token string) error {
		var err error
		u, err = a.client.Me(ctx, token)
		return err
	})
	return u, err
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
