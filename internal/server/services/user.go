// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, and issuing/refreshing JWTs plus
// server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	MaxPasswordLength = 72
)

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	Issue(userID string, role models.Role) (string, error)
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService owns accounts and the tokens issued to them.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	tokens                       TokenIssuer
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int
	dummyHash                    []byte
	now                          func() time.Time
}

// NewUserService hashes passwords at bcrypt.DefaultCost.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, refreshTokenValidity time.Duration) *UserService {
	return newUserService(db, m, tokens, refreshTokenValidity, bcrypt.DefaultCost)
}

func newUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, refreshTokenValidity time.Duration, cost int) *UserService {
	// compared against for unknown emails so that both login failures cost a bcrypt round
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt: %v", err))
	}
	return &UserService{
		db:                           db,
		repomanager:                  m,
		tokens:                       tokens,
		refreshTokenValidityDuration: refreshTokenValidity,
		bcryptCost:                   cost,
		dummyHash:                    dummy,
		now:                          time.Now,
	}
}

// Signup creates an account and signs the new user in. An empty role means
// models.RoleUser.
func (s *UserService) Signup(ctx context.Context, name, email, password, role string) (*models.User, *TokenPair, error) {
	name = strings.TrimSpace(name)
	email = models.NormalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, nil, fmt.Errorf("%w: invalid email", common.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return nil, nil, fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, MaxPasswordLength)
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	var (
		user *models.User
		pair *TokenPair
	)
	// the account and its first refresh token are stored together or not at all
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         r,
		})
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return fmt.Errorf("%w: email is already registered", common.ErrAlreadyExists)
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login checks the credentials and returns the user with a fresh token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, user, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh redeems a refresh token for a new pair. The old token is consumed
// in the same transaction that stores its replacement, and the access token
// carries the user's current role.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, fmt.Errorf("%w: refresh_token is required", common.ErrValidation)
	}

	var (
		user *models.User
		pair *TokenPair
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}
		if token.Expires.Before(s.now()) {
			return common.ErrRefreshTokenExpired
		}

		user, err = s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, user, tx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("%w: refresh_token is required", common.ErrValidation)
	}
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// Profile returns the stored user, or common.ErrorNotFound.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, common.ErrorNotFound
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, db dbx.DBTX) (*TokenPair, error) {
	access, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}
	refresh, err := common.MakeRandHexString(common.RefreshTokenSize)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token: %v", common.ErrorInternal, err)
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, &models.RefreshToken{
		UserID:  user.ID,
		Token:   refresh,
		Expires: s.now().Add(s.refreshTokenValidityDuration),
	}); err != nil {
		return nil, fmt.Errorf("%w: store refresh token: %v", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
