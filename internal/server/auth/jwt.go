// Package auth issues and verifies the signed access tokens that carry a
// user's identity and role, and moves that identity through a context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered JWT claims plus the role. The user id travels
// in the standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// Identity is what a verified token proves about its bearer.
type Identity struct {
	UserID string
	Role   models.Role
}

// TokenService signs and verifies HS256 access tokens. It is safe for
// concurrent use; the key never changes after construction.
type TokenService struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

// NewTokenService refuses an empty key so that the server cannot start
// issuing tokens anyone could forge.
func NewTokenService(secretKey []byte, validity time.Duration) (*TokenService, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("token service: empty signing key")
	}
	if validity <= 0 {
		return nil, errors.New("token service: validity must be positive")
	}
	return &TokenService{secretKey: secretKey, validity: validity, now: time.Now}, nil
}

// Validity is the lifetime of issued tokens.
func (s *TokenService) Validity() time.Duration {
	return s.validity
}

// Issue returns a signed token for userID with the given role that expires
// Validity() from now.
func (s *TokenService) Issue(userID string, role models.Role) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry. Expired tokens yield
// common.ErrTokenExpired; everything else that is wrong with the token
// (signature, algorithm, shape, subject, role) yields common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{UserID: claims.Subject, Role: claims.Role}, nil
}
