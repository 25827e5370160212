package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

// TokenConfig defines signing parameters for session tokens.
type TokenConfig struct {
	Secret      string
	UserExpiry  time.Duration
	AdminExpiry time.Duration
	Issuer      string
}

// TokenService issues and verifies signed, time-limited session tokens for
// the two principal kinds. Tokens are stateless; there is no revocation
// list, so logout is purely client-side.
type TokenService struct {
	config TokenConfig
}

// NewTokenService constructs a TokenService instance.
func NewTokenService(config TokenConfig) *TokenService {
	if config.UserExpiry <= 0 {
		config.UserExpiry = 24 * time.Hour
	}
	if config.AdminExpiry <= 0 {
		config.AdminExpiry = 24 * time.Hour
	}
	return &TokenService{config: config}
}

// Issue produces a signed token embedding the principal id, optional
// username and an explicit kind tag.
func (s *TokenService) Issue(principalID int64, username string, kind models.TokenKind) (string, error) {
	ttl := s.config.UserExpiry
	if kind == models.TokenKindAdmin {
		ttl = s.config.AdminExpiry
	}

	issuedAt := time.Now().UTC()
	claims := &models.SessionClaims{
		PrincipalID: principalID,
		Username:    username,
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", principalID),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// Verify parses and validates a token for the expected kind. Forged,
// malformed, expired and cross-kind tokens all collapse to the same
// unauthorized outcome.
func (s *TokenService) Verify(tokenString string, kind models.TokenKind) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	if claims.Kind != kind {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}

	return claims, nil
}
