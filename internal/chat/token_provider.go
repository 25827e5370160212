// Package chat mints server-side credentials for the hosted messaging
// service. The service's API secret never leaves the server; clients only
// receive short-lived tokens scoped to their own user id.
package chat

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unimate-app/unimate-api/pkg/config"
)

// ErrMissingSecret is returned when the chat service is not configured.
var ErrMissingSecret = errors.New("chat api secret is not configured")

// TokenProvider signs chat tokens with the hosted service's API secret.
type TokenProvider struct {
	apiKey string
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider constructs a provider from the chat configuration.
func NewTokenProvider(cfg config.ChatConfig) *TokenProvider {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenProvider{apiKey: cfg.APIKey, secret: []byte(cfg.APISecret), ttl: ttl}
}

// Mint issues a chat token for the given user id, in the claim shape the
// hosted chat service expects.
func (p *TokenProvider) Mint(userID string) (string, error) {
	if len(p.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(p.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// APIKey exposes the public chat API key clients need to connect.
func (p *TokenProvider) APIKey() string {
	return p.apiKey
}
