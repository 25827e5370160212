package models

import "github.com/golang-jwt/jwt/v5"

// TokenKind tags a session token with the principal space it was issued for.
// Verification rejects tokens whose kind does not match the guarded surface,
// so a user token can never reach an admin route even when the numeric ids
// collide across tables.
type TokenKind string

const (
	TokenKindUser  TokenKind = "user"
	TokenKindAdmin TokenKind = "admin"
)

// SessionClaims is the JWT payload for session tokens.
type SessionClaims struct {
	PrincipalID int64     `json:"uid"`
	Username    string    `json:"username,omitempty"`
	Kind        TokenKind `json:"kind"`
	jwt.RegisteredClaims
}
