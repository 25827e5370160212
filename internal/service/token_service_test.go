package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

func newTokenService() *TokenService {
	return NewTokenService(TokenConfig{
		Secret:      "test-secret",
		UserExpiry:  time.Hour,
		AdminExpiry: time.Hour,
		Issuer:      "unimate-test",
	})
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := newTokenService()

	token, err := svc.Issue(42, "alice", models.TokenKindUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token, models.TokenKindUser)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.PrincipalID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.TokenKindUser, claims.Kind)
}

func TestTokenServiceRejectsCrossKind(t *testing.T) {
	svc := newTokenService()

	userToken, err := svc.Issue(42, "alice", models.TokenKindUser)
	require.NoError(t, err)
	adminToken, err := svc.Issue(1, "root", models.TokenKindAdmin)
	require.NoError(t, err)

	_, err = svc.Verify(userToken, models.TokenKindAdmin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.Verify(adminToken, models.TokenKindUser)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestTokenServiceRejectsForgedToken(t *testing.T) {
	svc := newTokenService()
	other := NewTokenService(TokenConfig{Secret: "other-secret", UserExpiry: time.Hour, AdminExpiry: time.Hour})

	forged, err := other.Issue(42, "alice", models.TokenKindUser)
	require.NoError(t, err)

	_, err = svc.Verify(forged, models.TokenKindUser)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "test-secret", UserExpiry: time.Millisecond, AdminExpiry: time.Hour})

	token, err := svc.Issue(42, "alice", models.TokenKindUser)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.Verify(token, models.TokenKindUser)
	require.Error(t, err)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	svc := newTokenService()

	_, err := svc.Verify("not-a-token", models.TokenKindUser)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
