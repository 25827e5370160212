package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/internal/service"
)

func newTestTokens() *service.TokenService {
	return service.NewTokenService(service.TokenConfig{
		Secret:      "test-secret",
		UserExpiry:  time.Hour,
		AdminExpiry: time.Hour,
	})
}

func protectedRouter(tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/user-only", RequireUser(tokens), func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": claims.PrincipalID})
	})
	r.GET("/admin-only", RequireAdmin(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireUserMissingHeader(t *testing.T) {
	r := protectedRouter(newTestTokens())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user-only", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserMalformedHeader(t *testing.T) {
	r := protectedRouter(newTestTokens())

	req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserAcceptsUserToken(t *testing.T) {
	tokens := newTestTokens()
	r := protectedRouter(tokens)

	token, err := tokens.Issue(42, "alice", models.TokenKindUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestRequireAdminRejectsUserToken(t *testing.T) {
	tokens := newTestTokens()
	r := protectedRouter(tokens)

	token, err := tokens.Issue(42, "alice", models.TokenKindUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserRejectsAdminToken(t *testing.T) {
	tokens := newTestTokens()
	r := protectedRouter(tokens)

	token, err := tokens.Issue(1, "root", models.TokenKindAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
