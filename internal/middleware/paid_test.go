package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

type fakePaidChecker struct {
	paid map[int64]bool
	err  error
}

func (f *fakePaidChecker) CheckPaid(ctx context.Context, userID int64) (*models.PaidStatusResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PaidStatusResponse{HasPaid: f.paid[userID]}, nil
}

func paidRouter(checker PaidChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := newTestTokens()
	r := gin.New()
	r.GET("/gated", RequireUser(tokens), RequirePaid(checker), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func bearerFor(t *testing.T, userID int64) string {
	t.Helper()
	token, err := newTestTokens().Issue(userID, "user", models.TokenKindUser)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequirePaidAllowsPaidUser(t *testing.T) {
	r := paidRouter(&fakePaidChecker{paid: map[int64]bool{1: true}})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", bearerFor(t, 1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePaidBlocksUnpaidUser(t *testing.T) {
	r := paidRouter(&fakePaidChecker{paid: map[int64]bool{}})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", bearerFor(t, 2))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), appErrors.ErrPaymentRequired.Code)
}

func TestRequirePaidPropagatesLookupError(t *testing.T) {
	r := paidRouter(&fakePaidChecker{err: appErrors.Clone(appErrors.ErrNotFound, "User not found")})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", bearerFor(t, 3))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
