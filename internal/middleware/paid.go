package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
)

// PaidChecker answers whether a user has unlocked paid access.
type PaidChecker interface {
	CheckPaid(ctx context.Context, userID int64) (*models.PaidStatusResponse, error)
}

// RequirePaid gates a route behind a confirmed payment. It must run after
// RequireUser so the session claims are available.
func RequirePaid(checker PaidChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		status, err := checker.CheckPaid(c.Request.Context(), claims.PrincipalID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if !status.HasPaid {
			response.Error(c, appErrors.ErrPaymentRequired)
			c.Abort()
			return
		}

		c.Next()
	}
}
