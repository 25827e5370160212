package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/internal/service"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

// RequireUser protects routes by requiring a valid user session token.
func RequireUser(tokens *service.TokenService) gin.HandlerFunc {
	return requireKind(tokens, models.TokenKindUser)
}

// RequireAdmin protects routes by requiring a valid admin session token.
// User tokens are rejected here the same way forged ones are.
func RequireAdmin(tokens *service.TokenService) gin.HandlerFunc {
	return requireKind(tokens, models.TokenKindAdmin)
}

func requireKind(tokens *service.TokenService, kind models.TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1], kind)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// CurrentClaims extracts the session claims stored by RequireUser or
// RequireAdmin. The second return is false on unprotected routes.
func CurrentClaims(c *gin.Context) (*models.SessionClaims, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.SessionClaims)
	return claims, ok
}
