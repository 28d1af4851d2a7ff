package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/items-api/internal/auth"
	"github.com/yukikurage/items-api/internal/constants"
	apierrors "github.com/yukikurage/items-api/internal/errors"
)

// RequireAuth checks that the request carries a valid token via the configured transport
func RequireAuth(tokens *auth.TokenIssuer, transport auth.Transport) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := transport.Extract(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	v, ok := userID.(uint64)
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}
