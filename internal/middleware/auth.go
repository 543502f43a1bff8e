package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/token"
)

const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
	ContextEmail    = "userEmail"
)

func AuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserType, claims.UserType)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// RequireUserType gates a route group to one audience, e.g. providers
// only.
func RequireUserType(userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserType) != userType {
			httperr.Forbidden(c, httperr.CodeOwnership, "wrong account type for this resource")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's ID from context.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
