package middleware

import (
	"strings"

	"github.com/folio-space/core/internal/pkg/jwt"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"
)

// Auth rejects requests without a valid bearer token. The token alone is
// trusted: signature and expiry are re-checked on every call.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// CurrentEmail extracts the authenticated email from context.
func CurrentEmail(c *gin.Context) string {
	return c.GetString(ContextKeyEmail)
}

// IsAuthenticated returns true if the request passed Auth.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

// HasCredentials reports whether the request carries an Authorization header.
func HasCredentials(c *gin.Context) bool {
	return extractToken(c) != ""
}

func extractToken(c *gin.Context) string {
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
