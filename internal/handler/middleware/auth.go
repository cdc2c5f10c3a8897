package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"supplier-quotes/internal/pkg/actor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator verifies bearer tokens issued by the identity provider.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const ctxUserIDKey = "user_id"

// NewAuthMiddleware accepts a nil validator, which turns every check into a no-op.
func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) Enabled() bool {
	return m.tokenValidator != nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Enabled() {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		userID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Request = c.Request.WithContext(actor.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}
