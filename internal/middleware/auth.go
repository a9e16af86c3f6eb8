package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/scholarship-api/internal/access"
	"github.com/harentsoaR/scholarship-api/internal/models"
	"github.com/harentsoaR/scholarship-api/internal/store"
	"github.com/harentsoaR/scholarship-api/internal/utils"
)

const emailKey = "email"

// AuthMiddleware requires a valid bearer token and puts its email on the context.
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		claims, err := tokens.ValidateJWT(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// Email is the verified email set by AuthMiddleware, or "" on open routes.
func Email(c *gin.Context) string {
	return c.GetString(emailKey)
}

// RequireRole lets the request through only when the verified caller holds one
// of roles. It must run after AuthMiddleware.
func RequireRole(users store.Repository[models.User], log *zap.Logger, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := Email(c)
		decision, err := access.Authorize(c.Request.Context(), users, email, roles...)
		if err != nil {
			log.Error("role check failed", zap.String("email", email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify role."})
			return
		}
		if !decision.Allowed {
			log.Info("forbidden", zap.String("email", email), zap.String("path", c.FullPath()), zap.String("reason", decision.Reason))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}

func VerifyAdmin(users store.Repository[models.User], log *zap.Logger) gin.HandlerFunc {
	return RequireRole(users, log, access.AdminOnly...)
}

func VerifyModerator(users store.Repository[models.User], log *zap.Logger) gin.HandlerFunc {
	return RequireRole(users, log, access.ModeratorOrMore...)
}
