package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/constants"
	"humorpedia/internal/services"
)

// respondError writes an error as {"detail": ...} with the status carried
// by the error, defaulting to 500.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.StatusOf(err), gin.H{"detail": err.Error()})
}

// RequireAuth validates the Bearer token and stores the caller's id and
// role in the request context.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "требуется авторизация"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "ожидается заголовок вида Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := authService.ParseToken(parts[1])
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.Subject)
		c.Set(constants.ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route on a role predicate; it must run after
// RequireAuth.
func RequireRole(allowed func(role string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyRole)
		if !allowed(role) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "недостаточно прав"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}
