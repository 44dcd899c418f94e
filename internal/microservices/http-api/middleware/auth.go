package middleware

import (
	"errors"
	"net/http"
	"strings"

	"takosu/internal/microservices/http-api/service"
	"takosu/internal/shared"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests
// It checks for the presence and validity of a JWT token in the Authorization header
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrExpiredToken) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		SetViewer(c, claims.AuthClaims)
		c.Next()
	}
}

// SetViewer stores the authenticated user in the context for handlers to use.
func SetViewer(c *gin.Context, claims shared.AuthClaims) {
	c.Set(claimsKey, claims)
	c.Set("userID", claims.UserID)
	c.Set("isAdmin", claims.IsAdmin)
}

// Viewer returns the authenticated user set by AuthMiddleware.
func Viewer(c *gin.Context) (shared.AuthClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return shared.AuthClaims{}, false
	}
	claims, ok := v.(shared.AuthClaims)
	return claims, ok
}

// RequireAdmin rejects authenticated users without the admin flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
