package middleware

import (
	"net/http"
	"strings"

	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// LoginPath is where browser-facing endpoints send anonymous users.
const LoginPath = "/login"

// RequireAuth is a Gin middleware for JWT authentication of API requests.
// Missing or invalid credentials get a 403 JSON error.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromRequest(c, authService)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RequireAuthOrRedirect guards browser-facing pages: anonymous users are
// redirected to the login page instead of receiving an error body.
func RequireAuthOrRedirect(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromRequest(c, authService)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func claimsFromRequest(c *gin.Context, authService service.AuthService) (*service.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *service.Claims) {
	c.Set("claims", claims)
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
}

// UserID pulls the authenticated user id out of the request context.
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
