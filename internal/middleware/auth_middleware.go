package middleware

import (
	"strings"

	"leadroll/internal/services"
	"leadroll/pkg/jwt"
	"leadroll/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards routes behind JWT authentication
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.Manager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		userService: services.NewUserService(),
		jwtManager:  jwt.GetManager(),
	}
}

// RequireLogin rejects requests without a valid bearer token and stores the
// caller identity in the request context
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "No authenticated user")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Malformed authorization header")
			c.Abort()
			return
		}

		tokenString := authHeader[7:]

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token invalid or expired")
			c.Abort()
			return
		}

		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		if !m.userService.IsActive(user) {
			response.Unauthorized(c, "Account disabled")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("claims", claims)

		c.Next()
	}
}

// UserID extracts the authenticated caller's id from the request context
func UserID(c *gin.Context) uint {
	id, _ := c.Get("user_id")
	userID, _ := id.(uint)
	return userID
}
