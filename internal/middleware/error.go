package middleware

import (
	"leadroll/pkg/logger"
	"leadroll/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics and turns them into a server error response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				appLogger := logger.GetLogger()
				appLogger.Errorf("Panic recovered: %v", err)
				response.ServerError(c, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
