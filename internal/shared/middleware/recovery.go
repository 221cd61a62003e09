package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"diary-backend/internal/shared/response"
	"diary-backend/pkg/logger"
)

// Recovery turns panics into a 500 response instead of tearing down the
// connection. The panic value and the request id end up in the log.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					fmt.Errorf("request %s %s %s: %v",
						c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, r))
				response.InternalServerError(c, "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
