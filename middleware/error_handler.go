package middleware

import (
	"runtime/debug"

	"backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery converts panics into a 500 response and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"requestId": c.GetString("request_id"),
					"path":      c.Request.URL.Path,
					"panic":     r,
					"stack":     string(debug.Stack()),
				}).Error("Panic recovered")

				utils.InternalServerErrorResponse(c, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
