// Package middleware provides the gin middleware chain: panic
// recovery, tracing, request logging, locale negotiation, metrics,
// auth, and central error rendering.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"tokopos/internal/core/apperror"
	"tokopos/pkg/logger"
)

// Recovery turns panics into 500 responses. It writes the body itself
// because a panic unwinds past ErrorHandler before that middleware
// gets to render. The stack trace goes to the log only; clients see a
// generic internal error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger.Error(c.Request.Context(), "panic recovered",
				"panic", r,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)

			appErr := apperror.NewInternal(fmt.Errorf("panic: %v", r))
			_ = c.Error(appErr)

			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": appErr.Message,
					"code":  appErr.Code,
				})
				return
			}
			c.Abort()
		}()
		c.Next()
	}
}
