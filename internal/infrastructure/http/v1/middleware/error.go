package middleware

import (
	"github.com/gin-gonic/gin"

	"tokopos/internal/core/apperror"
	"tokopos/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON
// responses of the form {error, details?}. The user-facing message is
// localized from the error's message key; internal causes are logged,
// never exposed.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			body := gin.H{
				"error": localizedMessage(c, appErr),
				"code":  appErr.Code,
			}
			if len(appErr.Details) > 0 {
				body["details"] = appErr.Details
			}

			c.JSON(appErr.HTTPStatus, body)
			return
		}

		// Unknown error: log and return a generic message.
		logger.Error(c.Request.Context(), "unhandled error", "error", err)

		msg := "Internal server error"
		if loc := GetLocalizer(c); loc != nil {
			msg = loc.T("serverError")
		}

		c.JSON(500, gin.H{
			"error": msg,
			"code":  apperror.CodeInternal,
			"details": map[string]any{
				"request_id": c.GetString("request_id"),
			},
		})
	}
}

// localizedMessage resolves the error's message key against the request
// locale, falling back to the error's own message.
func localizedMessage(c *gin.Context, appErr *apperror.AppError) string {
	if appErr.MessageKey == "" {
		return appErr.Message
	}

	loc := GetLocalizer(c)
	if loc == nil {
		return appErr.Message
	}

	msg := loc.T(appErr.MessageKey)
	if msg == appErr.MessageKey && appErr.Message != "" {
		// No catalog entry; the raw message is more useful than the key.
		return appErr.Message
	}
	return msg
}
