package middleware

import (
	"github.com/gin-gonic/gin"

	"tokopos/internal/i18n"
)

// localizerKey is the gin context key for the request localizer.
const localizerKey = "localizer"

// Locale middleware resolves the request language from Accept-Language
// and stores a localizer for the error handler and handlers to use.
// Indonesian is the default.
func Locale(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		langs := []string{}
		if hdr := c.GetHeader("Accept-Language"); hdr != "" {
			langs = append(langs, hdr)
		}
		if q := c.Query("lang"); q != "" {
			langs = append([]string{q}, langs...)
		}

		c.Set(localizerKey, bundle.Localizer(langs...))
		c.Next()
	}
}

// GetLocalizer returns the request localizer, or nil when the Locale
// middleware did not run.
func GetLocalizer(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(localizerKey); ok {
		if loc, ok := v.(*i18n.Localizer); ok {
			return loc
		}
	}
	return nil
}
