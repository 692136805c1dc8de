package middlewares

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const localeKey = "locale"

// Locale picks the response locale from the locale query parameter, then the
// first parseable Accept-Language entry, then fallback.
func Locale(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localeKey, negotiate(c.Query("locale"), c.GetHeader("Accept-Language"), fallback))
		c.Next()
	}
}

// LocaleFromContext returns the negotiated locale.
func LocaleFromContext(c *gin.Context) string {
	return c.GetString(localeKey)
}

func negotiate(explicit, acceptLanguage, fallback string) string {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			return tag.String()
		}
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil {
			for _, tag := range tags {
				if tag != language.Und {
					return tag.String()
				}
			}
		}
	}
	return fallback
}
