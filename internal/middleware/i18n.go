// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexcart/storefront/internal/utils"
)

func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if defaultLang == "" {
		defaultLang = "en"
	}

	return func(c *gin.Context) {
		utils.SetLangInContext(c, parseAcceptLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// parseAcceptLanguage picks a locale from the first entry of the header,
// e.g. "zh-TW,zh;q=0.9,en;q=0.8".
func parseAcceptLanguage(header, defaultLang string) string {
	if header == "" {
		return defaultLang
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	switch first {
	case "zh-TW", "zh-Hant", "zh_TW", "zh-HK", "zh":
		return "zh_TW"
	case "en", "en-US", "en-GB":
		return "en"
	default:
		return defaultLang
	}
}
