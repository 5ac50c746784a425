// internal/utils/context.go
package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/nexcart/storefront/internal/models"
)

const (
	userContextKey      = "user"
	langContextKey      = "lang"
	requestIDContextKey = "request_id"
)

func SetUserInContext(c *gin.Context, user *models.User) {
	c.Set(userContextKey, user)
}

// GetUserFromContext returns the logged-in user loaded by the auth middleware.
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	if v, exists := c.Get(userContextKey); exists {
		if user, ok := v.(*models.User); ok && user != nil {
			return user, true
		}
	}
	return nil, false
}

func SetLangInContext(c *gin.Context, lang string) {
	c.Set(langContextKey, lang)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get(langContextKey); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func SetRequestIDInContext(c *gin.Context, id string) {
	c.Set(requestIDContextKey, id)
}

func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
