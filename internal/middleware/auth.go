// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexcart/storefront/internal/i18n"
	"github.com/nexcart/storefront/internal/models"
	"github.com/nexcart/storefront/internal/services"
	"github.com/nexcart/storefront/internal/utils"
)

type UserLoader interface {
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
}

// LoadUser resolves the session's user id and puts the user on the context.
// A session pointing at a deleted account is logged out.
func LoadUser(store *utils.SessionStore, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := store.Load(c)
		if !sess.IsAuthenticated() {
			c.Next()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), *sess.UserID)
		switch {
		case err == nil:
			utils.SetUserInContext(c, user)
		case errors.Is(err, services.ErrUserNotFound):
			sess.LogOut()
			if err := store.Save(c, sess); err != nil {
				logrus.WithError(err).Error("Failed to save session")
			}
		default:
			logrus.WithError(err).WithField("user_id", *sess.UserID).Error("Failed to load session user")
		}

		c.Next()
	}
}

func LoginRequired(store *utils.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserFromContext(c); ok {
			c.Next()
			return
		}

		redirectWithFlash(c, store, "/login", models.FlashInfo, i18n.KeyAuthRequired)
	}
}

// AdminRequired must run after LoginRequired.
func AdminRequired(store *utils.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := utils.GetUserFromContext(c)
		if !ok || !user.IsAdmin {
			redirectWithFlash(c, store, "/", models.FlashDanger, i18n.KeyAdminAccessDenied)
			return
		}
		c.Next()
	}
}

func redirectWithFlash(c *gin.Context, store *utils.SessionStore, location string, category models.FlashCategory, key string) {
	sess := store.Load(c)
	sess.AddFlash(category, i18n.T(utils.GetLangFromContext(c), key))
	if err := store.Save(c, sess); err != nil {
		logrus.WithError(err).Error("Failed to save session")
	}
	c.Redirect(http.StatusFound, location)
	c.Abort()
}
