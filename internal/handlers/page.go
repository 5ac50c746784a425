// internal/handlers/page.go
package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexcart/storefront/internal/i18n"
	"github.com/nexcart/storefront/internal/models"
	"github.com/nexcart/storefront/internal/services"
	"github.com/nexcart/storefront/internal/utils"
)

// page carries what every HTML handler needs: the session store and the
// conventions for rendering, flashing and redirecting.
type page struct {
	sessions *utils.SessionStore
}

// render adds the layout data (cart_count, user, pending flashes) and writes
// the page. Popped flashes are saved back before the body is written.
func (p page) render(c *gin.Context, status int, name string, data gin.H) {
	sess := p.sessions.Load(c)
	if data == nil {
		data = gin.H{}
	}

	data["cart_count"] = sess.Cart.Count()
	if user, ok := utils.GetUserFromContext(c); ok {
		data["user"] = user
	}
	if flashes := sess.PopFlashes(); len(flashes) > 0 {
		data["flashes"] = flashes
		p.save(c, sess)
	}

	c.HTML(status, name, data)
}

func (p page) t(c *gin.Context, key string, args ...interface{}) string {
	return i18n.T(utils.GetLangFromContext(c), key, args...)
}

func (p page) flash(c *gin.Context, category models.FlashCategory, key string, args ...interface{}) {
	p.sessions.Load(c).AddFlash(category, p.t(c, key, args...))
}

// redirect persists the session and sends a 302.
func (p page) redirect(c *gin.Context, location string) {
	p.save(c, p.sessions.Load(c))
	c.Redirect(http.StatusFound, location)
}

func (p page) save(c *gin.Context, sess *utils.Session) {
	if err := p.sessions.Save(c, sess); err != nil {
		logrus.WithError(err).WithField("request_id", utils.GetRequestIDFromContext(c)).Error("Failed to save session")
	}
}

// bindLenient binds form fields for handlers whose service validates the
// request itself. The bind error is only logged.
func (p page) bindLenient(c *gin.Context, req interface{}) {
	if err := c.ShouldBind(req); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": utils.GetRequestIDFromContext(c),
			"path":       c.FullPath(),
		}).Debug("Form bind failed")
	}
}

func (p page) notFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, "404", gin.H{"message": p.t(c, i18n.KeyProductNotFound)})
}

func (p page) serverError(c *gin.Context, err error, key string) {
	_ = c.Error(err)
	p.render(c, http.StatusInternalServerError, "error", gin.H{"message": p.t(c, key)})
}

// flashValidation turns a service ValidationError into a danger flash and
// reports whether err was one.
func (p page) flashValidation(c *gin.Context, err error) bool {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return false
	}

	switch verr.Field {
	case "price":
		p.flash(c, models.FlashDanger, i18n.KeyValidationPrice)
	case "image":
		p.flash(c, models.FlashDanger, i18n.KeyFileUploadFailed, verr.Message)
	default:
		p.flash(c, models.FlashDanger, i18n.KeyValidationInvalid, verr.Field, verr.Message)
	}
	return true
}

// sameHostReferer returns the Referer's path and query when it points back at
// this host, or "" otherwise. A path starting with "//" is refused since
// a browser reads it as a protocol-relative URL to another host.
func sameHostReferer(c *gin.Context) string {
	ref := c.Request.Referer()
	if ref == "" {
		return ""
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host != c.Request.Host {
		return ""
	}

	location := u.RequestURI()
	if !strings.HasPrefix(location, "/") || strings.HasPrefix(location, "//") {
		return ""
	}
	return location
}

func NotFound(sessions *utils.SessionStore) gin.HandlerFunc {
	p := page{sessions: sessions}
	return func(c *gin.Context) {
		p.render(c, http.StatusNotFound, "404", nil)
	}
}
