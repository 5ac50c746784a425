// internal/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexcart/storefront/internal/i18n"
	"github.com/nexcart/storefront/internal/models"
	"github.com/nexcart/storefront/internal/services"
	"github.com/nexcart/storefront/internal/utils"
)

type CartHandler struct {
	page
	checkoutService *services.CheckoutService
}

func NewCartHandler(sessions *utils.SessionStore, checkoutService *services.CheckoutService) *CartHandler {
	return &CartHandler{
		page:            page{sessions: sessions},
		checkoutService: checkoutService,
	}
}

// GET /add_to_cart/:id
// The id is not checked against the catalog; unknown ids are skipped at pricing time.
func (h *CartHandler) Add(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		h.notFound(c)
		return
	}

	if h.sessions.Load(c).Cart.Add(id) {
		h.flash(c, models.FlashSuccess, i18n.KeyCartItemAdded)
	} else {
		h.flash(c, models.FlashWarning, i18n.KeyCartFull, models.MaxCartEntries)
	}

	location := sameHostReferer(c)
	if location == "" {
		location = "/shop"
	}
	h.redirect(c, location)
}

// GET /remove_from_cart/:id
func (h *CartHandler) Remove(c *gin.Context) {
	if id, ok := productIDParam(c); ok {
		if h.sessions.Load(c).Cart.Remove(id) {
			h.flash(c, models.FlashInfo, i18n.KeyCartItemRemoved)
		}
	}
	h.redirect(c, "/cart")
}

// GET /cart
func (h *CartHandler) View(c *gin.Context) {
	quote, err := h.checkoutService.Quote(c.Request.Context(), h.sessions.Load(c).Cart)
	if err != nil {
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	h.render(c, http.StatusOK, "cart", gin.H{"quote": quote})
}
