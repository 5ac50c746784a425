// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexcart/storefront/internal/i18n"
	"github.com/nexcart/storefront/internal/models"
	"github.com/nexcart/storefront/internal/services"
	"github.com/nexcart/storefront/internal/utils"
)

type CheckoutHandler struct {
	page
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(sessions *utils.SessionStore, checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		page:            page{sessions: sessions},
		checkoutService: checkoutService,
	}
}

// GET /checkout
func (h *CheckoutHandler) Show(c *gin.Context) {
	sess := h.sessions.Load(c)
	if sess.Cart.IsEmpty() {
		h.flash(c, models.FlashWarning, i18n.KeyCartEmpty)
		h.redirect(c, "/shop")
		return
	}

	quote, err := h.checkoutService.Quote(c.Request.Context(), sess.Cart)
	if err != nil {
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	h.render(c, http.StatusOK, "checkout", gin.H{
		"items": quote.Grouped(),
		"total": quote.Total,
	})
}

// POST /checkout
// The cart is cleared only once the order is committed. Any failure leaves it as it was.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sess := h.sessions.Load(c)

	var req services.CheckoutRequest
	h.bindLenient(c, &req)

	order, err := h.checkoutService.Checkout(c.Request.Context(), sess.Cart, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			h.flash(c, models.FlashWarning, i18n.KeyCartEmpty)
			h.redirect(c, "/shop")
		case h.flashValidation(c, err):
			h.redirect(c, "/checkout")
		default:
			logrus.WithError(err).WithFields(logrus.Fields{
				"request_id": utils.GetRequestIDFromContext(c),
				"entries":    sess.Cart.Count(),
			}).Error("Checkout failed")
			h.serverError(c, err, i18n.KeyCheckoutFailed)
		}
		return
	}

	sess.Cart.Clear()
	h.save(c, sess)
	h.render(c, http.StatusOK, "success", gin.H{
		"name":  order.CustomerName,
		"order": order,
	})
}
