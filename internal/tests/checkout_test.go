// internal/tests/checkout_test.go
package tests

import (
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/nexcart/storefront/internal/models"
)

func (s *StorefrontSuite) TestCheckoutPlacesOneOrderAndClearsCart() {
	b := s.browser()
	b.get("/add_to_cart/3")
	b.get("/add_to_cart/3")
	b.get("/add_to_cart/9999")

	resp, body := b.get("/checkout")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "$71.00")

	resp, body = b.postForm("/checkout", url.Values{"name": {"Ada"}, "address": {"1 Loop Rd"}})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Thank you, Ada!")
	s.assertCartCount(body, 0)

	s.Equal(int64(1), s.countOrders())

	var order models.Order
	s.Require().NoError(s.db.Preload("Items").First(&order).Error)
	s.True(decimal.RequireFromString("71.00").Equal(order.TotalPrice), "got %s", order.TotalPrice)
	s.Equal(models.OrderStatusPending, order.Status)
	s.Require().Len(order.Items, 1)
	s.Equal(2, order.Items[0].Quantity)

	_, body = b.get("/cart")
	s.assertCartCount(body, 0)
}

func (s *StorefrontSuite) TestCheckoutWithEmptyCart() {
	b := s.browser()

	resp, _ := b.get("/checkout")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/shop", resp.Header.Get("Location"))

	resp, _ = b.postForm("/checkout", url.Values{"name": {"Ada"}, "address": {"1 Loop Rd"}})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/shop", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "Your cart is empty.")
	s.Zero(s.countOrders())
}

func (s *StorefrontSuite) TestCheckoutOnlyDanglingEntries() {
	b := s.browser()
	b.get("/add_to_cart/9999")

	resp, _ := b.postForm("/checkout", url.Values{"name": {"Ada"}, "address": {"1 Loop Rd"}})
	s.Equal("/shop", resp.Header.Get("Location"))
	s.Zero(s.countOrders())

	_, body := b.get("/cart")
	s.assertCartCount(body, 1)
}

func (s *StorefrontSuite) TestCheckoutValidationKeepsCart() {
	b := s.browser()
	b.get("/add_to_cart/1")

	resp, _ := b.postForm("/checkout", url.Values{"name": {""}, "address": {"1 Loop Rd"}})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/checkout", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "Invalid name")
	s.assertCartCount(body, 1)
	s.Zero(s.countOrders())
}

func (s *StorefrontSuite) TestCheckoutFailureKeepsCart() {
	b := s.browser()
	b.get("/add_to_cart/1")
	b.get("/add_to_cart/2")

	s.Require().NoError(s.db.Migrator().DropTable(&models.OrderItem{}))

	resp, body := b.postForm("/checkout", url.Values{"name": {"Ada"}, "address": {"1 Loop Rd"}})
	s.Equal(http.StatusInternalServerError, resp.StatusCode)
	s.Contains(body, "Your cart has been kept.")
	s.Zero(s.countOrders())

	_, body = b.get("/cart")
	s.assertCartCount(body, 2)
}
