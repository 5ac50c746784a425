// internal/tests/cart_test.go
package tests

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nexcart/storefront/internal/models"
)

func (s *StorefrontSuite) TestCartAddAndRemove() {
	b := s.browser()

	for _, path := range []string{"/add_to_cart/1", "/add_to_cart/1", "/add_to_cart/2"} {
		resp, _ := b.get(path)
		s.Equal(http.StatusFound, resp.StatusCode)
	}

	_, body := b.get("/cart")
	s.assertCartCount(body, 3)
	s.Equal(3, strings.Count(body, `class="cart-line"`))
	s.Contains(body, "$219.98")

	resp, _ := b.get("/remove_from_cart/1")
	s.Equal("/cart", resp.Header.Get("Location"))
	_, body = b.follow(resp)
	s.Contains(body, "Item removed.")
	s.assertCartCount(body, 2)
	s.Contains(body, "$169.99")

	// absent id leaves the cart unchanged and says nothing
	resp, _ = b.get("/remove_from_cart/5")
	_, body = b.follow(resp)
	s.NotContains(body, "Item removed.")
	s.assertCartCount(body, 2)
}

func (s *StorefrontSuite) TestAddToCartRedirect() {
	b := s.browser()

	resp, _ := b.get("/add_to_cart/3")
	s.Equal("/shop", resp.Header.Get("Location"))

	resp, _ = b.getWithReferer("/add_to_cart/3", s.server.URL+"/product/3?from=home")
	s.Equal("/product/3?from=home", resp.Header.Get("Location"))

	resp, _ = b.getWithReferer("/add_to_cart/3", "https://elsewhere.example/phish")
	s.Equal("/shop", resp.Header.Get("Location"))

	// a same-host Referer whose path would be read as another host
	resp, _ = b.getWithReferer("/add_to_cart/3", s.server.URL+"//elsewhere.example/phish")
	s.Equal("/shop", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "Item added to cart!")
	s.assertCartCount(body, 4)
}

func (s *StorefrontSuite) TestAddToCartRejectsNonNumericID() {
	b := s.browser()
	resp, _ := b.get("/add_to_cart/abc")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	_, body := b.get("/cart")
	s.assertCartCount(body, 0)
}

func (s *StorefrontSuite) TestCartSkipsDeletedProducts() {
	b := s.browser()
	b.get("/add_to_cart/3")
	b.get("/add_to_cart/9999")
	b.get("/add_to_cart/3")

	_, body := b.get("/cart")
	s.assertCartCount(body, 3)
	s.Equal(2, strings.Count(body, `class="cart-line"`))
	s.Contains(body, "$71.00")
	s.Contains(body, "1 item(s) are no longer available")
}

func (s *StorefrontSuite) TestCartStopsGrowingWhenFull() {
	b := s.browser()
	for i := 0; i < models.MaxCartEntries; i++ {
		resp, _ := b.get("/add_to_cart/" + strconv.Itoa(i%11+1))
		s.Require().Equal(http.StatusFound, resp.StatusCode)
	}

	resp, _ := b.get("/add_to_cart/1")
	s.Equal("/shop", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "Your cart is full ("+strconv.Itoa(models.MaxCartEntries)+" items)")
	s.assertCartCount(body, models.MaxCartEntries)

	u, err := url.Parse(s.server.URL)
	s.Require().NoError(err)
	for _, cookie := range b.client.Jar.Cookies(u) {
		if cookie.Name == s.cfg.Session.CookieName {
			s.Less(len(cookie.Value), 4000)
		}
	}
}
