// internal/tests/shop_test.go
package tests

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (s *StorefrontSuite) TestHealth() {
	resp, body := s.browser().get("/health")
	s.Equal(http.StatusOK, resp.StatusCode)

	var payload map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(body), &payload))
	s.Equal("healthy", payload["status"])
}

func (s *StorefrontSuite) TestHomeShowsThreeFeaturedProducts() {
	resp, body := s.browser().get("/")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(3, strings.Count(body, `class="card product"`))
	s.assertCartCount(body, 0)
}

func (s *StorefrontSuite) TestShopSearchIntersectsCategory() {
	_, body := s.browser().get("/shop?q=code&category=Merchandise")

	s.Equal(1, strings.Count(body, `class="card product"`))
	s.Contains(body, "Vacuum Insulated Mug")
	s.NotContains(body, "Developer Hoodie")
	s.NotContains(body, "Ultrawide Monitor Stand")
}

func (s *StorefrontSuite) TestShopListsEverythingAndCategories() {
	_, body := s.browser().get("/shop")

	s.Equal(11, strings.Count(body, `class="card product"`))
	for _, category := range []string{"Hardware", "Software", "Merchandise", "Accessories"} {
		s.Contains(body, "/shop?category="+category)
	}
}

func (s *StorefrontSuite) TestShopNoMatches() {
	_, body := s.browser().get("/shop?q=quantum")
	s.Contains(body, "No products found.")
}

func (s *StorefrontSuite) TestProductDetail() {
	b := s.browser()

	resp, body := b.get("/product/8")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Vacuum Insulated Mug")
	s.Contains(body, "$22.00")

	for _, path := range []string{"/product/999", "/product/abc", "/product/0"} {
		resp, _ = b.get(path)
		s.Equal(http.StatusNotFound, resp.StatusCode, path)
	}
}

func (s *StorefrontSuite) TestUnknownRouteRendersNotFound() {
	resp, body := s.browser().get("/no/such/page")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Contains(body, "404")
}
