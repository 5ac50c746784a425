// internal/tests/admin_test.go
package tests

import (
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nexcart/storefront/internal/models"
)

var tinyPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func productForm(name, price string) map[string]string {
	return map[string]string{
		"product_name":     name,
		"product_price":    price,
		"product_desc":     "Made for testing.",
		"product_category": "",
	}
}

func (s *StorefrontSuite) TestAdminRequiresLogin() {
	resp, _ := s.browser().get("/admin")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
}

func (s *StorefrontSuite) TestNonAdminCannotCreateProducts() {
	s.browser().register("alice", "secret1")

	b := s.browser()
	b.register("mallory", "secret2")

	resp, _ := b.get("/admin")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	resp, _ = b.postMultipart("/admin", productForm("Sneaky", "1.00"), "product_image", "x.png", tinyPNG)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "Access Denied.")
	s.Equal(int64(11), s.countProducts())
	s.NoFileExists(filepath.Join(s.cfg.Storage.UploadDir, "x.png"))
}

func (s *StorefrontSuite) TestAdminCreatesProductWithImage() {
	b := s.browser()
	b.register("alice", "secret1")

	resp, _ := b.postMultipart("/admin", productForm("Rubber Duck", "4.50"), "product_image", "duck.png", tinyPNG)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "Product Added!")
	s.Contains(body, "Rubber Duck")

	var duck models.Product
	s.Require().NoError(s.db.Where("name = ?", "Rubber Duck").First(&duck).Error)
	s.Equal(models.DefaultCategory, duck.Category)
	s.True(decimal.RequireFromString("4.50").Equal(duck.Price))
	s.Equal("duck.png", duck.ImageName())

	resp, _ = b.get("/static/images/duck.png")
	s.Equal(http.StatusOK, resp.StatusCode)

	_, body = b.get("/product/" + strconv.FormatUint(uint64(duck.ID), 10))
	s.Contains(body, `src="/static/images/duck.png"`)
}

func (s *StorefrontSuite) TestAdminCreatesProductWithoutImage() {
	b := s.browser()
	b.register("alice", "secret1")

	resp, _ := b.postMultipart("/admin", productForm("Plain Thing", "3"), "", "", nil)
	s.Equal("/admin", resp.Header.Get("Location"))
	s.Equal(int64(12), s.countProducts())

	_, body := b.get("/shop?q=plain")
	s.Contains(body, `class="placeholder"`)
}

func (s *StorefrontSuite) TestAdminRejectsBadPrice() {
	b := s.browser()
	b.register("alice", "secret1")

	for _, price := range []string{"abc", "-5", "1e12", "2.345", "1e900000000"} {
		resp, _ := b.postMultipart("/admin", productForm("Broken", price), "", "", nil)
		s.Equal("/admin", resp.Header.Get("Location"))

		_, body := b.follow(resp)
		s.Contains(body, "Price must be a non-negative number")
	}
	s.Equal(int64(11), s.countProducts())
}

func (s *StorefrontSuite) TestAdminRejectsNonImageUpload() {
	b := s.browser()
	b.register("alice", "secret1")

	resp, _ := b.postMultipart("/admin", productForm("Script", "1.00"), "product_image", "run.png", []byte("#!/bin/sh\necho hi\n"))
	_, body := b.follow(resp)
	s.Contains(body, "Image upload failed")
	s.Equal(int64(11), s.countProducts())
}

func (s *StorefrontSuite) TestAdminShowsRecentOrders() {
	admin := s.browser()
	admin.register("alice", "secret1")

	shopper := s.browser()
	shopper.get("/add_to_cart/8")
	resp, _ := shopper.postForm("/checkout", url.Values{"name": {"Grace"}, "address": {"2 Loop Rd"}})
	s.Equal(http.StatusOK, resp.StatusCode)

	_, body := admin.get("/admin")
	s.Contains(body, "Grace")
	s.Contains(body, "1 x Vacuum Insulated Mug")
}
