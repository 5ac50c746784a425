// internal/tests/auth_test.go
package tests

import (
	"net/http"
	"net/url"

	"github.com/nexcart/storefront/internal/models"
)

func (s *StorefrontSuite) TestFirstRegisteredUserIsAdmin() {
	first := s.browser()
	first.register("alice", "secret1")

	second := s.browser()
	second.register("bob_42", "secret2")

	var alice, bob models.User
	s.Require().NoError(s.db.Where("username = ?", "alice").First(&alice).Error)
	s.Require().NoError(s.db.Where("username = ?", "bob_42").First(&bob).Error)
	s.True(alice.IsAdmin)
	s.False(bob.IsAdmin)
	s.NotEqual("secret1", alice.PasswordHash)
}

func (s *StorefrontSuite) TestRegisterLogsInAndGreets() {
	b := s.browser()
	b.register("alice", "secret1")

	_, body := b.get("/")
	s.Contains(body, "Account created successfully")
	s.Contains(body, "Hi, alice")
	s.Contains(body, `href="/admin"`)
}

func (s *StorefrontSuite) TestDuplicateRegistrationIsRejected() {
	s.browser().register("alice", "secret1")

	b := s.browser()
	resp, _ := b.postForm("/register", url.Values{"username": {"alice"}, "password": {"other1"}})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/register", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "User already exists")

	var n int64
	s.Require().NoError(s.db.Model(&models.User{}).Count(&n).Error)
	s.Equal(int64(1), n)
}

func (s *StorefrontSuite) TestRegisterValidation() {
	b := s.browser()
	resp, _ := b.postForm("/register", url.Values{"username": {"a"}, "password": {"secret1"}})
	s.Equal("/register", resp.Header.Get("Location"))

	_, body := b.follow(resp)
	s.Contains(body, "Invalid username")
}

func (s *StorefrontSuite) TestLoginAndLogout() {
	setup := s.browser()
	setup.register("alice", "secret1")

	b := s.browser()
	resp, body := b.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Invalid username or password")

	resp, _ = b.postForm("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	_, body = b.get("/")
	s.Contains(body, "Hi, alice")

	b.logout()
	_, body = b.get("/")
	s.Contains(body, "You have been logged out.")
	s.NotContains(body, "Hi, alice")
}

func (s *StorefrontSuite) TestLogoutRequiresLogin() {
	resp, _ := s.browser().get("/logout")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
}

func (s *StorefrontSuite) TestTamperedSessionStartsFresh() {
	b := s.browser()
	b.get("/add_to_cart/1")

	u, err := url.Parse(s.server.URL)
	s.Require().NoError(err)
	b.client.Jar.SetCookies(u, []*http.Cookie{{Name: s.cfg.Session.CookieName, Value: "not-a-valid-token"}})

	resp, body := b.get("/cart")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.assertCartCount(body, 0)
}
