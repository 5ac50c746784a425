// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexcart/storefront/internal/i18n"
	"github.com/nexcart/storefront/internal/models"
	"github.com/nexcart/storefront/internal/services"
	"github.com/nexcart/storefront/internal/utils"
)

type AuthHandler struct {
	page
	authService *services.AuthService
}

func NewAuthHandler(sessions *utils.SessionStore, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		page:        page{sessions: sessions},
		authService: authService,
	}
}

// GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "register", nil)
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.flash(c, models.FlashDanger, i18n.KeyValidationInvalid, "form", err.Error())
		h.redirect(c, "/register")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			h.flash(c, models.FlashDanger, i18n.KeyAuthUserExists)
		case h.flashValidation(c, err):
		default:
			h.serverError(c, err, i18n.KeyInternalError)
			return
		}
		h.redirect(c, "/register")
		return
	}

	sess := h.sessions.Load(c)
	sess.LogIn(user.ID)
	h.flash(c, models.FlashSuccess, i18n.KeyAuthRegisterSuccess)
	h.redirect(c, "/")
}

// GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login", nil)
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	h.bindLenient(c, &req)

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.serverError(c, err, i18n.KeyInternalError)
			return
		}
		h.flash(c, models.FlashDanger, i18n.KeyAuthInvalidCredentials)
		h.render(c, http.StatusOK, "login", gin.H{"username": req.Username})
		return
	}

	h.sessions.Load(c).LogIn(user.ID)
	h.redirect(c, "/")
}

// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Load(c).LogOut()
	h.flash(c, models.FlashInfo, i18n.KeyAuthLogoutSuccess)
	h.redirect(c, "/")
}
