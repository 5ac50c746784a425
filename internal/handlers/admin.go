// internal/handlers/admin.go
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

// RecentOrderCount is how many orders the admin page lists.
const RecentOrderCount = 10

type AdminHandler struct {
	page
	adminService *services.AdminService
}

func NewAdminHandler(sessions *utils.SessionStore, adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		page:         page{sessions: sessions},
		adminService: adminService,
	}
}

// GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.adminService.ListProducts(ctx)
	if err != nil {
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	orders, err := h.adminService.RecentOrders(ctx, RecentOrderCount)
	if err != nil {
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	h.render(c, http.StatusOK, "admin", gin.H{
		"products": products,
		"orders":   orders,
	})
}

// POST /admin
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.flash(c, models.FlashDanger, i18n.KeyValidationInvalid, "form", err.Error())
		h.redirect(c, "/admin")
		return
	}

	var upload *services.ImageUpload
	file, header, err := c.Request.FormFile("product_image")
	switch {
	case err == nil:
		defer file.Close()
		if header.Filename != "" {
			upload = &services.ImageUpload{File: file, Header: header}
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		h.flash(c, models.FlashDanger, i18n.KeyFileUploadFailed, err.Error())
		h.redirect(c, "/admin")
		return
	}

	if _, err := h.adminService.CreateProduct(c.Request.Context(), &req, upload); err != nil {
		if !h.flashValidation(c, err) {
			h.serverError(c, err, i18n.KeyInternalError)
			return
		}
		h.redirect(c, "/admin")
		return
	}

	h.flash(c, models.FlashSuccess, i18n.KeyProductCreated)
	h.redirect(c, "/admin")
}
