// internal/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexcart/storefront/internal/i18n"
	"github.com/nexcart/storefront/internal/services"
	"github.com/nexcart/storefront/internal/utils"
)

// FeaturedCount is how many random products the home page shows.
const FeaturedCount = 3

type ProductHandler struct {
	page
	catalogService *services.CatalogService
}

func NewProductHandler(sessions *utils.SessionStore, catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		page:           page{sessions: sessions},
		catalogService: catalogService,
	}
}

// GET /
func (h *ProductHandler) Home(c *gin.Context) {
	featured, err := h.catalogService.RandomSample(c.Request.Context(), FeaturedCount)
	if err != nil {
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	h.render(c, http.StatusOK, "index", gin.H{"featured_products": featured})
}

// GET /shop?q=&category=
func (h *ProductHandler) Shop(c *gin.Context) {
	filter := services.ProductFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Category: strings.TrimSpace(c.Query("category")),
	}

	products, err := h.catalogService.Search(c.Request.Context(), filter)
	if err != nil {
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	h.render(c, http.StatusOK, "products", gin.H{
		"products":   products,
		"categories": categories,
		"query":      filter.Query,
		"category":   filter.Category,
	})
}

// GET /product/:id
func (h *ProductHandler) Detail(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		h.notFound(c)
		return
	}

	product, err := h.catalogService.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err, i18n.KeyInternalError)
		return
	}

	h.render(c, http.StatusOK, "detail", gin.H{"product": product})
}

// productIDParam reads :id as a positive integer.
func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
