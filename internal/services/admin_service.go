// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexcart/storefront/internal/models"
	"github.com/nexcart/storefront/internal/utils"
)

// ImageStore is the part of StorageService the admin flow needs.
type ImageStore interface {
	ProductImageOptions() UploadOptions
	UploadFile(file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error)
	DeleteFile(name string) error
}

type AdminService struct {
	db     *gorm.DB
	images ImageStore
}

type CreateProductRequest struct {
	Name        string `form:"product_name" validate:"required,max=100"`
	Price       string `form:"product_price" validate:"required"`
	Description string `form:"product_desc" validate:"max=500"`
	Category    string `form:"product_category" validate:"max=50"`
}

// ImageUpload is an optional file attached to a product form.
type ImageUpload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

func NewAdminService(db *gorm.DB, images ImageStore) *AdminService {
	return &AdminService{
		db:     db,
		images: images,
	}
}

func (s *AdminService) CreateProduct(ctx context.Context, req *CreateProductRequest, upload *ImageUpload) (*models.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Price = strings.TrimSpace(req.Price)
	req.Category = strings.TrimSpace(req.Category)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, newValidationError(err)
	}

	price, err := ParsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       price,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
	}

	// A replaced file may still belong to another product, so only a fresh
	// upload is removed when the insert fails.
	ownsImage := false
	if upload != nil && upload.Header != nil {
		result, err := s.images.UploadFile(upload.File, upload.Header, s.images.ProductImageOptions())
		if err != nil {
			if errors.Is(err, ErrInvalidUpload) {
				return nil, &ValidationError{Field: "image", Message: err.Error()}
			}
			return nil, err
		}
		product.Image = &result.Name
		ownsImage = !result.Replaced
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		if ownsImage {
			if delErr := s.images.DeleteFile(product.ImageName()); delErr != nil {
				logrus.WithError(delErr).WithField("image", product.ImageName()).Warn("Failed to remove orphaned product image")
			}
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"category":   product.Category,
		"has_image":  product.HasImage(),
	}).Info("Product created")

	return product, nil
}

// MaxPrice is the largest amount a decimal(10,2) price column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

// ParsePrice accepts a non-negative amount with at most two fractional digits
// that fits the price column.
func ParsePrice(raw string) (decimal.Decimal, error) {
	invalid := &ValidationError{Field: "price", Message: "must be a non-negative number up to " + MaxPrice.StringFixed(2) + " with at most 2 decimals"}

	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.IsNegative() {
		return decimal.Zero, invalid
	}
	// Bound the exponent before anything rescales the coefficient.
	if exp := price.Exponent(); exp < -2 || exp > 8 {
		return decimal.Zero, invalid
	}
	if price.GreaterThan(MaxPrice) {
		return decimal.Zero, invalid
	}
	return price.Round(2), nil
}

func (s *AdminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *AdminService) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Preload("Items").
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}
