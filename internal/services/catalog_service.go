// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nexcart/storefront/internal/models"
)

type CatalogService struct {
	db *gorm.DB
}

// ProductFilter narrows a catalog listing. Both fields are optional; when both
// are set a product must satisfy both.
type ProductFilter struct {
	Query    string
	Category string
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// FindByIDs loads the given products in one query. Missing ids are simply
// absent from the result.
func (s *CatalogService) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	return findProductsByIDs(s.db.WithContext(ctx), ids)
}

func findProductsByIDs(db *gorm.DB, ids []uint) (map[uint]models.Product, error) {
	found := make(map[uint]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

// Search matches Query case-insensitively against name or description and
// Category exactly. An empty filter returns the whole catalog.
func (s *CatalogService) Search(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if filter.Query != "" {
		term := "%" + escapeLike(strings.ToLower(filter.Query)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, term, term)
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var products []models.Product
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

func (s *CatalogService) FilterByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Search(ctx, ProductFilter{Category: category})
}

// RandomSample returns up to n distinct products in random order.
func (s *CatalogService) RandomSample(ctx context.Context, n int) ([]models.Product, error) {
	products := []models.Product{}
	if n <= 0 {
		return products, nil
	}

	if err := s.db.WithContext(ctx).Order("RANDOM()").Limit(n).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}

	return products, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
