// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexcart/storefront/internal/models"
)

type seedProduct struct {
	name     string
	category string
	price    string
	desc     string
}

var catalogSeed = []seedProduct{
	// Hardware
	{"Mechanical Keycaps (Python Ed.)", "Hardware", "49.99", "Custom PBT keycaps in blue and yellow colors."},
	{"Ultrawide Monitor Stand", "Hardware", "120.00", "Aluminum stand for your dual-monitor coding setup."},
	{"Ergonomic Vertical Mouse", "Hardware", "35.50", "Save your wrist during long debugging sessions."},

	// Software
	{"Flask Pro Template", "Software", "29.00", "Production-ready boilerplate with Auth, Admin, and Stripe."},
	{"API Access Key (Lifetime)", "Software", "99.00", "Unlimited requests to our machine learning backend."},
	{"Cloud Deployment Script", "Software", "15.00", "Automated bash scripts for AWS/DigitalOcean."},

	// Merchandise
	{"Developer Hoodie (Black)", "Merchandise", "55.00", "Heavyweight cotton. 'It works on my machine' print."},
	{"Vacuum Insulated Mug", "Merchandise", "22.00", "Keeps your coffee hot for 6 hours while you code."},
	{"Laptop Sticker Pack", "Merchandise", "8.00", "High-quality vinyl stickers: Python, Docker, Linux."},

	// Accessories
	{"Blue Light Glasses", "Accessories", "45.00", "Protect your eyes from screen fatigue."},
	{"Desk Mat (900x400)", "Accessories", "25.00", "Smooth surface with code cheat sheets printed on it."},
}

// SeedCatalog fills an empty products table with the themed sample catalog.
// It returns the number of products inserted.
func SeedCatalog(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	logrus.Info("Database empty. Seeding catalog data...")

	products := make([]models.Product, 0, len(catalogSeed))
	for _, item := range catalogSeed {
		products = append(products, models.Product{
			Name:        item.name,
			Price:       decimal.RequireFromString(item.price),
			Description: item.desc,
			Category:    item.category,
		})
	}

	if err := db.Create(&products).Error; err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}

	logrus.WithField("count", len(products)).Info("Catalog seeding completed")
	return len(products), nil
}
