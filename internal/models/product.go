// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Image holds the stored file name, nil when no
// image was uploaded.
type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:100;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       *string         `json:"image" gorm:"size:100"`
	Description string          `json:"description" gorm:"size:500;default:''"`
	Category    string          `json:"category" gorm:"size:50;default:'General';index"`
}

func (p *Product) HasImage() bool {
	return p.Image != nil && *p.Image != ""
}

// ImageName returns the stored file name or "" when there is none.
func (p *Product) ImageName() string {
	if !p.HasImage() {
		return ""
	}
	return *p.Image
}
