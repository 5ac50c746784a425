// internal/models/common.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DefaultCategory    = "General"
	OrderStatusPending = "Pending"
)

// Flash categories understood by the layout template.
type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashDanger  FlashCategory = "danger"
	FlashInfo    FlashCategory = "info"
	FlashWarning FlashCategory = "warning"
)

// SumPrices adds prices without float rounding.
func SumPrices(prices ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p)
	}
	return total
}
