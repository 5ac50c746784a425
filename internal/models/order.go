// internal/models/order.go
package models

import (
	"github.com/shopspring/decimal"
)

// Order is written once per checkout. TotalPrice is a snapshot taken at
// checkout time, not a reference to current product prices.
type Order struct {
	BaseModel
	CustomerName string          `json:"customer_name" gorm:"size:100;not null"`
	Address      string          `json:"address" gorm:"size:200;not null"`
	TotalPrice   decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status       string          `json:"status" gorm:"size:50;default:'Pending'"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots one product line of an order.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null"`
	Name      string          `json:"name" gorm:"size:100;not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
