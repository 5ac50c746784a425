// internal/services/checkout_service.go
package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nexcart/storefront/internal/database"
	"github.com/nexcart/storefront/internal/models"
	"github.com/nexcart/storefront/internal/utils"
)

type CheckoutService struct {
	db *gorm.DB
}

type CheckoutRequest struct {
	Name    string `form:"name" validate:"required,max=100"`
	Address string `form:"address" validate:"required,max=200"`
}

// Quote is a cart priced against the catalog at one point in time.
// Lines follow cart order, one per resolvable entry. Skipped counts entries
// whose product no longer exists; they contribute nothing to Total.
type Quote struct {
	Lines   []models.Product
	Total   decimal.Decimal
	Skipped int
}

func (q *Quote) IsEmpty() bool {
	return len(q.Lines) == 0
}

// Grouped collapses the lines into one item per product, in first-seen order.
func (q *Quote) Grouped() []models.OrderItem {
	index := make(map[uint]int, len(q.Lines))
	items := make([]models.OrderItem, 0, len(q.Lines))

	for _, p := range q.Lines {
		if i, ok := index[p.ID]; ok {
			items[i].Quantity++
			continue
		}
		index[p.ID] = len(items)
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  1,
		})
	}

	return items
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

// Quote prices the cart with current catalog prices.
func (s *CheckoutService) Quote(ctx context.Context, cart models.Cart) (*Quote, error) {
	return priceCart(s.db.WithContext(ctx), cart)
}

// Checkout turns the cart into an order. Prices are re-read inside the same
// transaction that inserts the order, so the stored total matches one view of
// the catalog. The caller clears the cart only when err is nil.
func (s *CheckoutService) Checkout(ctx context.Context, cart models.Cart, req *CheckoutRequest) (*models.Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, newValidationError(err)
	}

	var order *models.Order
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		quote, err := priceCart(tx, cart)
		if err != nil {
			return err
		}
		if quote.IsEmpty() {
			return ErrEmptyCart
		}

		order = &models.Order{
			CustomerName: req.Name,
			Address:      req.Address,
			TotalPrice:   quote.Total,
			Status:       models.OrderStatusPending,
			Items:        quote.Grouped(),
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.TotalPrice.StringFixed(2),
		"entries":  cart.Count(),
	}).Info("Order placed")

	return order, nil
}

func priceCart(db *gorm.DB, cart models.Cart) (*Quote, error) {
	quote := &Quote{Lines: []models.Product{}, Total: decimal.Zero}
	if cart.IsEmpty() {
		return quote, nil
	}

	products, err := findProductsByIDs(db, cart.DistinctIDs())
	if err != nil {
		return nil, err
	}

	for position, id := range cart.IDs() {
		product, ok := products[id]
		if !ok {
			quote.Skipped++
			logrus.WithFields(logrus.Fields{
				"product_id": id,
				"position":   position,
			}).Warn("Cart entry skipped: product no longer exists")
			continue
		}
		quote.Lines = append(quote.Lines, product)
		quote.Total = quote.Total.Add(product.Price)
	}

	return quote, nil
}
