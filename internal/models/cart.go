// internal/models/cart.go
package models

// MaxCartEntries keeps the signed session cookie well under the ~4KB
// browsers accept.
const MaxCartEntries = 100

// Cart is the ordered list of product ids held in a visitor's session.
// Duplicates encode quantity. It is never persisted to the database.
type Cart struct {
	Items []uint `json:"items,omitempty"`
}

// Add appends productID and reports false, leaving the cart as is, when the
// cart already holds MaxCartEntries entries.
func (c *Cart) Add(productID uint) bool {
	if c.IsFull() {
		return false
	}
	c.Items = append(c.Items, productID)
	return true
}

func (c *Cart) IsFull() bool {
	return len(c.Items) >= MaxCartEntries
}

// Remove drops the first occurrence of productID and reports whether
// anything was removed.
func (c *Cart) Remove(productID uint) bool {
	for i, id := range c.Items {
		if id == productID {
			c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Count() int {
	return len(c.Items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IDs returns a copy of the entries in insertion order.
func (c *Cart) IDs() []uint {
	ids := make([]uint, len(c.Items))
	copy(ids, c.Items)
	return ids
}

// DistinctIDs returns each product id once, in first-seen order.
func (c *Cart) DistinctIDs() []uint {
	seen := make(map[uint]struct{}, len(c.Items))
	ids := make([]uint, 0, len(c.Items))
	for _, id := range c.Items {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (c *Cart) Quantities() map[uint]int {
	q := make(map[uint]int, len(c.Items))
	for _, id := range c.Items {
		q[id]++
	}
	return q
}
