package cart

import (
	"sync"

	"ortofrutticola/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product-and-quantity pair in the cart. Product fields are
// snapshotted at add time: a later catalog price change does not touch lines
// already in the cart.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Totals is the pair of derived cart sums.
type Totals struct {
	Items int             `json:"total_items"`
	Price decimal.Decimal `json:"total_price"`
}

// Cart holds a guest's line items for the lifetime of their session. It is
// never persisted. At most one line exists per product id and quantities are
// always at least one; driving a quantity to zero removes the line.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges the product into the cart: an existing line's quantity goes up
// by one, otherwise a new line with quantity one is appended.
func (c *Cart) Add(product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Unit:      product.Unit,
		Image:     product.Image,
		UnitPrice: product.Price,
		Quantity:  1,
	})
}

// ChangeQuantity adds delta to the named line's quantity. A resulting
// quantity of zero or less removes the line. Unknown ids are a no-op.
func (c *Cart) ChangeQuantity(id uuid.UUID, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != id {
			continue
		}
		if c.lines[i].Quantity+delta <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity += delta
		}
		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current line items in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ComputeTotals recomputes the item count and price sum from the current
// lines on every call. Nothing is cached across mutations.
func (c *Cart) ComputeTotals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	totals := Totals{Price: decimal.Zero}
	for _, line := range c.lines {
		totals.Items += line.Quantity
		totals.Price = totals.Price.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return totals
}
