// internal/cart/cart.go
package cart

import (
	"github.com/shopspring/decimal"

	"shopfront/internal/catalog"
)

// LineItem is one distinct product in the cart with its requested
// quantity. Title, price and image are snapshots taken at add-time and
// do not follow later catalog changes.
type LineItem struct {
	ProductID int64
	Title     string
	Price     decimal.Decimal
	Image     string
	Quantity  int
}

// Cart holds the line items for the current session. All operations are
// synchronous and touch no network; the presentation layer is the only
// writer. At most one line item exists per distinct product identifier.
type Cart struct {
	items []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges a product into the cart: an existing line item for the
// same product has its quantity incremented by one, otherwise a new
// line item with quantity 1 is appended at the end. Existing item order
// is preserved.
func (c *Cart) AddItem(p catalog.Product) {
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, LineItem{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
}

// UpdateQuantity sets the quantity of the line item for the given
// product. A non-positive quantity removes the line item entirely; a
// quantity is never allowed to linger at zero or below.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line item for the given product. Removing an
// absent product is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	return append([]LineItem(nil), c.items...)
}

// TotalItems is the sum of all quantities, recomputed on every read.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all line
// items, recomputed on every read so it can never drift from the items.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
