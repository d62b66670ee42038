// internal/cart/cart_test.go
package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"shopfront/internal/catalog"
)

func product(id int64, price string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Title: "product",
		Price: decimal.RequireFromString(price),
	}
}

func TestAddItemMergesDuplicates(t *testing.T) {
	c := New()

	c.AddItem(product(1, "10.00"))
	c.AddItem(product(1, "10.00"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "20.00", c.TotalPrice().StringFixed(2))
}

func TestAddItemAppendsNewProductsAtEnd(t *testing.T) {
	c := New()

	c.AddItem(product(1, "10.00"))
	c.AddItem(product(2, "5.50"))
	c.AddItem(product(1, "10.00"))
	c.AddItem(product(3, "1.25"))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, int64(2), items[1].ProductID)
	assert.Equal(t, int64(3), items[2].ProductID)
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	c := New()
	c.AddItem(product(1, "10.00"))

	c.UpdateQuantity(1, 7)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 7, c.TotalItems())
}

func TestUpdateQuantityToZeroRemovesLineItem(t *testing.T) {
	c := New()
	c.AddItem(product(1, "10.00"))

	c.UpdateQuantity(1, 0)

	assert.Empty(t, c.Items())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestUpdateQuantityNegativeRemovesLineItem(t *testing.T) {
	c := New()
	c.AddItem(product(1, "10.00"))

	c.UpdateQuantity(1, -3)

	assert.Empty(t, c.Items())
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	c := New()
	c.AddItem(product(1, "10.00"))

	c.UpdateQuantity(42, 5)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(product(1, "10.00"))
	c.AddItem(product(2, "5.00"))

	c.RemoveItem(1)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	c.RemoveItem(99) // absent, no-op
	assert.Len(t, c.Items(), 1)
}

func TestLineItemSnapshotsIgnoreLaterCatalogChanges(t *testing.T) {
	c := New()
	p := product(1, "10.00")
	c.AddItem(p)

	p.Price = decimal.RequireFromString("999.99")
	p.Title = "changed"

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "10.00", items[0].Price.StringFixed(2))
}

// TestCartTotalsNeverDrift drives the cart through arbitrary operation
// sequences and checks that the derived totals always equal a fresh
// recomputation over the line items, that no product appears twice, and
// that no line item ever holds a non-positive quantity.
func TestCartTotalsNeverDrift(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New()
		ids := rapid.Int64Range(1, 8)

		ops := rapid.IntRange(1, 50).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				cents := rapid.Int64Range(1, 100_000).Draw(t, "cents")
				c.AddItem(catalog.Product{
					ID:    ids.Draw(t, "add_id"),
					Price: decimal.New(cents, -2),
				})
			case 1:
				c.UpdateQuantity(ids.Draw(t, "upd_id"), rapid.IntRange(-2, 10).Draw(t, "qty"))
			case 2:
				c.RemoveItem(ids.Draw(t, "rm_id"))
			}
		}

		seen := make(map[int64]bool)
		wantTotal := decimal.Zero
		wantCount := 0
		for _, item := range c.Items() {
			if seen[item.ProductID] {
				t.Fatalf("duplicate line item for product %d", item.ProductID)
			}
			seen[item.ProductID] = true
			if item.Quantity < 1 {
				t.Fatalf("line item for product %d has quantity %d", item.ProductID, item.Quantity)
			}
			wantTotal = wantTotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			wantCount += item.Quantity
		}

		if !c.TotalPrice().Equal(wantTotal) {
			t.Fatalf("total price %s != recomputed %s", c.TotalPrice(), wantTotal)
		}
		if c.TotalItems() != wantCount {
			t.Fatalf("total items %d != recomputed %d", c.TotalItems(), wantCount)
		}
	})
}
