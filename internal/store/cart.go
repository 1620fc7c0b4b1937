// Package store holds the in-memory cart and wishlist an anonymous shopper
// accumulates before signing in. Nothing here touches the network; the
// stores live and die with the shopping session.
package store

import (
	"github.com/shopspring/decimal"

	"github.com/pharmakit/storefront/internal/models"
)

// LocalCart is an ordered collection of cart lines keyed by product id.
// It is owned by the application shell and is not safe for concurrent use.
type LocalCart struct {
	lines []models.CartLine
}

func NewLocalCart() *LocalCart {
	return &LocalCart{}
}

// Add increments the quantity of an existing line for the product, or
// appends a new line with quantity 1.
func (c *LocalCart) Add(product models.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{Product: product, Quantity: 1})
}

// SetQuantity replaces the quantity of the product's line, keeping line
// order. Quantity zero removes the line; an absent product id is a no-op.
func (c *LocalCart) SetQuantity(productID string, quantity int) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if quantity == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return
	}
}

// Lines returns a copy of the current lines.
func (c *LocalCart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal sums price times quantity across all lines at the products' current
// prices. An empty cart totals zero.
func (c *LocalCart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// TotalQuantity is the navbar badge count.
func (c *LocalCart) TotalQuantity() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *LocalCart) Len() int {
	return len(c.lines)
}

// Clear empties the cart. Called on sign-out and after checkout.
func (c *LocalCart) Clear() {
	c.lines = nil
}
