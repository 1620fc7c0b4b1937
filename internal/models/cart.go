package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is a product with a positive quantity. A product id appears at
// most once across the lines of a cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is the line's price at the product's current price.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// RemoteCartItem is the server's representation of a cart row. The server
// assigns the id and optionally snapshots the price at add time.
type RemoteCartItem struct {
	ID       string           `json:"id,omitempty"`
	OrderID  string           `json:"orderId,omitempty"`
	DrugID   string           `json:"drugId"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity int              `json:"quantity"`
}

// RemoteCart is the server-held cart for an authenticated shopper.
type RemoteCart struct {
	ID    string           `json:"id,omitempty"`
	Items []RemoteCartItem `json:"items"`
}

// CartView is the unified projection the presentation layer renders,
// regardless of which backend produced it.
type CartView struct {
	Lines    []CartLine      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Badge is the total quantity across all lines.
func (v CartView) Badge() int {
	var n int
	for _, l := range v.Lines {
		n += l.Quantity
	}
	return n
}
