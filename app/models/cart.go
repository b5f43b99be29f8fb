package models

import "github.com/shopspring/decimal"

// CartProduct is the descriptor the presentation layer hands to the cart when
// a product is added: everything about the product except a quantity.
type CartProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
}

// CartItem is one product line in the session cart. At most one item exists
// per product id; adding the same product again accumulates its quantity.
type CartItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"quantity"`
}

func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Qty)))
}
