package models

import "github.com/shopspring/decimal"

// MaxLineQuantity is the largest quantity a single cart line can hold.
const MaxLineQuantity = 99

// CartLineItem is a product snapshot together with the quantity in the cart.
type CartLineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price * quantity without rounding.
func (i CartLineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// WishlistEntry is a product snapshot saved to the wishlist.
type WishlistEntry = Product
