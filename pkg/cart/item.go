package cart

import "github.com/shopspring/decimal"

// StockUnknown marks a line item without a known stock ceiling.
const StockUnknown = -1

// Item is one cart line. ID is the opaque product identifier and is unique
// within the cart. Stock holds the last known stock ceiling, or StockUnknown
// when the backend did not report one.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
	SKU      string          `json:"sku,omitempty"`
	Stock    int             `json:"stock"`
}

// hasStock reports whether a stock ceiling is known.
func (i Item) hasStock() bool {
	return i.Stock >= 0
}
