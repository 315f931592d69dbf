// Package checkout defines the wire types of the storefront checkout API and
// an HTTP client for it.
//
// The remote checkout resource is the authoritative source of truth for line
// items, pricing, and currency; everything the cart engine holds locally is
// an optimistic mirror of these types.
package checkout

import "strconv"

// CheckoutIDPrefix is the URI-scheme marker the remote service attaches to
// checkout identifiers. The service only accepts the bare identifier in path
// segments, so it is stripped before use and before persisting.
const CheckoutIDPrefix = "gid://shopify/Cart/"

// Item is a catalog-side description of a purchasable unit, as handed to the
// cart by the product page. Quantity is the requested delta and is at least 1
// when adding.
type Item struct {
	ProductID   string  `json:"product_id"`
	Title       string  `json:"title"`
	Handle      string  `json:"handle"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Line is a checkout-side line item. LineID is assigned by the remote
// service; the empty string means the line has not been persisted yet.
type Line struct {
	LineID      string  `json:"line_id"`
	Title       string  `json:"title"`
	Handle      string  `json:"handle"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Price       float64 `json:"price"`
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
}

// LineFromItem converts a catalog item into an unpersisted cart line.
// The two shapes are essentially the same; going backwards is trivial enough
// that no separate conversion exists.
func LineFromItem(item Item) Line {
	return Line{
		LineID:      "",
		Title:       item.Title,
		Handle:      item.Handle,
		Description: item.Description,
		Currency:    item.Currency,
		Price:       item.Price,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
	}
}

// Money mirrors the service's MoneyV2 shape. Amount travels as a string.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Float parses the amount as a decimal number. A malformed amount parses
// as zero.
func (m Money) Float() float64 {
	f, err := strconv.ParseFloat(m.Amount, 64)
	if err != nil {
		return 0
	}
	return f
}

// Merchandise carries the variant reference of a raw checkout line.
type Merchandise struct {
	ID string `json:"id"`
}

// LineCost carries the per-quantity cost of a raw checkout line.
type LineCost struct {
	AmountPerQuantity Money `json:"amountPerQuantity"`
}

// RawLine is a line item exactly as the remote service returns it: variant
// reference, cost, and quantity, but no display metadata.
type RawLine struct {
	ID          string      `json:"id"`
	Merchandise Merchandise `json:"merchandise"`
	Cost        LineCost    `json:"cost"`
	Quantity    int         `json:"quantity"`
}

// RawLines wraps the service's line collection.
type RawLines struct {
	Nodes []RawLine `json:"nodes"`
}

// Checkout is the remote checkout resource.
type Checkout struct {
	ID            string   `json:"id"`
	CheckoutURL   string   `json:"checkoutUrl"`
	TotalQuantity int      `json:"totalQuantity"`
	Lines         RawLines `json:"lines"`
}

// ReplacePayload is the request body of POST /request_checkout: the entire
// desired line set of the cart.
type ReplacePayload struct {
	Items []Line `json:"items"`
}
