// Package catalog provides a read-only lookup from merchandise-variant
// identifiers to display metadata.
//
// The storefront's checkout service only stores a variant id, a quantity, and
// a price per line item. Titles, handles, and descriptions live in the site's
// build-time product data; an Index joins the two at cart-enrichment time.
package catalog

// Product describes a purchasable unit of the catalog.
type Product struct {
	// VariantID is the opaque merchandise-variant identifier, stable per variant.
	VariantID string `json:"variant_id"`
	// Title is the display title of the product.
	Title string `json:"title"`
	// Handle is the URL slug of the product page.
	Handle string `json:"handle"`
	// Description is the display description of the product.
	Description string `json:"description"`
	// Currency is the ISO currency code of the catalog reference price.
	Currency string `json:"currency"`
	// Price is the catalog reference price.
	Price float64 `json:"price"`
}

// Index is an in-memory join table keyed by variant id.
// It is built once and read-only afterwards, so lookups need no locking.
type Index struct {
	byVariant map[string]Product
}

// NewIndex builds an Index from a slice of products.
// If two products carry the same variant id, the later one wins.
func NewIndex(products []Product) *Index {
	byVariant := make(map[string]Product, len(products))
	for _, p := range products {
		byVariant[p.VariantID] = p
	}
	return &Index{byVariant: byVariant}
}

// FindByVariantID looks up the product for the given variant id.
// The second return value reports whether the variant is known.
func (ix *Index) FindByVariantID(id string) (Product, bool) {
	p, ok := ix.byVariant[id]
	return p, ok
}

// Len returns the number of indexed variants.
func (ix *Index) Len() int {
	return len(ix.byVariant)
}
