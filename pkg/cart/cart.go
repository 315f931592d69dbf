// Package cart implements the storefront's cart/checkout synchronization
// engine: a local, optimistic mirror of a remote checkout resource.
//
// The engine mutates its line list in memory first and then pushes the entire
// desired state to the checkout service, adopting the id and URL the service
// answers with. The remote resource stays authoritative throughout; the local
// state only exists to keep the UI responsive between round-trips.
//
// Overlapping mutations are not serialized. Two rapid AddItem calls issue two
// overlapping syncs whose responses land in arrival order, so the later
// response wins. That is the accepted behavior for a single-user cart, not a
// defect; a mutex guards the fields for memory safety but deliberately does
// not turn the network calls into a queue.
package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nnmag/storefront/pkg/catalog"
	"github.com/nnmag/storefront/pkg/checkout"
	"github.com/nnmag/storefront/pkg/identity"
)

// DefaultCurrency is reported by Currency on an empty cart.
const DefaultCurrency = "USD"

// NormalizeID strips the remote service's URI-scheme prefix from a checkout
// identifier. Already-bare identifiers pass through unchanged, so the
// function is idempotent.
func NormalizeID(id string) string {
	return strings.TrimPrefix(id, checkout.CheckoutIDPrefix)
}

// Cart owns the checkout identifier, checkout URL, and the current line list.
// Construct one per session with New, call Initialize once, and funnel every
// mutation through AddItem/RemoveItem. Views render from Dupe or Items
// snapshots and never touch the internals.
type Cart struct {
	mu    sync.Mutex
	id    string
	url   string
	items []checkout.Line

	merch  *catalog.Index
	store  identity.Store
	client checkout.Client

	defaultCurrency string
	log             zerolog.Logger
}

// Option configures a Cart.
type Option func(*Cart)

// WithLogger sets the logger used for enrichment and recovery warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Cart) {
		c.log = log
	}
}

// WithDefaultCurrency overrides the currency reported for an empty cart.
func WithDefaultCurrency(code string) Option {
	return func(c *Cart) {
		c.defaultCurrency = code
	}
}

// New constructs a Cart over the given checkout client, identity store, and
// catalog index. The index is read-only for the lifetime of the cart.
func New(client checkout.Client, store identity.Store, merch *catalog.Index, opts ...Option) *Cart {
	c := &Cart{
		merch:           merch,
		store:           store,
		client:          client,
		defaultCurrency: DefaultCurrency,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize adopts the persisted checkout if one exists, or requests a
// brand-new checkout resource otherwise. Safe to call again: each call
// re-derives state from whichever identifier is currently stored.
//
// A persisted identifier whose checkout no longer exists server-side (an
// expired resource) is treated as absent: the stale id is discarded and a
// fresh checkout is created in its place.
func (c *Cart) Initialize(ctx context.Context) error {
	if id, ok := c.store.Get(); ok {
		id = NormalizeID(id)
		co, err := c.client.Get(ctx, id)
		switch {
		case err == nil:
			c.adopt(co)
			return nil
		case errors.Is(err, checkout.ErrNotFound):
			c.log.Warn().Str("checkout_id", id).Msg("stored checkout expired, creating a new one")
		default:
			return err
		}
	}

	co, err := c.client.Create(ctx)
	if err != nil {
		return err
	}
	c.adopt(co)
	return nil
}

// AddItem merges the item into the line list, accumulating quantity onto an
// existing line for the same variant, and pushes the new state to the
// checkout service.
func (c *Cart) AddItem(ctx context.Context, item checkout.Item) error {
	c.mu.Lock()
	if line := c.findLine(item.ProductID); line != nil {
		line.Quantity += item.Quantity
	} else {
		c.items = append(c.items, checkout.LineFromItem(item))
	}
	c.mu.Unlock()

	return c.Sync(ctx)
}

// RemoveItem decrements the quantity of the matching line, dropping the line
// entirely once its quantity reaches zero, and pushes the new state to the
// checkout service. Removing a variant that is not in the cart changes
// nothing locally but still syncs.
func (c *Cart) RemoveItem(ctx context.Context, item checkout.Item) error {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ProductID != item.ProductID {
			continue
		}
		c.items[i].Quantity -= item.Quantity
		if c.items[i].Quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		break
	}
	c.mu.Unlock()

	return c.Sync(ctx)
}

// Sync posts the entire current line list to the checkout service and adopts
// the returned id and URL. An empty cart syncs to nothing: no request is
// made, so no checkout is created for an empty cart.
//
// The response's own line collection is intentionally not merged back into
// the local list; callers that need the authoritative line set re-fetch via
// Initialize.
func (c *Cart) Sync(ctx context.Context) error {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return nil
	}
	lines := make([]checkout.Line, len(c.items))
	copy(lines, c.items)
	c.mu.Unlock()

	co, err := c.client.Replace(ctx, lines)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.setID(co.ID)
	c.url = co.CheckoutURL
	c.mu.Unlock()
	return nil
}

// Total returns the client-side order total, price times quantity summed over
// all lines. It is recomputed from local data on every call and is not
// validated against the service's authoritative pricing until the next fetch.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.items {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Currency returns the currency of the first line, or the default currency
// for an empty cart. The catalog is single-currency; mixed-currency carts are
// unsupported.
func (c *Cart) Currency() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) > 0 {
		return c.items[0].Currency
	}
	return c.defaultCurrency
}

// Dupe produces a snapshot copy of the cart: same catalog reference, store,
// and client, copied id and URL, and a one-level copy of the line list.
// It performs no I/O; it exists so a view layer can detect change through
// reference inequality.
func (c *Cart) Dupe() *Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	dup := &Cart{
		id:              c.id,
		url:             c.url,
		items:           make([]checkout.Line, len(c.items)),
		merch:           c.merch,
		store:           c.store,
		client:          c.client,
		defaultCurrency: c.defaultCurrency,
		log:             c.log,
	}
	copy(dup.items, c.items)
	return dup
}

// Items returns a copy of the current line list.
func (c *Cart) Items() []checkout.Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]checkout.Line, len(c.items))
	copy(items, c.items)
	return items
}

// ID returns the normalized checkout identifier, or the empty string before
// initialization.
func (c *Cart) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// URL returns the checkout web URL, opaque and used only for redirect.
func (c *Cart) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

// Abandon clears the persisted identifier and resets the cart. Callers
// invoke it after a successful checkout redirect; the engine never expires
// carts on its own.
func (c *Cart) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Clear()
	c.id = ""
	c.url = ""
	c.items = nil
}

// adopt overwrites local state from an authoritative checkout.
func (c *Cart) adopt(co *checkout.Checkout) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setID(co.ID)
	c.url = co.CheckoutURL
	c.items = c.enrich(co.Lines.Nodes)
}

// setID normalizes and persists the identifier. Callers hold the mutex.
func (c *Cart) setID(id string) {
	c.id = NormalizeID(id)
	c.store.Set(c.id)
}

// findLine returns a pointer into the line list, or nil. Callers hold the
// mutex and must not retain the pointer past unlock.
func (c *Cart) findLine(productID string) *checkout.Line {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return &c.items[i]
		}
	}
	return nil
}

// enrich resolves raw checkout lines into display-ready cart lines via the
// catalog index. A line whose variant is missing from the catalog is dropped;
// it cannot be rendered and the service remains authoritative for it.
func (c *Cart) enrich(raw []checkout.RawLine) []checkout.Line {
	lines := make([]checkout.Line, 0, len(raw))
	for _, rl := range raw {
		p, ok := c.merch.FindByVariantID(rl.Merchandise.ID)
		if !ok {
			c.log.Warn().
				Str("variant_id", rl.Merchandise.ID).
				Str("line_id", rl.ID).
				Msg("checkout line references unknown variant, dropping")
			continue
		}
		lines = append(lines, checkout.Line{
			LineID:      rl.ID,
			Title:       p.Title,
			Handle:      p.Handle,
			Description: p.Description,
			Currency:    rl.Cost.AmountPerQuantity.CurrencyCode,
			Price:       rl.Cost.AmountPerQuantity.Float(),
			ProductID:   rl.Merchandise.ID,
			Quantity:    rl.Quantity,
		})
	}
	return lines
}
