package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnmag/storefront/pkg/catalog"
	"github.com/nnmag/storefront/pkg/checkout"
	"github.com/nnmag/storefront/pkg/identity"
)

const variant1 = "gid://shopify/ProductVariant/1"

// fakeClient is a scriptable checkout.Client that counts calls.
type fakeClient struct {
	mu           sync.Mutex
	createCalls  int
	getCalls     int
	replaceCalls int
	lastReplace  []checkout.Line

	createResp  *checkout.Checkout
	getResp     *checkout.Checkout
	getErr      error
	replaceResp *checkout.Checkout
	replaceErr  error
	replaceFn   func(lines []checkout.Line) (*checkout.Checkout, error)
}

func (f *fakeClient) Create(ctx context.Context) (*checkout.Checkout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createResp == nil {
		return &checkout.Checkout{ID: "gid://shopify/Cart/created", CheckoutURL: "https://shop.example/created"}, nil
	}
	return f.createResp, nil
}

func (f *fakeClient) Get(ctx context.Context, id string) (*checkout.Checkout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResp, nil
}

func (f *fakeClient) Replace(ctx context.Context, lines []checkout.Line) (*checkout.Checkout, error) {
	f.mu.Lock()
	fn := f.replaceFn
	f.replaceCalls++
	f.lastReplace = lines
	f.mu.Unlock()

	if fn != nil {
		return fn(lines)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	if f.replaceResp == nil {
		return &checkout.Checkout{ID: "gid://shopify/Cart/synced", CheckoutURL: "https://shop.example/synced"}, nil
	}
	return f.replaceResp, nil
}

func (f *fakeClient) calls() (create, get, replace int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.getCalls, f.replaceCalls
}

func testIndex() *catalog.Index {
	return catalog.NewIndex([]catalog.Product{
		{VariantID: variant1, Title: "Issue 01", Handle: "issue-01", Description: "The first issue", Currency: "USD", Price: 10},
		{VariantID: "gid://shopify/ProductVariant/2", Title: "Issue 02", Handle: "issue-02", Currency: "USD", Price: 12},
	})
}

func testItem(qty int) checkout.Item {
	return checkout.Item{
		ProductID:   variant1,
		Title:       "Issue 01",
		Handle:      "issue-01",
		Description: "The first issue",
		Currency:    "USD",
		Price:       10,
		Quantity:    qty,
	}
}

func newTestCart(client checkout.Client) (*Cart, *identity.MemoryStore) {
	store := identity.NewMemoryStore(identity.WithNormalizer(NormalizeID))
	return New(client, store, testIndex()), store
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "prefixed", id: "gid://shopify/Cart/abc123", want: "abc123"},
		{name: "already bare", id: "abc123", want: "abc123"},
		{name: "empty", id: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeID(tt.id)
			assert.Equal(t, tt.want, got)
			// Idempotent: stripping a stripped id returns it unchanged.
			assert.Equal(t, got, NormalizeID(got))
		})
	}
}

func TestCart_AddItem_NewLine(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)

	require.NoError(t, c.AddItem(context.Background(), testItem(2)))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, variant1, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Empty(t, items[0].LineID, "line not yet persisted")
	assert.Equal(t, 20.0, c.Total())
}

func TestCart_AddItem_AccumulatesQuantity(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)

	require.NoError(t, c.AddItem(context.Background(), testItem(2)))
	require.NoError(t, c.AddItem(context.Background(), testItem(1)))

	items := c.Items()
	require.Len(t, items, 1, "at most one line per variant")
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 30.0, c.Total())

	_, _, replace := client.calls()
	assert.Equal(t, 2, replace, "each mutation syncs the full line set")
	assert.Equal(t, 3, client.lastReplace[0].Quantity)
}

func TestCart_AddItem_QuantitySumsOverSequence(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)

	quantities := []int{1, 4, 2, 3}
	want := 0
	for _, q := range quantities {
		require.NoError(t, c.AddItem(context.Background(), testItem(q)))
		want += q
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, want, items[0].Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	tests := []struct {
		name      string
		startQty  int
		removeQty int
		wantLines int
		wantQty   int
	}{
		{name: "partial removal keeps line", startQty: 3, removeQty: 1, wantLines: 1, wantQty: 2},
		{name: "exact removal drops line", startQty: 3, removeQty: 3, wantLines: 0},
		{name: "over-removal drops line", startQty: 2, removeQty: 5, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			c, _ := newTestCart(client)
			require.NoError(t, c.AddItem(context.Background(), testItem(tt.startQty)))

			require.NoError(t, c.RemoveItem(context.Background(), testItem(tt.removeQty)))

			items := c.Items()
			require.Len(t, items, tt.wantLines)
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQty, items[0].Quantity)
				assert.Positive(t, items[0].Quantity, "no line may sit at quantity <= 0")
			}
		})
	}
}

func TestCart_RemoveItem_UnknownVariantStillSyncs(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)
	require.NoError(t, c.AddItem(context.Background(), testItem(2)))

	unknown := checkout.Item{ProductID: "gid://shopify/ProductVariant/999", Quantity: 1}
	require.NoError(t, c.RemoveItem(context.Background(), unknown))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	_, _, replace := client.calls()
	assert.Equal(t, 2, replace)
}

func TestCart_SyncEmptyCartIsNoop(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)

	require.NoError(t, c.AddItem(context.Background(), testItem(3)))
	require.NoError(t, c.RemoveItem(context.Background(), testItem(3)))
	assert.Empty(t, c.Items())

	_, _, before := client.calls()
	require.NoError(t, c.Sync(context.Background()))
	_, _, after := client.calls()
	assert.Equal(t, before, after, "empty cart must not create a checkout")
}

// The reference behavior updates only id and URL from the sync response; the
// response's line collection is not merged back, so local items can drift
// from server truth until the next Initialize. This test pins that asymmetry
// rather than guessing server-side intent.
func TestCart_SyncDoesNotMergeResponseLines(t *testing.T) {
	client := &fakeClient{
		replaceResp: &checkout.Checkout{
			ID:          "gid://shopify/Cart/fresh",
			CheckoutURL: "https://shop.example/fresh",
			Lines: checkout.RawLines{Nodes: []checkout.RawLine{{
				ID:          "server-line",
				Merchandise: checkout.Merchandise{ID: variant1},
				Cost:        checkout.LineCost{AmountPerQuantity: checkout.Money{Amount: "99", CurrencyCode: "USD"}},
				Quantity:    42,
			}}},
		},
	}
	c, _ := newTestCart(client)

	require.NoError(t, c.AddItem(context.Background(), testItem(2)))

	assert.Equal(t, "fresh", c.ID())
	assert.Equal(t, "https://shop.example/fresh", c.URL())

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "local quantity kept, server lines ignored")
	assert.Equal(t, 10.0, items[0].Price, "local price kept, server repricing ignored")
	assert.Empty(t, items[0].LineID)
}

func TestCart_SyncErrorPropagatesWithoutRollback(t *testing.T) {
	client := &fakeClient{replaceErr: errors.New("network down")}
	c, _ := newTestCart(client)

	err := c.AddItem(context.Background(), testItem(2))
	assert.Error(t, err)

	// No retry and no rollback: the optimistic local mutation stays.
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCart_Initialize_NoStoredID(t *testing.T) {
	client := &fakeClient{}
	c, store := newTestCart(client)

	require.NoError(t, c.Initialize(context.Background()))

	create, get, _ := client.calls()
	assert.Equal(t, 1, create, "exactly one create_checkout call")
	assert.Equal(t, 0, get)

	id, ok := store.Get()
	require.True(t, ok, "returned identifier is persisted immediately")
	assert.Equal(t, "created", id, "persisted identifier is normalized")
	assert.Equal(t, "created", c.ID())
	assert.Equal(t, "https://shop.example/created", c.URL())
	assert.Empty(t, c.Items())
}

func TestCart_Initialize_StoredID(t *testing.T) {
	client := &fakeClient{
		getResp: &checkout.Checkout{
			ID:          "gid://shopify/Cart/stored",
			CheckoutURL: "https://shop.example/stored",
			Lines: checkout.RawLines{Nodes: []checkout.RawLine{{
				ID:          "line-1",
				Merchandise: checkout.Merchandise{ID: variant1},
				Cost:        checkout.LineCost{AmountPerQuantity: checkout.Money{Amount: "10.0", CurrencyCode: "USD"}},
				Quantity:    2,
			}}},
		},
	}
	c, store := newTestCart(client)
	store.Set("gid://shopify/Cart/stored")

	require.NoError(t, c.Initialize(context.Background()))

	create, get, _ := client.calls()
	assert.Equal(t, 0, create, "no create_checkout when an identifier is stored")
	assert.Equal(t, 1, get)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "line-1", items[0].LineID)
	assert.Equal(t, "Issue 01", items[0].Title, "line enriched from the catalog index")
	assert.Equal(t, "issue-01", items[0].Handle)
	assert.Equal(t, 10.0, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 20.0, c.Total())
}

func TestCart_Initialize_ExpiredCheckoutRecreates(t *testing.T) {
	client := &fakeClient{getErr: checkout.ErrNotFound}
	c, store := newTestCart(client)
	store.Set("stale")

	require.NoError(t, c.Initialize(context.Background()))

	create, get, _ := client.calls()
	assert.Equal(t, 1, get)
	assert.Equal(t, 1, create, "expired checkout falls back to creating a new one")

	id, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "created", id, "stale identifier replaced")
}

func TestCart_Initialize_FetchErrorSurfaces(t *testing.T) {
	client := &fakeClient{getErr: errors.New("boom")}
	c, store := newTestCart(client)
	store.Set("abc")

	err := c.Initialize(context.Background())
	assert.Error(t, err)

	create, _, _ := client.calls()
	assert.Equal(t, 0, create, "transient failures do not silently recreate")
}

func TestCart_Initialize_DropsUnknownVariants(t *testing.T) {
	client := &fakeClient{
		getResp: &checkout.Checkout{
			ID:          "gid://shopify/Cart/stored",
			CheckoutURL: "https://shop.example/stored",
			Lines: checkout.RawLines{Nodes: []checkout.RawLine{
				{
					ID:          "line-1",
					Merchandise: checkout.Merchandise{ID: "gid://shopify/ProductVariant/unknown"},
					Cost:        checkout.LineCost{AmountPerQuantity: checkout.Money{Amount: "5", CurrencyCode: "USD"}},
					Quantity:    1,
				},
				{
					ID:          "line-2",
					Merchandise: checkout.Merchandise{ID: variant1},
					Cost:        checkout.LineCost{AmountPerQuantity: checkout.Money{Amount: "10", CurrencyCode: "USD"}},
					Quantity:    1,
				},
			}},
		},
	}
	c, store := newTestCart(client)
	store.Set("stored")

	require.NoError(t, c.Initialize(context.Background()))

	items := c.Items()
	require.Len(t, items, 1, "lines without catalog metadata are dropped")
	assert.Equal(t, "line-2", items[0].LineID)
}

func TestCart_Total_RecomputedFresh(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)

	assert.Zero(t, c.Total())

	require.NoError(t, c.AddItem(context.Background(), testItem(2)))
	assert.Equal(t, 20.0, c.Total())

	item2 := checkout.Item{ProductID: "gid://shopify/ProductVariant/2", Currency: "USD", Price: 12, Quantity: 1}
	require.NoError(t, c.AddItem(context.Background(), item2))
	assert.Equal(t, 32.0, c.Total())

	require.NoError(t, c.RemoveItem(context.Background(), testItem(1)))
	assert.Equal(t, 22.0, c.Total())
}

func TestCart_Currency(t *testing.T) {
	client := &fakeClient{}

	c, _ := newTestCart(client)
	assert.Equal(t, DefaultCurrency, c.Currency(), "empty cart falls back to the default")

	require.NoError(t, c.AddItem(context.Background(), testItem(1)))
	assert.Equal(t, "USD", c.Currency())

	store := identity.NewMemoryStore()
	eur := New(client, store, testIndex(), WithDefaultCurrency("EUR"))
	assert.Equal(t, "EUR", eur.Currency())
}

func TestCart_Dupe(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)
	require.NoError(t, c.AddItem(context.Background(), testItem(2)))

	dup := c.Dupe()
	require.NotSame(t, c, dup)
	assert.Equal(t, c.ID(), dup.ID())
	assert.Equal(t, c.URL(), dup.URL())
	assert.Equal(t, c.Items(), dup.Items())
	assert.Same(t, c.merch, dup.merch, "catalog reference is shared")

	// One-level copy isolation: mutating the copy's lines leaves the
	// original untouched.
	dup.items[0].Quantity = 99
	assert.Equal(t, 2, c.Items()[0].Quantity)

	// And no I/O happened.
	create, get, replace := client.calls()
	assert.Equal(t, 0, create)
	assert.Equal(t, 0, get)
	assert.Equal(t, 1, replace, "only the AddItem sync")
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	client := &fakeClient{}
	c, _ := newTestCart(client)
	require.NoError(t, c.AddItem(context.Background(), testItem(2)))

	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 2, c.Items()[0].Quantity, "views must not be able to mutate internals")
}

// Overlapping syncs are resolved by arrival order: whichever response lands
// last owns the id and URL. The engine has no sequencing or concurrency
// token; this pins the accepted last-response-wins behavior.
func TestCart_OverlappingSyncsLastResponseWins(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	client := &fakeClient{}
	call := 0
	client.replaceFn = func(lines []checkout.Line) (*checkout.Checkout, error) {
		client.mu.Lock()
		call++
		n := call
		client.mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return &checkout.Checkout{ID: "gid://shopify/Cart/first", CheckoutURL: "https://shop.example/first"}, nil
		}
		return &checkout.Checkout{ID: "gid://shopify/Cart/second", CheckoutURL: "https://shop.example/second"}, nil
	}

	c, _ := newTestCart(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.AddItem(context.Background(), testItem(1))
	}()

	<-firstStarted
	// Second mutation completes its round-trip while the first is in flight.
	require.NoError(t, c.AddItem(context.Background(), testItem(1)))
	assert.Equal(t, "second", c.ID())

	// Now the first response arrives late and silently wins.
	close(releaseFirst)
	wg.Wait()
	assert.Equal(t, "first", c.ID())

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "both local mutations survive")
}

func TestCart_Abandon(t *testing.T) {
	client := &fakeClient{}
	c, store := newTestCart(client)
	require.NoError(t, c.Initialize(context.Background()))
	require.NoError(t, c.AddItem(context.Background(), testItem(1)))

	c.Abandon()

	assert.Empty(t, c.ID())
	assert.Empty(t, c.URL())
	assert.Empty(t, c.Items())
	_, ok := store.Get()
	assert.False(t, ok, "identifier cleared from durable storage")
}
