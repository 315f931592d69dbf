// Package identity persists the current checkout identifier across process
// restarts, playing the role browser-local storage plays for a web client.
//
// Storage failures are deliberately non-fatal: a store that cannot read or
// write degrades to "no active checkout", and the cart engine responds by
// creating a fresh remote checkout. That trade-off is documented behavior,
// not an error condition.
package identity

// Store holds a single checkout identifier.
//
// Implementations must treat all failures as absence: Get reports false,
// Set and Clear are best-effort.
type Store interface {
	// Get returns the stored identifier and whether one is present.
	Get() (string, bool)
	// Set stores the identifier, replacing any previous value.
	Set(id string)
	// Clear removes the stored identifier.
	Clear()
}

// Normalizer rewrites an identifier before it is stored, typically stripping
// a URI-scheme prefix so that lookups are prefix-agnostic. Normalizers must
// be idempotent.
type Normalizer func(id string) string

// Option configures a store implementation.
type Option func(*options)

type options struct {
	normalize Normalizer
}

// WithNormalizer makes the store normalize identifiers on Set.
func WithNormalizer(n Normalizer) Option {
	return func(o *options) {
		o.normalize = n
	}
}

func applyOptions(opts []Option) options {
	o := options{normalize: func(id string) string { return id }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
