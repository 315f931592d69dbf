package identity

import "fmt"

// Kind selects a Store implementation.
type Kind string

const (
	// KindFile selects the JSON file-backed store.
	KindFile Kind = "file"
	// KindMemory selects the in-memory store.
	KindMemory Kind = "memory"
)

// NewStore constructs a Store of the given kind. Path is only used by the
// file store.
func NewStore(kind Kind, path string, opts ...Option) (Store, error) {
	switch kind {
	case KindFile:
		return NewFileStore(path, opts...), nil
	case KindMemory:
		return NewMemoryStore(opts...), nil
	default:
		return nil, fmt.Errorf("unknown identity store kind %q", kind)
	}
}
