package identity

import "sync"

// MemoryStore is an in-memory Store. It does not survive restarts and exists
// for tests and for callers that explicitly opt out of durable identity.
type MemoryStore struct {
	mu   sync.Mutex
	id   string
	set  bool
	opts options
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{opts: applyOptions(opts)}
}

// Get returns the stored checkout identifier, if any.
func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.set
}

// Set stores the normalized identifier.
func (s *MemoryStore) Set(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = s.opts.normalize(id)
	s.set = true
}

// Clear removes the stored identifier.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	s.set = false
}
