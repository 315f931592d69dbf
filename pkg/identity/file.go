package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// fileState is the on-disk representation of the store.
type fileState struct {
	CheckoutID string `json:"checkout_id"`
}

// FileStore is a JSON file-backed Store. The file survives process restarts
// within the same profile directory, matching the durability contract of
// browser-local storage.
type FileStore struct {
	mu   sync.Mutex
	path string
	opts options
}

var _ Store = (*FileStore)(nil)

// NewFileStore constructs a FileStore at the given path. The file is created
// lazily on the first Set; a missing or unreadable file means "no active
// checkout".
func NewFileStore(path string, opts ...Option) *FileStore {
	return &FileStore{
		path: path,
		opts: applyOptions(opts),
	}
}

// Get returns the stored checkout identifier, if any.
func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		// Missing or unreadable storage degrades to absent.
		return "", false
	}
	var state fileState
	if err := json.Unmarshal(b, &state); err != nil {
		return "", false
	}
	if state.CheckoutID == "" {
		return "", false
	}
	return state.CheckoutID, true
}

// Set stores the normalized identifier. Write failures are swallowed: the
// engine then recreates a checkout on the next start, which is the documented
// degradation when durable storage is unavailable.
func (s *FileStore) Set(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := fileState{CheckoutID: s.opts.normalize(id)}
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	// Atomic replace so a crash mid-write never leaves a corrupt file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}

// Clear removes the stored identifier.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path)
}
