// Package service contains the business logic for the storefront service.
package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/nnmag/storefront/internal/metrics"
	"github.com/nnmag/storefront/internal/service/cache"
)

// urlCache provides thread-safe LRU caching of signed download URLs with TTL
// expiration. URLs are keyed by issue number and expire well before the signed
// URL itself does, so a cached entry is always still downloadable.
// It implements the cache.Cache interface.
type urlCache struct {
	mu        sync.RWMutex
	capacity  int
	ttl       time.Duration
	items     map[int]*cacheEntry
	head      *cacheEntry
	tail      *cacheEntry
	stopCh    chan struct{}
	hits      int64
	misses    int64
	evictions int64
}

// cacheEntry represents a single cached URL with expiration tracking.
type cacheEntry struct {
	number    int
	url       string
	expiresAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// newURLCache creates a new TTL-based LRU cache with the specified capacity
// and TTL. A background goroutine periodically cleans up expired entries.
func newURLCache(capacity int, ttl time.Duration) *urlCache {
	c := &urlCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[int]*cacheEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Stop gracefully shuts down the cache and cleans up resources.
func (c *urlCache) Stop() {
	close(c.stopCh)
}

// Metrics returns current cache performance metrics.
func (c *urlCache) Metrics() cache.Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cache.Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// Get retrieves a signed URL from the cache if it exists and hasn't expired.
func (c *urlCache) Get(number int) (string, bool) {
	c.mu.RLock()
	entry, ok := c.items[number]
	c.mu.RUnlock()

	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "miss")
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Double-check after acquiring lock
		if _, stillExists := c.items[number]; stillExists {
			c.removeEntry(entry)
		}
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "expired")
		return "", false
	}

	c.mu.Lock()
	c.moveToFront(entry)
	c.mu.Unlock()

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.url, true
}

// Set adds or updates a signed URL in the cache with the configured TTL.
// If the cache is at capacity, the least recently used entry is evicted.
func (c *urlCache) Set(number int, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[number]; ok {
		entry.url = url
		entry.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry{
		number:    number,
		url:       url,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.items[number] = entry
	c.addToFront(entry)

	if len(c.items) > c.capacity {
		c.removeTail()
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

// startCleanup runs an adaptive background cleanup routine.
func (c *urlCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Only sweep when the cache is more than 80% full
			c.mu.RLock()
			shouldCleanup := len(c.items) > (c.capacity * 80 / 100)
			c.mu.RUnlock()

			if shouldCleanup {
				c.cleanup()
			}
		case <-c.stopCh:
			return
		}
	}
}

// cleanup removes all expired entries from the cache.
func (c *urlCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	currentTime := time.Now()
	for _, entry := range c.items {
		if currentTime.After(entry.expiresAt) {
			c.removeEntry(entry)
		}
	}
}

// removeEntry removes an entry from both the map and the linked list.
func (c *urlCache) removeEntry(entry *cacheEntry) {
	delete(c.items, entry.number)
	c.remove(entry)
}

// moveToFront moves an existing entry to the front of the LRU list.
func (c *urlCache) moveToFront(entry *cacheEntry) {
	if entry == c.head {
		return
	}
	c.remove(entry)
	c.addToFront(entry)
}

// addToFront adds an entry to the front of the LRU list.
func (c *urlCache) addToFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

// remove removes an entry from the linked list without touching the map.
func (c *urlCache) remove(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

// removeTail removes the least recently used entry from the cache.
func (c *urlCache) removeTail() {
	if c.tail == nil {
		return
	}
	delete(c.items, c.tail.number)
	c.remove(c.tail)
}

// Invalidate removes a specific issue number from the cache.
func (c *urlCache) Invalidate(number int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[number]; ok {
		c.removeEntry(entry)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear removes all entries from the cache.
func (c *urlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[int]*cacheEntry, c.capacity)
	c.head = nil
	c.tail = nil

	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)

	metrics.RecordCacheOperation("clear", "success")
}
