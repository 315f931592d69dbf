package cache

// Cache defines the interface for signed URL cache operations.
// Keys are issue numbers, values are signed download URLs.
type Cache interface {
	Get(number int) (string, bool)
	Set(number int, url string)
	Invalidate(number int)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
