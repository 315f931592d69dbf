package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/i18n"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// defaultNumShards is the default shard count for the rate limiter.
	defaultNumShards = 16
)

// visitor tracks the remaining quota for one shopper or staff account.
type visitor struct {
	tokens    int
	lastReset time.Time
}

// rateLimiterShard is a single shard of the rate limiter.
type rateLimiterShard struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

// ShardedRateLimiter throttles checkout and catalog traffic with a fixed
// window per identifier. Visitors are spread over shards keyed by an FNV
// hash to keep lock contention low under checkout bursts.
type ShardedRateLimiter struct {
	shards    []*rateLimiterShard
	numShards int
	rate      int
	window    time.Duration
	stopCh    chan struct{}
}

// RateLimiter is an alias for ShardedRateLimiter for backward compatibility.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter creates a sharded rate limiter with the default shard count.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a sharded rate limiter with a custom shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{
			visitors: make(map[string]*visitor),
		}
	}

	rl := &ShardedRateLimiter{
		shards:    shards,
		numShards: numShards,
		rate:      rate,
		window:    window,
		stopCh:    make(chan struct{}),
	}

	go rl.cleanup()
	return rl
}

func (rl *ShardedRateLimiter) getShard(identifier string) *rateLimiterShard {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(rl.numShards)]
}

// checkRateLimit is the shared quota logic behind both the IP and the
// per-user limiter.
func (rl *ShardedRateLimiter) checkRateLimit(identifier string) (allowed bool, remaining int) {
	shard := rl.getShard(identifier)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	v, exists := shard.visitors[identifier]
	now := time.Now()

	if !exists || now.Sub(v.lastReset) > rl.window {
		shard.visitors[identifier] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return true, rl.rate - 1
	}

	if v.tokens <= 0 {
		return false, 0
	}

	v.tokens--
	return true, v.tokens
}

// enforce applies the check for an identifier and writes the quota
// headers and, when exhausted, the localized 429 envelope.
func (rl *ShardedRateLimiter) enforce(c *gin.Context, identifier string) bool {
	allowed, remaining := rl.checkRateLimit(identifier)

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

	if !allowed {
		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)
		c.Header("Retry-After", rl.window.String())
		errorResp := dto.NewError(dto.ErrCodeRateLimit, i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, locale)).
			WithRequestID(requestID)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResp)
		return false
	}
	return true
}

// RateLimit limits requests per client IP. This covers anonymous
// shoppers hitting the checkout and catalog endpoints.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enforce(c, c.ClientIP()) {
			return
		}
		c.Next()
	}
}

// UserRateLimit limits requests per authenticated staff account,
// falling back to the client IP when no account is on the context.
func (rl *ShardedRateLimiter) UserRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enforce(c, rl.getUserIdentifier(c)) {
			return
		}
		c.Next()
	}
}

// getUserIdentifier keys by staff ID when the JWT middleware has run,
// otherwise by IP.
func (rl *ShardedRateLimiter) getUserIdentifier(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(primitive.ObjectID); ok {
			return "user:" + id.Hex()
		}
	}
	return "ip:" + c.ClientIP()
}

// cleanup evicts idle visitors once a minute until Stop is called.
func (rl *ShardedRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ShardedRateLimiter) cleanupExpired() {
	now := time.Now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, v := range shard.visitors {
			if now.Sub(v.lastReset) > threshold {
				delete(shard.visitors, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop halts the background cleanup goroutine.
func (rl *ShardedRateLimiter) Stop() {
	close(rl.stopCh)
}

// Stats reports the tracked visitor counts, total and per shard.
func (rl *ShardedRateLimiter) Stats() (totalVisitors int, perShard []int) {
	perShard = make([]int, rl.numShards)
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.visitors)
		totalVisitors += perShard[i]
		shard.mu.Unlock()
	}
	return totalVisitors, perShard
}
