package market

import (
	"sync"
	"time"

	"crypto-signal-analyzer/internal/types"
)

// priceCache stores recent price points so bursts of enrichment lookups for
// the same symbol do not hammer the provider.
type priceCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	point     types.PricePoint
	timestamp time.Time
}

func newPriceCache(ttl time.Duration) *priceCache {
	cache := &priceCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
	go cache.cleanupLoop()
	return cache
}

// get retrieves a cached price point if still fresh
func (c *priceCache) get(symbol string) (types.PricePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return types.PricePoint{}, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return types.PricePoint{}, false
	}
	return entry.point, true
}

// set stores a price point
func (c *priceCache) set(symbol string, point types.PricePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{
		point:     point,
		timestamp: time.Now(),
	}
}

// cleanupLoop periodically removes expired entries
func (c *priceCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// cleanup removes expired entries
func (c *priceCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for symbol, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, symbol)
		}
	}
}
