package openmeteo

import (
	"context"
	"sync"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Cache wraps a Fetcher and returns stored responses for identical requests
// within the time-to-live window
type Cache struct {
	source  Fetcher
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]cacheEntry
	hits    uint64
	misses  uint64
}

type cacheEntry struct {
	response *Response
	created  time.Time
}

var _ Fetcher = (*Cache)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewCache returns a read-through cache in front of source. A ttl of zero
// or less disables caching.
func NewCache(source Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Forecast returns a cached response when one exists and has not expired,
// otherwise it fetches from the source and stores the response
func (c *Cache) Forecast(ctx context.Context, req *ForecastRequest) (*Response, error) {
	if c.ttl <= 0 {
		return c.source.Forecast(ctx, req)
	}

	// Cache hit
	key := req.Key()
	c.mu.Lock()
	if entry, exists := c.entries[key]; exists && c.now().Sub(entry.created) < c.ttl {
		c.hits++
		c.mu.Unlock()
		return entry.response, nil
	}
	c.misses++
	c.mu.Unlock()

	// Cache miss, fetch fresh data
	response, err := c.source.Forecast(ctx, req)
	if err != nil {
		return nil, err
	}

	// Store in cache, removing expired entries
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, entry := range c.entries {
		if now.Sub(entry.created) >= c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{
		response: response,
		created:  now,
	}

	// Return success
	return response, nil
}

// Stats returns the number of cache hits and misses
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of stored responses, including expired ones
// which have not yet been removed
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
