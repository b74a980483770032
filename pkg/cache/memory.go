package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryCache is the in-process implementation, also used as test double.
type MemoryCache struct {
	mutex sync.Mutex
	items map[string]envelope
	now   func() time.Time
}

type MemoryOption func(*MemoryCache)

// WithClock replaces the time source (used in tests).
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]envelope),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	item, ok := c.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if item.expired(c.now()) {
		delete(c.items, key)
		return nil, ErrCacheMiss
	}
	return item.Data, nil
}

//nolint:whitespace // editor/linter
func (c *MemoryCache) Set(
	ctx context.Context, key string, value []byte, ttl time.Duration,
) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items[key] = envelope{
		Data:      json.RawMessage(value),
		Timestamp: c.now(),
		ExpiresIn: ttl,
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, key)
	return nil
}
