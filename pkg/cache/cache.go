package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache is the shared key-value tier between the durable store and the
// live API. Values are opaque JSON. An entry is logically absent once its
// TTL elapsed, even if still physically stored - the read path has to
// check and evict.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// envelope carries the write timestamp alongside the payload so that
// backends without native per-entry expiry can evaluate the TTL on read.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	ExpiresIn time.Duration   `json:"expiresIn"`
}

func (e *envelope) expired(now time.Time) bool {
	return now.Sub(e.Timestamp) > e.ExpiresIn
}

// GetTyped reads a cached JSON payload into T. Returns ErrCacheMiss when
// the key is absent or expired.
func GetTyped[T any](ctx context.Context, c Cache, key string) (T, error) {
	var ret T
	data, err := c.Get(ctx, key)
	if err != nil {
		return ret, err
	}
	if err := json.Unmarshal(data, &ret); err != nil {
		return ret, err
	}
	return ret, nil
}

//nolint:whitespace // editor/linter
func SetTyped[T any](
	ctx context.Context, c Cache, key string, value T, ttl time.Duration,
) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
