package cache

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
)

// NatsCache stores entries in a JetStream key-value bucket. The bucket is
// shared by all processes, entries are idempotent derived data, so
// concurrent writers racing on the same key are fine.
type NatsCache struct {
	kv  nats.KeyValue
	now func() time.Time
	l   *log.Logger
}

// key charset allowed by JetStream buckets; everything else is mapped to "-"
var invalidKeyChars = regexp.MustCompile(`[^-/_=.a-zA-Z0-9]`)

type NatsOption func(*NatsCache)

func WithNatsClock(now func() time.Time) NatsOption {
	return func(c *NatsCache) {
		c.now = now
	}
}

//nolint:whitespace // editor/linter
func NewNatsCache(conn *nats.Conn, bucket string, opts ...NatsOption) (
	*NatsCache, error,
) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, err
	}
	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: bucket,
			// hard upper bound; the logical per-entry TTL is checked on read
			TTL: 48 * time.Hour,
		})
	}
	if err != nil {
		return nil, err
	}
	ret := &NatsCache{
		kv:  kv,
		now: time.Now,
		l:   log.Default().Named("cache.nats"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

func encodeKey(key string) string {
	return invalidKeyChars.ReplaceAllString(key, "-")
}

func (c *NatsCache) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := c.kv.Get(encodeKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var item envelope
	if err := json.Unmarshal(entry.Value(), &item); err != nil {
		return nil, err
	}
	if item.expired(c.now()) {
		if err := c.kv.Delete(encodeKey(key)); err != nil {
			c.l.Warn("could not evict expired entry",
				log.String("key", key), log.ErrorField(err))
		}
		return nil, ErrCacheMiss
	}
	return item.Data, nil
}

//nolint:whitespace // editor/linter
func (c *NatsCache) Set(
	ctx context.Context, key string, value []byte, ttl time.Duration,
) error {
	item := envelope{
		Data:      json.RawMessage(value),
		Timestamp: c.now(),
		ExpiresIn: ttl,
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	_, err = c.kv.Put(encodeKey(key), data)
	return err
}

func (c *NatsCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(encodeKey(key))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil
	}
	return err
}
