package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "key", []byte(`[1,2,3]`), time.Hour))
	data, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), data)

	require.NoError(t, c.Delete(ctx, "key"))
	_, err = c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_TTL(t *testing.T) {
	current := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	c := NewMemoryCache(WithClock(func() time.Time { return current }))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte(`"payload"`), 24*time.Hour))

	current = current.Add(23 * time.Hour)
	_, err := c.Get(ctx, "key")
	assert.NoError(t, err)

	// expired entries are evicted on read
	current = current.Add(2 * time.Hour)
	_, err = c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Empty(t, c.items)
}

func TestTypedAccess(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t,
		SetTyped(ctx, c, "typed", payload{Name: "x", Count: 3}, time.Hour))
	got, err := GetTyped[payload](ctx, c, "typed")
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "x", Count: 3}, got)

	_, err = GetTyped[payload](ctx, c, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestKeyPartitioning(t *testing.T) {
	start := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "f1_car_data_9472_1", CarDataKey(9472, 1))
	assert.Equal(t,
		"f1_location_chunk_9472_1_2024-03-02T15:00:00Z",
		LocationChunkKey(9472, 1, start))
	// same entity, different driver must never collide
	assert.NotEqual(t, LapKey(9472, 1), LapKey(9472, 44))
	assert.NotEqual(t,
		CarDataChunkKey(9472, 1, start),
		CarDataChunkKey(9472, 1, start.Add(15*time.Minute)))
}
