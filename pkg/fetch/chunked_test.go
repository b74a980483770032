//nolint:funlen // ok for tests
package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/cache"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

var chunkSessionStart = time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)

func carFixture(n int) []model.CarData {
	ret := make([]model.CarData, n)
	for i := range ret {
		ret[i] = model.CarData{DriverNumber: 1, Speed: 200 + i}
	}
	return ret
}

func chunkCfg(apiLoad rangeLoaderFunc[model.CarData]) *chunkConfig[model.CarData] {
	return &chunkConfig[model.CarData]{
		name:    "car",
		apiLoad: apiLoad,
		chunkKey: func(start time.Time) string {
			return fmt.Sprintf("test_chunk_%s", start.Format(time.RFC3339))
		},
		fullKey:    "test_full",
		ttl:        time.Hour,
		retryDelay: CarRetryDelay,
	}
}

func noSleep(s *Service) *Service {
	s.sleep = func(ctx context.Context, d time.Duration) {}
	return s
}

func TestLoadChunked_StopsOnEmptyChunk(t *testing.T) {
	windows := make([]time.Time, 0)
	cfg := chunkCfg(func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
		windows = append(windows, from)
		// two 15 minute windows with data, then the recording ends
		if len(windows) <= 2 {
			return carFixture(10), nil
		}
		return []model.CarData{}, nil
	})
	mem := cache.NewMemoryCache()
	s := noSleep(NewService(WithCache(mem)))

	got, err := loadChunked(context.Background(), s, cfg, chunkSessionStart)
	require.NoError(t, err)
	assert.Len(t, got, 20)
	// the walk stops after the first empty chunk, not at the horizon
	require.Len(t, windows, 3)
	assert.Equal(t, chunkSessionStart, windows[0])
	assert.Equal(t, chunkSessionStart.Add(ChunkSize), windows[1])
	assert.Equal(t, chunkSessionStart.Add(2*ChunkSize), windows[2])

	// both the chunks and the assembled series are written back
	cached, err := cache.GetTyped[[]model.CarData](
		context.Background(), mem, "test_full")
	require.NoError(t, err)
	assert.Len(t, cached, 20)
	chunk, err := cache.GetTyped[[]model.CarData](
		context.Background(), mem, cfg.chunkKey(chunkSessionStart))
	require.NoError(t, err)
	assert.Len(t, chunk, 10)
}

func TestLoadChunked_HorizonBoundsTheWalk(t *testing.T) {
	fetches := 0
	cfg := chunkCfg(func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
		fetches++
		return carFixture(1), nil // data never ends
	})
	s := noSleep(NewService())

	got, err := loadChunked(context.Background(), s, cfg, chunkSessionStart)
	require.NoError(t, err)
	assert.Equal(t, int(SessionHorizon/ChunkSize), fetches)
	assert.Len(t, got, fetches)
}

func TestLoadChunked_CachedChunkSkipsFetch(t *testing.T) {
	mem := cache.NewMemoryCache()
	cfg := chunkCfg(nil)
	require.NoError(t, cache.SetTyped(context.Background(), mem,
		cfg.chunkKey(chunkSessionStart), carFixture(5), time.Hour))

	fetches := 0
	cfg.apiLoad = func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
		fetches++
		assert.Equal(t, chunkSessionStart.Add(ChunkSize), from)
		return []model.CarData{}, nil
	}
	s := noSleep(NewService(WithCache(mem)))

	got, err := loadChunked(context.Background(), s, cfg, chunkSessionStart)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, 1, fetches)
}

func TestLoadChunk_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	sleeps := make([]time.Duration, 0)
	cfg := chunkCfg(func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("rate limited")
		}
		return carFixture(2), nil
	})
	s := NewService()
	s.sleep = func(ctx context.Context, d time.Duration) {
		sleeps = append(sleeps, d)
	}

	got, err := loadChunk(context.Background(), s, s.l, cfg,
		chunkSessionStart, chunkSessionStart.Add(ChunkSize))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{CarRetryDelay, CarRetryDelay}, sleeps)
}

func TestLoadChunk_RetriesExhausted(t *testing.T) {
	attempts := 0
	cfg := chunkCfg(func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
		attempts++
		return nil, errors.New("api down")
	})
	s := noSleep(NewService())

	_, err := loadChunk(context.Background(), s, s.l, cfg,
		chunkSessionStart, chunkSessionStart.Add(ChunkSize))
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, MaxRetries+1, attempts)
}

func TestLoadChunk_DurableStoreWins(t *testing.T) {
	cfg := chunkCfg(func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
		t.Fatal("api must not be called")
		return nil, nil
	})
	cfg.dbLoad = func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
		return carFixture(7), nil
	}
	s := noSleep(NewService(WithQuerier(&stubQuerier{})))

	got, err := loadChunk(context.Background(), s, s.l, cfg,
		chunkSessionStart, chunkSessionStart.Add(ChunkSize))
	require.NoError(t, err)
	assert.Len(t, got, 7)
}
