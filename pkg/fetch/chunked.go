package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/cache"
)

const (
	// ChunkSize partitions the estimated session duration into fetch windows.
	ChunkSize = 15 * time.Minute
	// SessionHorizon bounds the chunk walk.
	SessionHorizon = 180 * time.Minute
	// MaxRetries per chunk before the error propagates.
	MaxRetries = 3
)

type rangeLoaderFunc[E any] func(ctx context.Context, from, to time.Time) ([]E, error)

type chunkConfig[E any] struct {
	name       string
	dbLoad     rangeLoaderFunc[E] // optional
	apiLoad    rangeLoaderFunc[E]
	chunkKey   func(start time.Time) string
	fullKey    string
	ttl        time.Duration
	retryDelay time.Duration
}

// loadChunked fetches a high-volume series window by window, sequentially
// to respect the rate limit. The walk stops early once a fetched chunk
// comes back empty - the session's recorded data has ended. Only a chunk
// that exhausts its retries makes the whole load fail.
//
//nolint:cyclop // tier walk
func loadChunked[E any](
	ctx context.Context, s *Service, cfg *chunkConfig[E], sessionStart time.Time,
) ([]E, error) {
	l := s.l.Named(cfg.name)
	numChunks := int(SessionHorizon / ChunkSize)
	allData := make([]E, 0)
	start := sessionStart
	for i := 0; i < numChunks; i++ {
		end := start.Add(ChunkSize)
		if s.cache != nil {
			data, err := cache.GetTyped[[]E](ctx, s.cache, cfg.chunkKey(start))
			if err == nil {
				allData = append(allData, data...)
				start = end
				continue
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				l.Warn("chunk cache read failed", log.ErrorField(err))
			}
		}
		data, err := loadChunk(ctx, s, l, cfg, start, end)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			l.Debug("empty chunk, recorded data ended",
				log.Time("start", start), log.Int("chunk", i))
			break
		}
		s.writeBack(ctx, l, cfg.chunkKey(start), data, cfg.ttl)
		allData = append(allData, data...)
		start = end
	}
	s.writeBack(ctx, l, cfg.fullKey, allData, cfg.ttl)
	return allData, nil
}

// loadChunk reads one window: durable store first, then the live API with
// a bounded retry loop.
//
//nolint:whitespace // editor/linter
func loadChunk[E any](
	ctx context.Context, s *Service, l *log.Logger,
	cfg *chunkConfig[E], from, to time.Time,
) ([]E, error) {
	if s.conn != nil && cfg.dbLoad != nil {
		data, err := cfg.dbLoad(ctx, from, to)
		switch {
		case err != nil:
			l.Warn("durable store read failed, trying api", log.ErrorField(err))
		case len(data) > 0:
			return data, nil
		}
	}
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			s.sleep(ctx, cfg.retryDelay)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data, err := cfg.apiLoad(ctx, from, to)
		if err == nil {
			return data, nil
		}
		lastErr = err
		l.Warn("chunk fetch failed",
			log.Time("from", from), log.Int("attempt", attempt+1),
			log.ErrorField(err))
	}
	return nil, fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}
