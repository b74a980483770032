package fetch

import (
	"context"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/cache"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	locationRepos "github.com/mpapenbr/f1telemetry-replay-go/pkg/repository/location"
)

const (
	CarRetryDelay      = 2 * time.Second
	LocationRetryDelay = time.Second
)

// CarData loads the car telemetry of one driver in 15 minute windows.
// The error is only set when a chunk exhausted its retries; callers treat
// that as "series empty for this tick".
//
//nolint:whitespace // editor/linter
func (s *Service) CarData(
	ctx context.Context, sessionKey, driverNumber int, sessionStart time.Time,
) ([]model.CarData, error) {
	return loadChunked(ctx, s, &chunkConfig[model.CarData]{
		name: "car",
		apiLoad: func(ctx context.Context, from, to time.Time) ([]model.CarData, error) {
			return s.client.CarData(ctx, sessionKey, driverNumber, from, to)
		},
		chunkKey: func(start time.Time) string {
			return cache.CarDataChunkKey(sessionKey, driverNumber, start)
		},
		fullKey:    cache.CarDataKey(sessionKey, driverNumber),
		ttl:        cache.DefaultTTL,
		retryDelay: CarRetryDelay,
	}, sessionStart)
}

//nolint:whitespace,lll // editor/linter
func (s *Service) Location(
	ctx context.Context, sessionKey, driverNumber int, sessionStart time.Time,
) ([]model.LocationData, error) {
	cfg := &chunkConfig[model.LocationData]{
		name: "location",
		apiLoad: func(ctx context.Context, from, to time.Time) ([]model.LocationData, error) {
			return s.client.Location(ctx, sessionKey, driverNumber, from, to)
		},
		chunkKey: func(start time.Time) string {
			return cache.LocationChunkKey(sessionKey, driverNumber, start)
		},
		fullKey:    cache.LocationKey(sessionKey, driverNumber),
		ttl:        cache.DefaultTTL,
		retryDelay: LocationRetryDelay,
	}
	if s.conn != nil {
		cfg.dbLoad = func(ctx context.Context, from, to time.Time) ([]model.LocationData, error) {
			return locationRepos.LoadRange(
				ctx, s.conn, sessionKey, driverNumber, from, to)
		}
	}
	return loadChunked(ctx, s, cfg, sessionStart)
}
