package fetch

import (
	"context"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/cache"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	lapRepos "github.com/mpapenbr/f1telemetry-replay-go/pkg/repository/lap"
	positionRepos "github.com/mpapenbr/f1telemetry-replay-go/pkg/repository/position"
	radioRepos "github.com/mpapenbr/f1telemetry-replay-go/pkg/repository/radio"
)

//nolint:whitespace // editor/linter
func (s *Service) Positions(
	ctx context.Context, sessionKey, driverNumber int,
) []model.PositionData {
	return loadTiered(ctx, s, &tierConfig[model.PositionData]{
		name: "position",
		dbLoad: func(ctx context.Context) ([]model.PositionData, error) {
			return positionRepos.LoadBySessionAndDriver(
				ctx, s.conn, sessionKey, driverNumber)
		},
		cacheKey: cache.PositionKey(sessionKey, driverNumber),
		ttl:      cache.DefaultTTL,
		liveFetch: func(ctx context.Context) ([]model.PositionData, error) {
			return s.client.Positions(ctx, sessionKey, driverNumber)
		},
	})
}

//nolint:whitespace // editor/linter
func (s *Service) Intervals(
	ctx context.Context, sessionKey, driverNumber int,
) []model.IntervalData {
	return loadTiered(ctx, s, &tierConfig[model.IntervalData]{
		name:     "interval",
		cacheKey: cache.IntervalKey(sessionKey, driverNumber),
		ttl:      cache.DefaultTTL,
		liveFetch: func(ctx context.Context) ([]model.IntervalData, error) {
			return s.client.Intervals(ctx, sessionKey, driverNumber)
		},
	})
}

//nolint:whitespace // editor/linter
func (s *Service) Laps(
	ctx context.Context, sessionKey, driverNumber int,
) []model.Lap {
	return loadTiered(ctx, s, &tierConfig[model.Lap]{
		name: "lap",
		dbLoad: func(ctx context.Context) ([]model.Lap, error) {
			return lapRepos.LoadBySessionAndDriver(
				ctx, s.conn, sessionKey, driverNumber)
		},
		cacheKey: cache.LapKey(sessionKey, driverNumber),
		ttl:      cache.DefaultTTL,
		liveFetch: func(ctx context.Context) ([]model.Lap, error) {
			return s.client.Laps(ctx, sessionKey, driverNumber)
		},
	})
}

//nolint:whitespace // editor/linter
func (s *Service) Radio(
	ctx context.Context, sessionKey, driverNumber int,
) []model.TeamRadio {
	return loadTiered(ctx, s, &tierConfig[model.TeamRadio]{
		name: "radio",
		dbLoad: func(ctx context.Context) ([]model.TeamRadio, error) {
			return radioRepos.LoadBySessionAndDriver(
				ctx, s.conn, sessionKey, driverNumber)
		},
		cacheKey: cache.RadioKey(sessionKey, driverNumber),
		ttl:      cache.DefaultTTL,
		liveFetch: func(ctx context.Context) ([]model.TeamRadio, error) {
			return s.client.TeamRadio(ctx, sessionKey, driverNumber)
		},
	})
}
