package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/api"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/cache"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/repository"
)

var ErrRetriesExhausted = errors.New("retries exhausted")

// Service bundles the data acquisition pipelines. Lookup order for every
// entity type: durable store, cache, rate-limited live fetch with cache
// write-back. Each tier failure logs and falls through to the next;
// total failure of a non-chunked series yields an empty result so the
// consumer degrades instead of aborting.
type Service struct {
	conn   repository.Querier // optional; nil disables the durable tier
	cache  cache.Cache        // optional; nil disables the cache tier
	client *api.Client
	live   bool // live sessions skip cache write-back
	l      *log.Logger
	sleep  func(context.Context, time.Duration)
}

type Option func(*Service)

func WithQuerier(conn repository.Querier) Option {
	return func(s *Service) {
		s.conn = conn
	}
}

func WithCache(arg cache.Cache) Option {
	return func(s *Service) {
		s.cache = arg
	}
}

func WithClient(client *api.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

// WithLiveSession marks the session as in progress: cached entries would go
// stale while the session still produces data, so write-back is skipped.
func WithLiveSession(arg bool) Option {
	return func(s *Service) {
		s.live = arg
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		l:     log.Default().Named("fetch"),
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

type loaderFunc[E any] func(ctx context.Context) ([]E, error)

type tierConfig[E any] struct {
	name      string
	dbLoad    loaderFunc[E] // optional
	cacheKey  string
	ttl       time.Duration
	liveFetch loaderFunc[E]
}

// loadTiered walks the tiers for one series. Expected absence is a valid
// state and never an error for the caller.
func loadTiered[E any](ctx context.Context, s *Service, cfg *tierConfig[E]) []E {
	l := s.l.Named(cfg.name)
	if s.conn != nil && cfg.dbLoad != nil {
		data, err := cfg.dbLoad(ctx)
		switch {
		case err != nil:
			l.Warn("durable store read failed, trying cache",
				log.ErrorField(err))
		case len(data) > 0:
			return data
		}
	}
	if s.cache != nil {
		data, err := cache.GetTyped[[]E](ctx, s.cache, cfg.cacheKey)
		if err == nil {
			l.Debug("cache hit", log.String("key", cfg.cacheKey))
			return data
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.Warn("cache read failed, fetching live", log.ErrorField(err))
		}
	}
	data, err := cfg.liveFetch(ctx)
	if err != nil {
		l.Warn("live fetch failed, serving empty result", log.ErrorField(err))
		return []E{}
	}
	s.writeBack(ctx, l, cfg.cacheKey, data, cfg.ttl)
	return data
}

//nolint:whitespace // editor/linter
func (s *Service) writeBack(
	ctx context.Context, l *log.Logger, key string, data any, ttl time.Duration,
) {
	if s.cache == nil || s.live {
		return
	}
	if err := cache.SetTyped(ctx, s.cache, key, data, ttl); err != nil {
		l.Warn("cache write-back failed", log.String("key", key),
			log.ErrorField(err))
	}
}
