package fetch

import (
	"context"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	driverRepos "github.com/mpapenbr/f1telemetry-replay-go/pkg/repository/driver"
	sessionRepos "github.com/mpapenbr/f1telemetry-replay-go/pkg/repository/session"
)

// Sessions loads all sessions of a year, durable store first. The result
// is de-duplicated by session key and sorted newest first.
func (s *Service) Sessions(ctx context.Context, year int) []model.Session {
	l := s.l.Named("session")
	var ret []model.Session
	if s.conn != nil {
		data, err := sessionRepos.LoadByYear(ctx, s.conn, year)
		if err != nil {
			l.Warn("durable store read failed, trying api", log.ErrorField(err))
		}
		ret = data
	}
	if len(ret) == 0 {
		data, err := s.client.Sessions(ctx, year)
		if err != nil {
			l.Warn("live fetch failed, serving empty result", log.ErrorField(err))
			return []model.Session{}
		}
		ret = data
	}
	ret = lo.UniqBy(ret, func(item model.Session) int { return item.SessionKey })
	slices.SortFunc(ret, func(a, b model.Session) int {
		return b.DateStart.Compare(a.DateStart.Time)
	})
	return ret
}

// SessionByKey resolves a single session.
//
//nolint:whitespace // editor/linter
func (s *Service) SessionByKey(
	ctx context.Context, year, sessionKey int,
) (*model.Session, bool) {
	if s.conn != nil {
		if item, err := sessionRepos.LoadByKey(ctx, s.conn, sessionKey); err == nil {
			return item, true
		}
	}
	sessions := s.Sessions(ctx, year)
	item, found := lo.Find(sessions, func(item model.Session) bool {
		return item.SessionKey == sessionKey
	})
	if !found {
		return nil, false
	}
	return &item, true
}

// Drivers loads the driver lineup of a session. Drivers without a number
// or name are dropped.
func (s *Service) Drivers(ctx context.Context, sessionKey int) []model.Driver {
	l := s.l.Named("driver")
	if s.conn != nil {
		data, err := driverRepos.LoadBySession(ctx, s.conn, sessionKey)
		switch {
		case err != nil:
			l.Warn("durable store read failed, trying api", log.ErrorField(err))
		case len(data) > 0:
			return data
		}
	}
	data, err := s.client.Drivers(ctx, sessionKey)
	if err != nil {
		l.Warn("live fetch failed, serving empty result", log.ErrorField(err))
		return []model.Driver{}
	}
	return lo.Filter(data, func(item model.Driver, _ int) bool {
		return item.DriverNumber > 0 && item.FullName != ""
	})
}
