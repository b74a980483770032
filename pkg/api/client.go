package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
)

// Client reads the public telemetry API. Every request goes through the
// rate-limited queue.
type Client struct {
	baseURL string
	queue   *Queue
	l       *log.Logger
}

type ClientOption func(*Client)

func WithQueue(queue *Queue) ClientOption {
	return func(c *Client) {
		c.queue = queue
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		queue:   NewQueue(),
		l:       log.Default().Named("api.client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func fetch[E any](ctx context.Context, c *Client, query string) ([]E, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, query)
	data, err := c.queue.Enqueue(ctx, url)
	if err != nil {
		return nil, err
	}
	var ret []E
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return ret, nil
}

// dateRange builds the API filter params for a time window.
// The API expects the literal param names "date>" and "date<".
func dateRange(from, to time.Time) string {
	return fmt.Sprintf("&date>%s&date<%s",
		from.UTC().Format(time.RFC3339),
		to.UTC().Format(time.RFC3339))
}

func (c *Client) Sessions(ctx context.Context, year int) ([]model.Session, error) {
	return fetch[model.Session](ctx, c, fmt.Sprintf("sessions?year=%d", year))
}

func (c *Client) Drivers(ctx context.Context, sessionKey int) ([]model.Driver, error) {
	return fetch[model.Driver](ctx, c,
		fmt.Sprintf("drivers?session_key=%d", sessionKey))
}

//nolint:whitespace // editor/linter
func (c *Client) Laps(ctx context.Context, sessionKey, driverNumber int) (
	[]model.Lap, error,
) {
	return fetch[model.Lap](ctx, c,
		fmt.Sprintf("laps?session_key=%d&driver_number=%d", sessionKey, driverNumber))
}

//nolint:whitespace // editor/linter
func (c *Client) Intervals(ctx context.Context, sessionKey, driverNumber int) (
	[]model.IntervalData, error,
) {
	return fetch[model.IntervalData](ctx, c,
		fmt.Sprintf("intervals?session_key=%d&driver_number=%d",
			sessionKey, driverNumber))
}

//nolint:whitespace // editor/linter
func (c *Client) Positions(ctx context.Context, sessionKey, driverNumber int) (
	[]model.PositionData, error,
) {
	return fetch[model.PositionData](ctx, c,
		fmt.Sprintf("position?session_key=%d&driver_number=%d",
			sessionKey, driverNumber))
}

//nolint:whitespace // editor/linter
func (c *Client) CarData(
	ctx context.Context, sessionKey, driverNumber int, from, to time.Time,
) ([]model.CarData, error) {
	return fetch[model.CarData](ctx, c,
		fmt.Sprintf("car_data?session_key=%d&driver_number=%d%s",
			sessionKey, driverNumber, dateRange(from, to)))
}

//nolint:whitespace // editor/linter
func (c *Client) Location(
	ctx context.Context, sessionKey, driverNumber int, from, to time.Time,
) ([]model.LocationData, error) {
	return fetch[model.LocationData](ctx, c,
		fmt.Sprintf("location?session_key=%d&driver_number=%d%s",
			sessionKey, driverNumber, dateRange(from, to)))
}

//nolint:whitespace // editor/linter
func (c *Client) TeamRadio(ctx context.Context, sessionKey, driverNumber int) (
	[]model.TeamRadio, error,
) {
	return fetch[model.TeamRadio](ctx, c,
		fmt.Sprintf("team_radio?session_key=%d&driver_number=%d",
			sessionKey, driverNumber))
}
