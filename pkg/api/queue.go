package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
)

const (
	DefaultMaxRequestsPerSecond = 3
	DefaultMinSpacing           = 400 * time.Millisecond
)

// Queue serializes outbound requests to the telemetry API.
// All fetchers must go through the queue, it is the only place where the
// rate limit is enforced. Requests are dispatched in FIFO order by a single
// drain loop: at most maxPerSecond requests within a rolling one second
// window and at least minSpacing between consecutive dispatches.
type Queue struct {
	mu         sync.Mutex
	pending    []*queuedRequest
	processing bool

	httpClient   *http.Client
	maxPerSecond int
	minSpacing   time.Duration

	windowStart       time.Time
	requestsInWindow  int
	lastDispatchTimes []time.Time // kept for tests/inspection

	now   func() time.Time
	sleep func(time.Duration)
	l     *log.Logger
}

type queuedRequest struct {
	url    string
	result chan queueResult
}

type queueResult struct {
	data []byte
	err  error
}

type QueueOption func(*Queue)

func WithHTTPClient(client *http.Client) QueueOption {
	return func(q *Queue) {
		q.httpClient = client
	}
}

func WithMaxRequestsPerSecond(arg int) QueueOption {
	return func(q *Queue) {
		q.maxPerSecond = arg
	}
}

func WithMinSpacing(arg time.Duration) QueueOption {
	return func(q *Queue) {
		q.minSpacing = arg
	}
}

func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		httpClient:   http.DefaultClient,
		maxPerSecond: DefaultMaxRequestsPerSecond,
		minSpacing:   DefaultMinSpacing,
		now:          time.Now,
		sleep:        time.Sleep,
		l:            log.Default().Named("api.queue"),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends the request and blocks until it was dispatched or the
// context is canceled. No duplicate suppression takes place: the same URL
// enqueued twice issues two requests.
func (q *Queue) Enqueue(ctx context.Context, url string) ([]byte, error) {
	req := &queuedRequest{
		url: url,
		// buffered so the drain loop never blocks on an abandoned request
		result: make(chan queueResult, 1),
	}
	q.mu.Lock()
	q.pending = append(q.pending, req)
	if !q.processing {
		q.processing = true
		go q.drain()
	}
	q.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-req.result:
		return res.data, res.err
	}
}

// drain is the single active processing loop. One request failure must not
// block the remaining queued items.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.processing = false
			q.mu.Unlock()
			return
		}
		req := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.throttle()
		data, err := q.dispatch(req.url)
		if err != nil {
			q.l.Warn("request failed", log.String("url", req.url), log.ErrorField(err))
		}
		req.result <- queueResult{data: data, err: err}
	}
}

// throttle suspends the drain loop until the next dispatch is allowed.
func (q *Queue) throttle() {
	now := q.now()
	if now.Sub(q.windowStart) < time.Second {
		if q.requestsInWindow >= q.maxPerSecond {
			q.sleep(time.Second - now.Sub(q.windowStart))
			q.windowStart = q.now()
			q.requestsInWindow = 0
		}
	} else {
		q.windowStart = now
		q.requestsInWindow = 0
	}
	q.requestsInWindow++
	// fixed spacing between consecutive dispatches to smooth bursts
	q.sleep(q.minSpacing)
}

func (q *Queue) dispatch(url string) ([]byte, error) {
	q.mu.Lock()
	q.lastDispatchTimes = append(q.lastDispatchTimes, q.now())
	q.mu.Unlock()

	resp, err := q.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// DispatchTimes returns the timestamps of all dispatched requests.
func (q *Queue) DispatchTimes() []time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	ret := make([]time.Time, len(q.lastDispatchTimes))
	copy(ret, q.lastDispatchTimes)
	return ret
}
