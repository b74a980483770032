package timeline

import (
	"context"
	"sync"
	"time"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
)

// Poller re-fetches one series on a fixed interval while a session is
// live. All polling goes through these explicit subscriptions instead of
// per-consumer timers, so a series is never polled twice concurrently.
type Poller struct {
	mutex    sync.Mutex
	name     string
	interval time.Duration
	fn       func(context.Context)
	cancel   context.CancelFunc
	done     chan struct{}
	l        *log.Logger
}

func NewPoller(name string, interval time.Duration, fn func(context.Context)) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		l:        log.Default().Named("poller").Named(name),
	}
}

// Start launches the poll loop. The function is invoked once immediately.
func (p *Poller) Start(ctx context.Context) {
	pollCtx, cancel := context.WithCancel(ctx)
	p.mutex.Lock()
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mutex.Unlock()
	go func() {
		defer close(p.done)
		p.fn(pollCtx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				p.l.Debug("poller terminated")
				return
			case <-ticker.C:
				p.fn(pollCtx)
			}
		}
	}()
}

// Stop is safe to call from multiple goroutines and from within the
// poll function itself (in that case the wait happens asynchronously).
func (p *Poller) Stop() {
	p.mutex.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.mutex.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}
