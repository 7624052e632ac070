package ticker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ticker is a single shared clock that fans ticks out to subscribers.
// Subscribers that fall behind miss ticks rather than block the loop.
type Ticker struct {
	interval    time.Duration
	now         func() time.Time
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.RWMutex
	subscribers map[string]chan time.Time
	started     bool
	stopped     bool
}

// New creates a ticker firing every interval
func New(interval time.Duration) *Ticker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Ticker{
		interval:    interval,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
		subscribers: make(map[string]chan time.Time),
	}
}

// Start begins the tick loop. Calling it twice has no effect.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started || t.stopped {
		return
	}
	t.started = true

	t.wg.Add(1)
	go t.run()

	slog.Info("Ticker started", "interval", t.interval)
}

// Stop ends the loop and closes every subscriber channel
func (t *Ticker) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()

	t.mu.Lock()
	for id, ch := range t.subscribers {
		close(ch)
		delete(t.subscribers, id)
	}
	t.mu.Unlock()

	slog.Info("Ticker stopped")
}

// Subscribe registers a listener and returns its id, tick channel and
// teardown func. The channel is closed by teardown or by Stop.
func (t *Ticker) Subscribe() (string, <-chan time.Time, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan time.Time, 1)

	if t.stopped {
		close(ch)
		return id, ch, func() {}
	}
	t.subscribers[id] = ch

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if sub, ok := t.subscribers[id]; ok {
				delete(t.subscribers, id)
				close(sub)
			}
		})
	}

	return id, ch, cleanup
}

// SubscriberCount returns the number of active subscriptions
func (t *Ticker) SubscriberCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subscribers)
}

func (t *Ticker) run() {
	defer t.wg.Done()

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-tk.C:
			t.publish(t.now())
		}
	}
}

func (t *Ticker) publish(at time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, ch := range t.subscribers {
		select {
		case ch <- at:
		default:
		}
	}
}
