package app

import (
	"sync"
	"time"

	"github.com/example/aerobridge/internal/ports/secondary"
)

// fakeClock implements secondary.Clock with hand-driven tickers and counts
// how many tickers were created and released.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

var _ secondary.Clock = (*fakeClock)(nil)

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(d time.Duration) secondary.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time, 1), period: d}
	c.tickers = append(c.tickers, t)
	return t
}

// Tick advances time by one period of the newest ticker and fires it.
// Stopped tickers never fire.
func (c *fakeClock) Tick() {
	c.mu.Lock()
	if len(c.tickers) == 0 {
		c.mu.Unlock()
		return
	}
	t := c.tickers[len(c.tickers)-1]
	c.now = c.now.Add(t.period)
	now := c.now
	c.mu.Unlock()
	t.fire(now)
}

func (c *fakeClock) created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *fakeClock) stopped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if t.isStopped() {
			n++
		}
	}
	return n
}

func (c *fakeClock) resets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		t.mu.Lock()
		n += t.resets
		t.mu.Unlock()
	}
	return n
}

type fakeTicker struct {
	c      chan time.Time
	period time.Duration

	mu      sync.Mutex
	stopped bool
	resets  int
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Reset(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resets++
}

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *fakeTicker) fire(now time.Time) {
	if t.isStopped() {
		return
	}
	select {
	case t.c <- now:
	case <-time.After(time.Second):
	}
}
