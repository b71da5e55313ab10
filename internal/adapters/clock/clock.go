// Package clock provides the wall-clock implementation of secondary.Clock.
package clock

import (
	"time"

	"github.com/example/aerobridge/internal/ports/secondary"
)

// SystemClock reads the wall clock and hands out time.Ticker-backed tickers.
type SystemClock struct{}

var _ secondary.Clock = SystemClock{}

// New returns a SystemClock.
func New() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) NewTicker(d time.Duration) secondary.Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time   { return s.t.C }
func (s *systemTicker) Reset(d time.Duration) { s.t.Reset(d) }
func (s *systemTicker) Stop()                 { s.t.Stop() }
