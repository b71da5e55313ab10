package secondary

import "time"

// Clock defines the secondary port for time. The validation sequencer paces
// its steps with tickers obtained here so tests can drive time by hand.
type Clock interface {
	Now() time.Time

	// NewTicker returns a ticker firing every d. Callers must Stop it.
	NewTicker(d time.Duration) Ticker
}

// Ticker is a stoppable periodic timer.
type Ticker interface {
	C() <-chan time.Time

	// Reset restarts the period; no tick from before the reset is delivered.
	Reset(d time.Duration)

	Stop()
}
