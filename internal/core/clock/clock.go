package clock

import "time"

// Ticker delivers ticks on a channel until stopped.
// This interface allows for manual implementations in tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock provides time-related operations.
// This interface enables dependency injection for testing periodic behavior.
type Clock interface {
	NewTicker(d time.Duration) Ticker
	Now() time.Time
}

// SystemClock is the default Clock implementation using the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type systemTicker struct {
	t *time.Ticker
}

func (s *systemTicker) C() <-chan time.Time {
	return s.t.C
}

func (s *systemTicker) Stop() {
	s.t.Stop()
}
