package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Tickers created by a Manual clock fire once per whole period crossed.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManual returns a Manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// NewTicker registers a ticker that fires as Advance crosses its period.
func (m *Manual) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTicker{
		ch:     make(chan time.Time, 1),
		period: d,
		next:   m.now.Add(d),
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Advance moves the clock forward and fires every live ticker whose deadline
// was crossed. Like time.Ticker, a ticker whose receiver is behind drops ticks
// instead of queueing them.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
	for _, t := range m.tickers {
		t.fire(m.now)
	}
}

// Set jumps the clock to an absolute instant without firing any ticker.
// It simulates a host that was busy and missed deliveries.
func (m *Manual) Set(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = at
}

// Fire delivers a single tick on every live ticker regardless of deadlines.
func (m *Manual) Fire() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tickers {
		t.mu.Lock()
		if !t.stopped {
			select {
			case t.ch <- m.now:
			default:
			}
		}
		t.mu.Unlock()
	}
}

// Live reports how many tickers have been created and not yet stopped.
func (m *Manual) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tickers {
		t.mu.Lock()
		if !t.stopped {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

type manualTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	period  time.Duration
	next    time.Time
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time {
	return t.ch
}

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) fire(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	for !t.next.After(now) {
		select {
		case t.ch <- t.next:
		default:
		}
		t.next = t.next.Add(t.period)
	}
}
