package service

import (
	"fmt"
	"sync"
	"time"

	"launch-countdown/internal/features/countdown/domain"
)

// Engine owns a countdown value and advances it one second per Tick.
// It holds no scheduling logic; see Scheduler.
type Engine struct {
	mu        sync.RWMutex
	remaining domain.TimeRemaining
	expiredAt *time.Time
	now       func() time.Time
}

// NewEngine creates an Engine starting at initial.
// It returns domain.ErrInvalidDuration and no engine if initial is out of range.
func NewEngine(initial domain.TimeRemaining) (*Engine, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("service: cannot create countdown engine: %w", err)
	}

	e := &Engine{
		remaining: initial,
		now:       time.Now,
	}
	if initial.IsExpired() {
		at := e.now()
		e.expiredAt = &at
	}
	return e, nil
}

// Tick advances the countdown by one second.
// It reports true only on the tick that reaches zero; once expired it is a no-op.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.remaining.IsExpired() {
		return false
	}

	e.remaining = domain.Tick(e.remaining)
	if e.remaining.IsExpired() {
		at := e.now()
		e.expiredAt = &at
		return true
	}
	return false
}

// Current returns the remaining duration.
func (e *Engine) Current() domain.TimeRemaining {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.remaining
}

// Snapshot returns the read model for the current value.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.NewSnapshot(e.remaining, e.expiredAt)
}

// Expired reports whether the countdown is in its terminal state.
func (e *Engine) Expired() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.remaining.IsExpired()
}
