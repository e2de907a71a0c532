package domain

import (
	"errors"
	"fmt"
)

// State represents the lifecycle phase of a countdown.
type State string

const (
	// StateRunning indicates there is time left on the clock.
	StateRunning State = "RUNNING"
	// StateExpired indicates the clock reached 00:00:00. It is terminal.
	StateExpired State = "EXPIRED"
)

var (
	// ErrInvalidDuration is returned when a duration has a negative field or
	// minutes/seconds outside [0,59].
	ErrInvalidDuration = errors.New("invalid duration")
)

// TimeRemaining represents a countdown's remaining duration.
type TimeRemaining struct {
	// Hours is unbounded above but never negative.
	Hours int `json:"hours"`
	// Minutes is always in [0,59].
	Minutes int `json:"minutes"`
	// Seconds is always in [0,59].
	Seconds int `json:"seconds"`
}

// NewTimeRemaining creates a TimeRemaining and validates it.
func NewTimeRemaining(hours, minutes, seconds int) (TimeRemaining, error) {
	t := TimeRemaining{Hours: hours, Minutes: minutes, Seconds: seconds}
	if err := t.Validate(); err != nil {
		return TimeRemaining{}, err
	}
	return t, nil
}

// Validate checks the field ranges.
func (t TimeRemaining) Validate() error {
	switch {
	case t.Hours < 0:
		return fmt.Errorf("%w: hours must not be negative, got %d", ErrInvalidDuration, t.Hours)
	case t.Minutes < 0 || t.Minutes > 59:
		return fmt.Errorf("%w: minutes must be in [0,59], got %d", ErrInvalidDuration, t.Minutes)
	case t.Seconds < 0 || t.Seconds > 59:
		return fmt.Errorf("%w: seconds must be in [0,59], got %d", ErrInvalidDuration, t.Seconds)
	}
	return nil
}

// Tick advances the clock by one second using the borrow cascade.
// The order of the checks matters: seconds, then minutes, then hours.
// A zero value is returned unchanged.
func Tick(t TimeRemaining) TimeRemaining {
	switch {
	case t.Seconds > 0:
		t.Seconds--
	case t.Minutes > 0:
		t.Minutes--
		t.Seconds = 59
	case t.Hours > 0:
		t.Hours--
		t.Minutes = 59
		t.Seconds = 59
	}
	return t
}

// TotalSeconds returns the remaining duration in seconds.
func (t TimeRemaining) TotalSeconds() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// IsExpired reports whether the terminal state has been reached.
func (t TimeRemaining) IsExpired() bool {
	return t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0
}

// State returns RUNNING while time is left and EXPIRED once it is not.
func (t TimeRemaining) State() State {
	if t.IsExpired() {
		return StateExpired
	}
	return StateRunning
}

// String renders the value as zero-padded HH:MM:SS.
func (t TimeRemaining) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}
