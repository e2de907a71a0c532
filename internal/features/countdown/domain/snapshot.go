package domain

import "time"

// Snapshot is the read-only view of a countdown handed to consumers.
// It is a value; holding one never observes later ticks.
type Snapshot struct {
	TimeRemaining
	// State is RUNNING or EXPIRED.
	State State `json:"state"`
	// TotalSeconds is the remaining duration in seconds.
	TotalSeconds int `json:"total_seconds"`
	// Display is the zero-padded HH:MM:SS rendering.
	Display string `json:"display"`
	// ExpiredAt is set once the countdown reaches zero.
	ExpiredAt *time.Time `json:"expired_at,omitempty"`
}

// NewSnapshot builds a Snapshot from the current value.
func NewSnapshot(t TimeRemaining, expiredAt *time.Time) Snapshot {
	s := Snapshot{
		TimeRemaining: t,
		State:         t.State(),
		TotalSeconds:  t.TotalSeconds(),
		Display:       t.String(),
	}
	if expiredAt != nil {
		at := *expiredAt
		s.ExpiredAt = &at
	}
	return s
}
