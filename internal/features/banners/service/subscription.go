package service

import (
	"errors"
	"sync"

	"launch-countdown/internal/features/banners/domain"
)

// ErrSubscriptionClosed is returned when signalling a released subscription.
var ErrSubscriptionClosed = errors.New("subscription closed")

// Subscription tracks the visibility derived from one scroll source.
// Visibility depends only on the latest signal, never on earlier ones.
type Subscription struct {
	id         string
	controller *domain.Controller
	release    func()

	mu      sync.Mutex
	visible bool
	closed  bool
}

// ID returns the subscription id.
func (s *Subscription) ID() string {
	return s.id
}

// Signal records a scroll reading and returns the resulting visibility.
func (s *Subscription) Signal(position float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSubscriptionClosed
	}
	s.visible = s.controller.OnScrollSignal(position)
	return s.visible, nil
}

// Visible returns the visibility from the latest reading. It is false before any signal.
func (s *Subscription) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Close releases the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.visible = false
	s.mu.Unlock()

	if s.release != nil {
		s.release()
	}
}
