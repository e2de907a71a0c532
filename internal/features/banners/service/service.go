package service

import (
	"errors"
	"sync"

	"launch-countdown/internal/core/logger"
	"launch-countdown/internal/features/banners/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSubscriptionNotFound is returned for unknown or released subscription ids.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrServiceClosed is returned when subscribing after Close.
	ErrServiceClosed = errors.New("visibility service closed")
)

// VisibilityService implements ports.VisibilityService.
// It owns every live Subscription; none outlives Close.
type VisibilityService struct {
	controller *domain.Controller
	logger     *zap.Logger

	mu     sync.Mutex
	subs   map[string]*Subscription
	closed bool
}

// NewVisibilityService creates a new VisibilityService.
func NewVisibilityService(controller *domain.Controller) *VisibilityService {
	return &VisibilityService{
		controller: controller,
		logger:     logger.Get(),
		subs:       make(map[string]*Subscription),
	}
}

// Evaluate computes visibility for a single reading.
func (s *VisibilityService) Evaluate(position float64) bool {
	return s.controller.OnScrollSignal(position)
}

// Threshold returns the controller threshold.
func (s *VisibilityService) Threshold() float64 {
	return s.controller.Threshold()
}

// Open registers a new Subscription. The caller owns it and must Close it.
func (s *VisibilityService) Open() (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrServiceClosed
	}

	sub := &Subscription{
		id:         uuid.NewString(),
		controller: s.controller,
	}
	sub.release = func() { s.remove(sub.id) }
	s.subs[sub.id] = sub

	s.logger.Debug("Scroll subscription opened", zap.String("subscription_id", sub.id))
	return sub, nil
}

// Subscribe registers a new Subscription and returns its id.
func (s *VisibilityService) Subscribe() (string, error) {
	sub, err := s.Open()
	if err != nil {
		return "", err
	}
	return sub.ID(), nil
}

// Lookup returns the live Subscription with the given id.
func (s *VisibilityService) Lookup(id string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

// Signal feeds position to the subscription with the given id.
func (s *VisibilityService) Signal(id string, position float64) (bool, error) {
	sub, err := s.Lookup(id)
	if err != nil {
		return false, err
	}
	return sub.Signal(position)
}

// Visible returns the current visibility of the subscription with the given id.
func (s *VisibilityService) Visible(id string) (bool, error) {
	sub, err := s.Lookup(id)
	if err != nil {
		return false, err
	}
	return sub.Visible(), nil
}

// Unsubscribe releases the subscription with the given id.
func (s *VisibilityService) Unsubscribe(id string) error {
	sub, err := s.Lookup(id)
	if err != nil {
		return err
	}
	sub.Close()
	return nil
}

// Active returns the number of live subscriptions.
func (s *VisibilityService) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close releases every live subscription and rejects new ones.
func (s *VisibilityService) Close() {
	s.mu.Lock()
	s.closed = true
	subs := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}

	s.logger.Info("Visibility service closed", zap.Int("released", len(subs)))
}

func (s *VisibilityService) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
