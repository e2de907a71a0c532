package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"launch-countdown/internal/core/clock"
	"launch-countdown/internal/core/logger"
	"launch-countdown/internal/features/countdown/ports"

	"go.uber.org/zap"
)

// Scheduler drives an Engine from a periodic ticker.
// The ticker is a scoped resource: acquired by Start, released when the
// Activation stops, its context ends, or the countdown expires.
type Scheduler struct {
	engine    *Engine
	clock     clock.Clock
	interval  time.Duration
	catchUp   bool
	publisher ports.SnapshotPublisher
	logger    *zap.Logger
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithCatchUp makes the scheduler apply one tick per whole interval of
// wall-clock time elapsed, instead of one tick per timer delivery.
func WithCatchUp(enabled bool) Option {
	return func(s *Scheduler) {
		s.catchUp = enabled
	}
}

// WithPublisher mirrors every post-tick snapshot to p.
func WithPublisher(p ports.SnapshotPublisher) Option {
	return func(s *Scheduler) {
		s.publisher = p
	}
}

// NewScheduler creates a scheduler for engine ticking every interval.
func NewScheduler(engine *Engine, clk clock.Clock, interval time.Duration, opts ...Option) (*Scheduler, error) {
	if engine == nil {
		return nil, errors.New("scheduler: engine required")
	}
	if interval <= 0 {
		return nil, errors.New("scheduler: interval must be > 0")
	}
	if clk == nil {
		clk = clock.SystemClock
	}

	s := &Scheduler{
		engine:   engine,
		clock:    clk,
		interval: interval,
		logger:   logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Activation is a running scheduler loop.
type Activation struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the loop and waits until the ticker has been released.
// It is safe to call more than once.
func (a *Activation) Stop() {
	a.once.Do(a.cancel)
	<-a.done
}

// Done is closed once the loop has exited.
func (a *Activation) Done() <-chan struct{} {
	return a.done
}

// Start acquires a ticker and begins ticking the engine on a new goroutine.
// The caller must Stop the returned Activation or cancel ctx.
func (s *Scheduler) Start(ctx context.Context) *Activation {
	ctx, cancel := context.WithCancel(ctx)
	a := &Activation{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	ticker := s.clock.NewTicker(s.interval)
	start := s.clock.Now()

	s.logger.Info("Countdown scheduler started",
		zap.Duration("interval", s.interval),
		zap.Bool("catch_up", s.catchUp),
		zap.String("remaining", s.engine.Current().String()),
	)

	go func() {
		defer close(a.done)
		defer cancel()
		defer ticker.Stop()
		s.run(ctx, ticker, start)
	}()

	return a
}

func (s *Scheduler) run(ctx context.Context, ticker clock.Ticker, start time.Time) {
	if s.engine.Expired() {
		s.logger.Info("Countdown already expired, releasing ticker")
		return
	}

	applied := 0
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Countdown scheduler stopped",
				zap.String("remaining", s.engine.Current().String()),
			)
			return
		case <-ticker.C():
			n := 1
			if s.catchUp {
				due := int(s.clock.Now().Sub(start) / s.interval)
				if due-applied > 1 {
					n = due - applied
					s.logger.Debug("Applying missed ticks", zap.Int("ticks", n))
				}
			}
			applied += n

			expired := false
			for i := 0; i < n && !expired; i++ {
				expired = s.engine.Tick()
			}

			s.publish(ctx)

			if expired {
				s.logger.Info("Countdown expired, releasing ticker")
				return
			}
		}
	}
}

func (s *Scheduler) publish(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, s.engine.Snapshot()); err != nil {
		s.logger.Warn("Failed to publish countdown snapshot", zap.Error(err))
	}
}
