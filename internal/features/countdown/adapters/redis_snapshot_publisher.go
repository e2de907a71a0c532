package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"launch-countdown/internal/core/cache"
	"launch-countdown/internal/features/countdown/domain"
)

// RedisSnapshotPublisher implements ports.SnapshotPublisher using the cache adaptation.
// The key expires after two tick intervals, so the mirror vanishes once ticks stop.
// An expired countdown is kept without expiration.
type RedisSnapshotPublisher struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
}

// NewRedisSnapshotPublisher creates a publisher writing under countdown:<name>:snapshot.
func NewRedisSnapshotPublisher(c cache.Cache, name string, tickInterval time.Duration) *RedisSnapshotPublisher {
	return &RedisSnapshotPublisher{
		cache: c,
		key:   SnapshotKey(name),
		ttl:   2 * tickInterval,
	}
}

// SnapshotKey returns the cache key used for a countdown name.
func SnapshotKey(name string) string {
	return fmt.Sprintf("countdown:%s:snapshot", name)
}

// Publish stores the snapshot in the cache.
func (p *RedisSnapshotPublisher) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ttl := p.ttl
	if snapshot.State == domain.StateExpired {
		ttl = 0
	}

	if err := p.cache.Set(ctx, p.key, data, ttl); err != nil {
		return fmt.Errorf("failed to save snapshot to cache: %w", err)
	}
	return nil
}

// Latest reads the mirrored snapshot back. It returns nil, nil when none is published.
func (p *RedisSnapshotPublisher) Latest(ctx context.Context) (*domain.Snapshot, error) {
	data, err := p.cache.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Clear removes the mirrored snapshot.
func (p *RedisSnapshotPublisher) Clear(ctx context.Context) error {
	if err := p.cache.Delete(ctx, p.key); err != nil {
		return fmt.Errorf("failed to delete snapshot from cache: %w", err)
	}
	return nil
}
