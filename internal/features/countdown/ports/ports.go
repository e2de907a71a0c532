package ports

import (
	"context"

	"launch-countdown/internal/features/countdown/domain"
)

// CountdownReader defines the primary port used by the presentation layer.
type CountdownReader interface {
	Current() domain.TimeRemaining
	Snapshot() domain.Snapshot
}

// SnapshotPublisher defines the secondary port that mirrors snapshots to other consumers.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
}
