package adapters

import (
	"context"
	"testing"
	"time"

	"launch-countdown/internal/core/cache"
	"launch-countdown/internal/features/countdown/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPublisher(t *testing.T) (*RedisSnapshotPublisher, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return NewRedisSnapshotPublisher(c, "launch", time.Second), mr
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "countdown:launch:snapshot", SnapshotKey("launch"))
}

func TestRedisSnapshotPublisher_PublishAndLatest(t *testing.T) {
	pub, mr := setupPublisher(t)
	ctx := context.Background()

	snapshot := domain.NewSnapshot(domain.TimeRemaining{Hours: 2, Minutes: 44, Seconds: 59}, nil)
	require.NoError(t, pub.Publish(ctx, snapshot))

	assert.Equal(t, 2*time.Second, mr.TTL("countdown:launch:snapshot"))

	raw, err := mr.Get("countdown:launch:snapshot")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hours":2,"minutes":44,"seconds":59,"state":"RUNNING","total_seconds":9899,"display":"02:44:59"}`, raw)

	got, err := pub.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snapshot, *got)
}

func TestRedisSnapshotPublisher_ExpiredIsKept(t *testing.T) {
	pub, mr := setupPublisher(t)
	ctx := context.Background()

	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Publish(ctx, domain.NewSnapshot(domain.TimeRemaining{}, &at)))

	assert.Equal(t, time.Duration(0), mr.TTL("countdown:launch:snapshot"))

	got, err := pub.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got.ExpiredAt)
	assert.True(t, at.Equal(*got.ExpiredAt))
}

func TestRedisSnapshotPublisher_StaleMirrorExpires(t *testing.T) {
	pub, mr := setupPublisher(t)
	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, domain.NewSnapshot(domain.TimeRemaining{Seconds: 30}, nil)))
	mr.FastForward(3 * time.Second)

	got, err := pub.Latest(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSnapshotPublisher_Clear(t *testing.T) {
	pub, _ := setupPublisher(t)
	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, domain.NewSnapshot(domain.TimeRemaining{Seconds: 30}, nil)))
	require.NoError(t, pub.Clear(ctx))

	got, err := pub.Latest(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSnapshotPublisher_CorruptPayload(t *testing.T) {
	pub, mr := setupPublisher(t)

	require.NoError(t, mr.Set("countdown:launch:snapshot", "not-json"))

	got, err := pub.Latest(context.Background())
	assert.Error(t, err)
	assert.Nil(t, got)
}
