package service

import (
	"sync"
	"testing"

	"launch-countdown/internal/features/countdown/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		engine, err := NewEngine(domain.TimeRemaining{Hours: 2, Minutes: 45})
		require.NoError(t, err)
		assert.Equal(t, domain.TimeRemaining{Hours: 2, Minutes: 45}, engine.Current())
		assert.False(t, engine.Expired())
	})

	t.Run("NegativeHours", func(t *testing.T) {
		engine, err := NewEngine(domain.TimeRemaining{Hours: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
		assert.Nil(t, engine)
	})

	t.Run("MinutesOverflow", func(t *testing.T) {
		engine, err := NewEngine(domain.TimeRemaining{Minutes: 60})
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
		assert.Nil(t, engine)
	})

	t.Run("ZeroStartsExpired", func(t *testing.T) {
		engine, err := NewEngine(domain.TimeRemaining{})
		require.NoError(t, err)
		assert.True(t, engine.Expired())
		assert.NotNil(t, engine.Snapshot().ExpiredAt)
	})
}

func TestEngine_Tick(t *testing.T) {
	engine, err := NewEngine(domain.TimeRemaining{Minutes: 1, Seconds: 1})
	require.NoError(t, err)

	assert.False(t, engine.Tick())
	assert.Equal(t, domain.TimeRemaining{Minutes: 1}, engine.Current())

	assert.False(t, engine.Tick())
	assert.Equal(t, domain.TimeRemaining{Seconds: 59}, engine.Current())

	for i := 0; i < 58; i++ {
		require.False(t, engine.Tick())
	}
	assert.Equal(t, domain.TimeRemaining{Seconds: 1}, engine.Current())

	assert.True(t, engine.Tick(), "the tick reaching zero reports the transition")
	assert.True(t, engine.Expired())

	assert.False(t, engine.Tick(), "ticks after expiry are no-ops")
	assert.Equal(t, domain.TimeRemaining{}, engine.Current())
}

func TestEngine_Snapshot(t *testing.T) {
	engine, err := NewEngine(domain.TimeRemaining{Seconds: 1})
	require.NoError(t, err)

	before := engine.Snapshot()
	assert.Equal(t, domain.StateRunning, before.State)
	assert.Nil(t, before.ExpiredAt)

	engine.Tick()

	after := engine.Snapshot()
	assert.Equal(t, domain.StateExpired, after.State)
	assert.Equal(t, "00:00:00", after.Display)
	require.NotNil(t, after.ExpiredAt)

	assert.Equal(t, 1, before.Seconds, "earlier snapshots do not observe later ticks")

	engine.Tick()
	assert.Equal(t, *after.ExpiredAt, *engine.Snapshot().ExpiredAt, "expiry time is recorded once")
}

func TestEngine_ConcurrentReaders(t *testing.T) {
	engine, err := NewEngine(domain.TimeRemaining{Minutes: 5})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				cur := engine.Current()
				assert.True(t, cur.Seconds >= 0 && cur.Seconds <= 59)
				_ = engine.Snapshot()
			}
		}()
	}

	for i := 0; i < 300; i++ {
		engine.Tick()
	}
	wg.Wait()

	assert.Equal(t, domain.TimeRemaining{}, engine.Current())
}
