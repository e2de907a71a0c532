package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSystemClock_Ticker verifies the system ticker fires and stops.
func TestSystemClock_Ticker(t *testing.T) {
	ticker := SystemClock.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Fatal("system ticker did not fire")
	}

	assert.False(t, SystemClock.Now().IsZero())
}

// TestManual_Advance verifies tickers fire only when a period is crossed.
func TestManual_Advance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	ticker := m.NewTicker(time.Second)

	m.Advance(500 * time.Millisecond)
	select {
	case <-ticker.C():
		t.Fatal("ticker fired before its period elapsed")
	default:
	}

	m.Advance(500 * time.Millisecond)
	select {
	case at := <-ticker.C():
		assert.Equal(t, start.Add(time.Second), at)
	default:
		t.Fatal("ticker did not fire after its period elapsed")
	}

	assert.Equal(t, start.Add(time.Second), m.Now())
}

// TestManual_DropsTicksForSlowReceiver verifies the channel never queues more than one tick.
func TestManual_DropsTicksForSlowReceiver(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ticker := m.NewTicker(time.Second)

	m.Advance(5 * time.Second)

	<-ticker.C()
	select {
	case <-ticker.C():
		t.Fatal("expected dropped ticks, got a second queued tick")
	default:
	}
}

// TestManual_Stop verifies stopped tickers are not live and no longer fire.
func TestManual_Stop(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ticker := m.NewTicker(time.Second)
	require.Equal(t, 1, m.Live())

	ticker.Stop()
	assert.Equal(t, 0, m.Live())

	m.Advance(2 * time.Second)
	m.Fire()
	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}

// TestManual_Set verifies Set moves time without firing.
func TestManual_Set(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ticker := m.NewTicker(time.Second)

	m.Set(time.Unix(10, 0))
	assert.Equal(t, time.Unix(10, 0), m.Now())

	select {
	case <-ticker.C():
		t.Fatal("Set must not fire tickers")
	default:
	}
}
