package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"launch-countdown/internal/features/countdown/domain"
	"launch-countdown/internal/features/countdown/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCountdownReader is a mock implementation of ports.CountdownReader
type MockCountdownReader struct {
	mock.Mock
}

func (m *MockCountdownReader) Current() domain.TimeRemaining {
	args := m.Called()
	return args.Get(0).(domain.TimeRemaining)
}

func (m *MockCountdownReader) Snapshot() domain.Snapshot {
	args := m.Called()
	return args.Get(0).(domain.Snapshot)
}

func setupApp(reader *MockCountdownReader) *fiber.App {
	app := fiber.New()
	handler := NewCountdownHandler(reader)
	app.Get("/countdown", handler.GetCountdown)
	return app
}

func TestCountdownHandler_GetCountdown(t *testing.T) {
	t.Run("Running", func(t *testing.T) {
		reader := new(MockCountdownReader)
		app := setupApp(reader)

		reader.On("Snapshot").Return(domain.NewSnapshot(domain.TimeRemaining{Hours: 2, Minutes: 44, Seconds: 59}, nil)).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/countdown", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(2), body["hours"])
		assert.Equal(t, float64(44), body["minutes"])
		assert.Equal(t, float64(59), body["seconds"])
		assert.Equal(t, "RUNNING", body["state"])
		assert.Equal(t, "02:44:59", body["display"])
		assert.NotContains(t, body, "expired_at")
		reader.AssertExpectations(t)
	})

	t.Run("Expired", func(t *testing.T) {
		engine, err := service.NewEngine(domain.TimeRemaining{Seconds: 1})
		require.NoError(t, err)
		engine.Tick()

		app := fiber.New()
		app.Get("/countdown", NewCountdownHandler(engine).GetCountdown)

		resp, err := app.Test(httptest.NewRequest("GET", "/countdown", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var snapshot domain.Snapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
		assert.Equal(t, domain.StateExpired, snapshot.State)
		assert.Equal(t, 0, snapshot.TotalSeconds)
		assert.NotNil(t, snapshot.ExpiredAt)
	})
}
