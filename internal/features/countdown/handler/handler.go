package handler

import (
	"net/http"

	"launch-countdown/internal/features/countdown/ports"

	"github.com/gofiber/fiber/v2"
)

// CountdownHandler handles HTTP requests for the launch countdown.
type CountdownHandler struct {
	reader ports.CountdownReader
}

// NewCountdownHandler creates a new CountdownHandler.
func NewCountdownHandler(reader ports.CountdownReader) *CountdownHandler {
	return &CountdownHandler{
		reader: reader,
	}
}

// GetCountdown handles GET /countdown.
// @Summary Get the launch countdown
// @Description Returns a snapshot of the time remaining on the launch offer.
// @Tags Countdown
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /countdown [get]
func (h *CountdownHandler) GetCountdown(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.reader.Snapshot())
}
