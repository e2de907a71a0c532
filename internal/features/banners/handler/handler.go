package handler

import (
	"errors"
	"net/http"

	"launch-countdown/internal/core/logger"
	"launch-countdown/internal/features/banners/domain"
	"launch-countdown/internal/features/banners/ports"
	"launch-countdown/internal/features/banners/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BannerHandler handles HTTP requests for the sticky banner visibility.
type BannerHandler struct {
	service ports.VisibilityService
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(service ports.VisibilityService) *BannerHandler {
	return &BannerHandler{
		service: service,
	}
}

// ScrollSignalRequest represents a scroll reading.
type ScrollSignalRequest struct {
	// Position is the scroll offset from the top of the page, in pixels.
	Position *float64 `json:"position"`
}

// VisibilityResponse represents the computed banner visibility.
type VisibilityResponse struct {
	Visible   bool              `json:"visible"`
	State     domain.Visibility `json:"state"`
	Threshold float64           `json:"threshold,omitempty"`
}

// SubscriptionResponse represents a newly opened scroll subscription.
type SubscriptionResponse struct {
	ID string `json:"id"`
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	rayID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   rayID,
	})
}

func parseSignal(c *fiber.Ctx) (float64, error) {
	var req ScrollSignalRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, err
	}
	if req.Position == nil {
		return 0, errors.New("position is required")
	}
	return *req.Position, nil
}

// EvaluateVisibility handles POST /banner/visibility.
// @Summary Evaluate banner visibility
// @Description Computes whether the sticky banner is shown for a single scroll reading.
// @Tags Banner
// @Accept json
// @Produce json
// @Param signal body ScrollSignalRequest true "Scroll reading"
// @Success 200 {object} VisibilityResponse
// @Failure 400 {object} ErrorResponse
// @Router /banner/visibility [post]
func (h *BannerHandler) EvaluateVisibility(c *fiber.Ctx) error {
	position, err := parseSignal(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body: position is required")
	}

	visible := h.service.Evaluate(position)
	return c.Status(http.StatusOK).JSON(VisibilityResponse{
		Visible:   visible,
		State:     domain.VisibilityFor(visible),
		Threshold: h.service.Threshold(),
	})
}

// OpenSubscription handles POST /banner/subscriptions.
// @Summary Open a scroll subscription
// @Description Registers a scroll source whose latest reading drives the banner visibility.
// @Tags Banner
// @Produce json
// @Success 201 {object} SubscriptionResponse
// @Failure 503 {object} ErrorResponse
// @Router /banner/subscriptions [post]
func (h *BannerHandler) OpenSubscription(c *fiber.Ctx) error {
	id, err := h.service.Subscribe()
	if err != nil {
		if errors.Is(err, service.ErrServiceClosed) {
			return errorResponse(c, http.StatusServiceUnavailable, "Service is shutting down")
		}
		logger.Get().Error("Failed to open subscription", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.Status(http.StatusCreated).JSON(SubscriptionResponse{ID: id})
}

// SignalSubscription handles PUT /banner/subscriptions/:id.
// @Summary Send a scroll reading
// @Description Feeds a scroll reading to a subscription and returns the resulting visibility.
// @Tags Banner
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param signal body ScrollSignalRequest true "Scroll reading"
// @Success 200 {object} VisibilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /banner/subscriptions/{id} [put]
func (h *BannerHandler) SignalSubscription(c *fiber.Ctx) error {
	position, err := parseSignal(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body: position is required")
	}

	visible, err := h.service.Signal(c.Params("id"), position)
	if err != nil {
		return h.subscriptionError(c, err)
	}

	return c.Status(http.StatusOK).JSON(VisibilityResponse{
		Visible: visible,
		State:   domain.VisibilityFor(visible),
	})
}

// GetSubscription handles GET /banner/subscriptions/:id.
// @Summary Get subscription visibility
// @Description Returns the visibility computed from the subscription's latest reading.
// @Tags Banner
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} VisibilityResponse
// @Failure 404 {object} ErrorResponse
// @Router /banner/subscriptions/{id} [get]
func (h *BannerHandler) GetSubscription(c *fiber.Ctx) error {
	visible, err := h.service.Visible(c.Params("id"))
	if err != nil {
		return h.subscriptionError(c, err)
	}

	return c.Status(http.StatusOK).JSON(VisibilityResponse{
		Visible: visible,
		State:   domain.VisibilityFor(visible),
	})
}

// CloseSubscription handles DELETE /banner/subscriptions/:id.
// @Summary Close a scroll subscription
// @Description Releases the subscription. Further readings for its id are rejected.
// @Tags Banner
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /banner/subscriptions/{id} [delete]
func (h *BannerHandler) CloseSubscription(c *fiber.Ctx) error {
	if err := h.service.Unsubscribe(c.Params("id")); err != nil {
		return h.subscriptionError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Subscription closed",
	})
}

func (h *BannerHandler) subscriptionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSubscriptionNotFound) || errors.Is(err, service.ErrSubscriptionClosed) {
		return errorResponse(c, http.StatusNotFound, "Subscription not found")
	}
	logger.Get().Error("Subscription request failed", zap.Error(err))
	return errorResponse(c, http.StatusInternalServerError, "Internal server error")
}
