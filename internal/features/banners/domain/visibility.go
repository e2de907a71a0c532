package domain

import (
	"errors"
	"math"
)

// DefaultThreshold is the scroll offset, in pixels, past which the sticky banner shows.
const DefaultThreshold = 100.0

// Visibility represents whether the sticky call-to-action banner is prominent.
type Visibility string

const (
	// VisibilityHidden means the page is near the top and the banner is not shown.
	VisibilityHidden Visibility = "NOT_PROMINENT"
	// VisibilityProminent means the page has scrolled past the threshold.
	VisibilityProminent Visibility = "PROMINENT"
)

var (
	ErrInvalidThreshold = errors.New("invalid scroll threshold")
)

// VisibilityFor maps a visibility flag to its state name.
func VisibilityFor(visible bool) Visibility {
	if visible {
		return VisibilityProminent
	}
	return VisibilityHidden
}

// Controller derives banner visibility from a scroll offset.
// It keeps no state besides the threshold.
type Controller struct {
	threshold float64
}

// NewController creates a Controller and validates the threshold.
func NewController(threshold float64) (*Controller, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return nil, ErrInvalidThreshold
	}

	return &Controller{
		threshold: threshold,
	}, nil
}

// Threshold returns the configured pixel threshold.
func (c *Controller) Threshold() float64 {
	return c.threshold
}

// OnScrollSignal reports whether the banner should be shown for position.
// The comparison is strict: a position equal to the threshold is not prominent.
func (c *Controller) OnScrollSignal(position float64) bool {
	return SanitizePosition(position) > c.threshold
}

// SanitizePosition clamps raw scroll readings. Negative offsets (overscroll
// bounce) and NaN are read as the top of the page.
func SanitizePosition(position float64) float64 {
	if math.IsNaN(position) || position < 0 {
		return 0
	}
	return position
}
