package ports

// VisibilityService defines the primary port for scroll-driven banner visibility.
type VisibilityService interface {
	// Evaluate computes visibility for a single reading without a subscription.
	Evaluate(position float64) bool
	// Threshold returns the configured pixel threshold.
	Threshold() float64
	// Subscribe registers a scroll subscription and returns its id.
	Subscribe() (string, error)
	// Signal feeds a scroll reading to a subscription and returns the new visibility.
	Signal(id string, position float64) (bool, error)
	// Visible returns the visibility computed from a subscription's latest reading.
	Visible(id string) (bool, error)
	// Unsubscribe releases a subscription.
	Unsubscribe(id string) error
}
