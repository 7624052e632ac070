package attendance

import "errors"

// Attendance domain errors
var (
	// Payload errors
	ErrMalformedPayload    = errors.New("malformed attendance payload")
	ErrUpstreamUnavailable = errors.New("attendance backend unavailable")

	// Request errors
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)
