package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrMalformedPayload):
		BadGateway(w, "Failed to load attendance data")
	case errors.Is(err, attendance.ErrUpstreamUnavailable):
		BadGateway(w, "Attendance backend unavailable")
	case errors.Is(err, attendance.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrInvalidClockWindow):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
