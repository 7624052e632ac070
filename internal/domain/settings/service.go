package settings

import (
	"context"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
)

// SettingsService exposes the clock window the attendance engine runs against
type SettingsService interface {
	// GetClockWindow returns the effective window, stored values over defaults
	GetClockWindow(ctx context.Context) (attendance.ClockWindowConfig, error)

	// GetClockWindowSettings returns the effective window in HH:MM form
	GetClockWindowSettings(ctx context.Context) (ClockWindowResponse, error)

	// UpdateClockWindow validates and persists a new window
	UpdateClockWindow(ctx context.Context, req UpdateClockWindowRequest) (ClockWindowResponse, error)
}
