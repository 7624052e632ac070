package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
)

// ========================================
// CALENDAR DTOs
// ========================================

type CalendarRequest struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: ErrInvalidMonth.Error(),
		})
	}

	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// NEXT ACTION DTOs
// ========================================

type NextActionRequest struct {
	UserID string `json:"user_id"`
}

func (r *NextActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type NextActionResponse struct {
	Kind       NextActionKind `json:"kind"`
	Label      string         `json:"label"`
	TargetTime time.Time      `json:"target_time"`
	Countdown  string         `json:"countdown"`
}

// TodaySnapshot is the fetched state the next action depends on. The action
// itself is re-derived from it for any later instant without calling upstream.
type TodaySnapshot struct {
	Today     *DayRecord        `json:"today,omitempty"`
	IsWorkday bool              `json:"is_workday"`
	Window    ClockWindowConfig `json:"window"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// CountdownAt re-derives the countdown for a later tick.
func (r NextActionResponse) CountdownAt(now time.Time) string {
	return FormatCountdown(r.TargetTime, now)
}

// CountdownEvent is pushed to stream subscribers on every tick.
type CountdownEvent struct {
	Kind       NextActionKind `json:"kind"`
	Label      string         `json:"label"`
	TargetTime time.Time      `json:"target_time"`
	Countdown  string         `json:"countdown"`
	Now        string         `json:"now"`
}

// Remaining returns max(0, target-now).
func Remaining(target, now time.Time) time.Duration {
	d := target.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatCountdown renders max(0, target-now) as zero-padded HH:MM:SS.
func FormatCountdown(target, now time.Time) string {
	total := int64(Remaining(target, now) / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
