package attendance

import (
	"context"
	"time"
)

// AttendanceService defines the attendance status operations exposed to the console
type AttendanceService interface {
	// GetCalendar fetches a user's month from upstream and classifies every day
	GetCalendar(ctx context.Context, req CalendarRequest) (Calendar, error)

	// ClassifyPayload classifies an already fetched monthly payload
	ClassifyPayload(ctx context.Context, raw []byte) (Calendar, error)

	// GetNextAction computes today's next pending punch and its countdown
	GetNextAction(ctx context.Context, req NextActionRequest) (*NextActionResponse, error)

	// GetTodaySnapshot fetches today's record, workday flag and clock window
	GetTodaySnapshot(ctx context.Context, req NextActionRequest) (TodaySnapshot, error)

	// NextActionAt derives the next action from a snapshot at the given instant
	NextActionAt(snapshot TodaySnapshot, now time.Time) *NextActionResponse

	// Now returns the service clock, in the configured timezone
	Now() time.Time
}
