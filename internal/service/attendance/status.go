package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
)

// Normalize maps a day's raw punch fields to canonical half-day statuses.
// A non-positive clock count is always Missing, whatever the makeup flag says.
func Normalize(raw attendance.DayRecord) attendance.HalfDays {
	return attendance.HalfDays{
		Morning:   normalizeHalf(raw.MorningClockCount, raw.MorningIsMakeup),
		Afternoon: normalizeHalf(raw.AfternoonClockCount, raw.AfternoonIsMakeup),
	}
}

func normalizeHalf(clockCount int, isMakeup bool) attendance.HalfDayStatus {
	switch {
	case clockCount <= 0:
		return attendance.HalfDayMissing
	case isMakeup:
		return attendance.HalfDayMakeup
	default:
		return attendance.HalfDayNormal
	}
}

// Classify reduces a day to one DayStatus. First match wins:
// future, holiday, leave, both halves missing, mixed or normal.
func Classify(raw attendance.DayRecord, now time.Time) attendance.DayStatus {
	if isFuture(raw.Date, now) {
		return attendance.DayStatus{Kind: attendance.DayFuture}
	}

	// Holiday wins over leave when upstream sets both.
	if raw.IsHoliday {
		return attendance.DayStatus{
			Kind:        attendance.DayHoliday,
			HolidayName: holidayDisplayName(raw.HolidayName),
		}
	}

	if raw.IsLeave {
		return attendance.DayStatus{Kind: attendance.DayLeave}
	}

	halves := Normalize(raw)
	if halves.Morning == attendance.HalfDayMissing && halves.Afternoon == attendance.HalfDayMissing {
		return attendance.DayStatus{Kind: attendance.DayBothMissing}
	}

	return attendance.DayStatus{
		Kind:   attendance.DayMixedOrNormal,
		Halves: &halves,
	}
}

// isFuture reports whether the calendar date starts strictly after now.
func isFuture(date time.Time, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return dayStart.After(now)
}

// holidayDisplayName keeps the first two characters of long holiday names.
func holidayDisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return attendance.RestLabel
	}

	runes := []rune(name)
	if len(runes) > 2 {
		return string(runes[:2])
	}
	return name
}
