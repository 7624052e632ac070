package attendance

import (
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
)

// BuildCalendar runs every day of the payload through the classifier and
// attaches the month layout a renderer needs.
func BuildCalendar(payload attendance.MonthlyPayload, cfg attendance.ClockWindowConfig, now time.Time) attendance.Calendar {
	first := time.Date(payload.Year, time.Month(payload.Month), 1, 0, 0, 0, 0, now.Location())

	cal := attendance.Calendar{
		Year:         payload.Year,
		Month:        payload.Month,
		Days:         payload.Days,
		FirstWeekday: int(first.Weekday()),
		IsWorkday:    payload.IsWorkday,
		Statistics:   payload.Statistics,
		Items:        make([]attendance.CalendarDay, 0, len(payload.Details)),
	}

	for i, rec := range payload.Details {
		date := rec.Date
		if date.IsZero() {
			date = first.AddDate(0, 0, i)
		}
		rec.Date = date

		item := attendance.CalendarDay{
			Day:    i + 1,
			Date:   date.Format("2006-01-02"),
			Status: Classify(rec, now),
		}
		markPending(&item, rec, cfg, now)
		cal.Items = append(cal.Items, item)
	}

	return cal
}

// markPending flags today's missing halves whose window has not closed yet.
func markPending(item *attendance.CalendarDay, rec attendance.DayRecord, cfg attendance.ClockWindowConfig, now time.Time) {
	if !sameDay(rec.Date, now) {
		return
	}
	if item.Status.Kind != attendance.DayMixedOrNormal && item.Status.Kind != attendance.DayBothMissing {
		return
	}

	halves := Normalize(rec)
	current := minutesOfDay(now)
	item.MorningPending = halves.Morning == attendance.HalfDayMissing && current < cfg.MorningEndMinutes
	item.AfternoonPending = halves.Afternoon == attendance.HalfDayMissing && current < cfg.AfternoonEndMinutes
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
