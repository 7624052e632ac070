package attendance

import (
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
)

// CalculateNextAction returns the punch still owed today and the deadline the
// countdown runs to, or nil when nothing is owed.
//
// The target is the window end, not its start. Once the afternoon window has
// closed without a punch the afternoon deadline is still returned, so callers
// show a zeroed countdown instead of hiding it.
func CalculateNextAction(cfg attendance.ClockWindowConfig, today *attendance.DayRecord, isWorkday bool, now time.Time) *attendance.NextAction {
	if !isWorkday {
		return nil
	}

	var hasMorningPunch, hasAfternoonPunch bool
	if today != nil {
		hasMorningPunch = today.MorningClockCount > 0
		hasAfternoonPunch = today.AfternoonClockCount > 0
	}

	morningEnd := atMinutes(now, cfg.MorningEndMinutes)
	afternoonEnd := atMinutes(now, cfg.AfternoonEndMinutes)

	switch {
	case !hasMorningPunch && now.Before(morningEnd):
		return &attendance.NextAction{Kind: attendance.MorningClockIn, TargetTime: morningEnd}
	case !hasAfternoonPunch:
		return &attendance.NextAction{Kind: attendance.AfternoonClockOut, TargetTime: afternoonEnd}
	default:
		return nil
	}
}

// atMinutes returns now's calendar day at the given minutes since midnight.
func atMinutes(now time.Time, minutes int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.Add(time.Duration(minutes) * time.Minute)
}

// minutesOfDay returns the wall-clock minutes elapsed since now's midnight.
func minutesOfDay(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}
