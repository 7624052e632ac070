package attendance

import (
	"time"
)

// HalfDayStatus is the canonical state of a morning or afternoon punch window.
type HalfDayStatus string

const (
	HalfDayMissing HalfDayStatus = "missing"
	HalfDayMakeup  HalfDayStatus = "makeup"
	HalfDayNormal  HalfDayStatus = "normal"
)

// DayKind is the closed set of day-level states produced by the classifier.
type DayKind string

const (
	DayFuture        DayKind = "future"
	DayHoliday       DayKind = "holiday"
	DayLeave         DayKind = "leave"
	DayBothMissing   DayKind = "both_missing"
	DayMixedOrNormal DayKind = "mixed_or_normal"
)

// RestLabel is used for holidays the upstream did not name.
const RestLabel = "Rest"

// DayRecord is the semantic view of one calendar day of upstream attendance data.
type DayRecord struct {
	MorningClockCount   int
	MorningIsMakeup     bool
	AfternoonClockCount int
	AfternoonIsMakeup   bool
	IsHoliday           bool
	HolidayName         string
	IsLeave             bool
	Date                time.Time
}

// HalfDays holds the normalized morning and afternoon statuses of a day.
type HalfDays struct {
	Morning   HalfDayStatus `json:"morning"`
	Afternoon HalfDayStatus `json:"afternoon"`
}

// DayStatus is the classifier output. HolidayName is set only for DayHoliday,
// Halves only for DayMixedOrNormal.
type DayStatus struct {
	Kind        DayKind   `json:"kind"`
	HolidayName string    `json:"holiday_name,omitempty"`
	Halves      *HalfDays `json:"halves,omitempty"`
}

// ClockWindowConfig holds the punch window boundaries in minutes since midnight.
// Ordering is expected but not enforced here.
type ClockWindowConfig struct {
	MorningStartMinutes   int
	MorningEndMinutes     int
	AfternoonStartMinutes int
	AfternoonEndMinutes   int
}

// NextActionKind names the punch the employee still owes today.
type NextActionKind string

const (
	MorningClockIn    NextActionKind = "morning_clock_in"
	AfternoonClockOut NextActionKind = "afternoon_clock_out"
)

// Label returns the short display label used in the countdown caption.
func (k NextActionKind) Label() string {
	switch k {
	case MorningClockIn:
		return "上班"
	case AfternoonClockOut:
		return "下班"
	default:
		return ""
	}
}

type NextAction struct {
	Kind       NextActionKind
	TargetTime time.Time
}

// Statistics is the monthly summary block of the upstream payload.
type Statistics struct {
	LeaveDays         int `json:"leave_days"`
	LateCount         int `json:"late_count"`
	EarlyLeaveCount   int `json:"early_leave_count"`
	MissingPunchCount int `json:"missing_punch_count"`
}

// MonthlyPayload is a decoded upstream month: Details[i] is day i+1.
type MonthlyPayload struct {
	Statistics Statistics
	Details    []DayRecord
	Year       int
	Month      int
	Days       int
	IsWorkday  bool
}

// Today returns the record for the given date if it belongs to this payload's month.
func (p MonthlyPayload) Today(now time.Time) *DayRecord {
	if now.Year() != p.Year || int(now.Month()) != p.Month {
		return nil
	}
	idx := now.Day() - 1
	if idx < 0 || idx >= len(p.Details) {
		return nil
	}
	rec := p.Details[idx]
	return &rec
}

// CalendarDay is one classified day handed to a renderer.
type CalendarDay struct {
	Day              int       `json:"day"`
	Date             string    `json:"date"`
	Status           DayStatus `json:"status"`
	MorningPending   bool      `json:"morning_pending,omitempty"`
	AfternoonPending bool      `json:"afternoon_pending,omitempty"`
}

// Calendar is the renderer input contract: classified days plus month layout.
type Calendar struct {
	Year         int           `json:"year"`
	Month        int           `json:"month"`
	Days         int           `json:"days"`
	FirstWeekday int           `json:"first_weekday"`
	IsWorkday    bool          `json:"is_workday"`
	Statistics   Statistics    `json:"statistics"`
	Items        []CalendarDay `json:"items"`
}
