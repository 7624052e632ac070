package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// wirePayload mirrors the upstream monthly attendance JSON.
type wirePayload struct {
	Statistics *wireStatistics `json:"statistics"`
	Details    json.RawMessage `json:"details"`
	Month      wireInt         `json:"month"`
	Year       wireInt         `json:"year"`
	Days       *wireInt        `json:"days"`
	IsWorkday  *wireFlag       `json:"is_workday"`
}

type wireStatistics struct {
	Qjts     wireInt `json:"qjts"`
	Cdts     wireInt `json:"cdts"`
	Ztts     wireInt `json:"ztts"`
	Qtjcnums wireInt `json:"qtjcnums"`
}

// wireDay carries the upstream HR system's field names for one day.
type wireDay struct {
	SWSBDKCS   wireInt    `json:"SWSBDKCS"`
	IsSwSbbuka wireFlag   `json:"IsSwSbbuka"`
	XWXBDKCS   wireInt    `json:"XWXBDKCS"`
	IsXwXbbuka wireFlag   `json:"IsXwXbbuka"`
	Isholiday  wireFlag   `json:"isholiday"`
	Jjr        wireString `json:"jjr"`
	IsQj       wireFlag   `json:"IsQj"`
}

// wireInt accepts JSON numbers, numeric strings and null.
type wireInt int

func (n *wireInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", string(b), err)
	}
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("integer %s out of range", string(b))
	}
	*n = wireInt(f)
	return nil
}

// wireFlag accepts 1/0, true/false, their string forms and null.
type wireFlag bool

func (f *wireFlag) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	switch strings.ToLower(s) {
	case "", "null", "0", "false":
		*f = false
	case "true":
		*f = true
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid flag %s", string(b))
		}
		*f = n != 0
	}
	return nil
}

// wireString tolerates non-string values by treating them as empty.
type wireString string

func (w *wireString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*w = ""
		return nil
	}
	*w = wireString(s)
	return nil
}

func (d wireDay) toRecord(date time.Time) DayRecord {
	return DayRecord{
		MorningClockCount:   int(d.SWSBDKCS),
		MorningIsMakeup:     bool(d.IsSwSbbuka),
		AfternoonClockCount: int(d.XWXBDKCS),
		AfternoonIsMakeup:   bool(d.IsXwXbbuka),
		IsHoliday:           bool(d.Isholiday),
		HolidayName:         string(d.Jjr),
		IsLeave:             bool(d.IsQj),
		Date:                date,
	}
}

// ParsePayload decodes an upstream monthly payload. Day dates are built in loc.
//
// Only a structurally invalid payload fails: non-object JSON, details that is
// not an array, absent days, or a year/month that cannot place the days on a
// calendar. Individual day records that fail to decode become empty records.
func ParsePayload(data []byte, loc *time.Location) (MonthlyPayload, error) {
	if loc == nil {
		loc = time.Local
	}

	var wire wirePayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return MonthlyPayload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	details := bytes.TrimSpace(wire.Details)
	if len(details) == 0 || details[0] != '[' {
		return MonthlyPayload{}, fmt.Errorf("%w: details is not an array", ErrMalformedPayload)
	}
	if wire.Days == nil {
		return MonthlyPayload{}, fmt.Errorf("%w: days is missing", ErrMalformedPayload)
	}

	year, month, days := int(wire.Year), int(wire.Month), int(*wire.Days)
	if month < 1 || month > 12 {
		return MonthlyPayload{}, fmt.Errorf("%w: month %d out of range", ErrMalformedPayload, month)
	}
	if year < 1 {
		return MonthlyPayload{}, fmt.Errorf("%w: year %d out of range", ErrMalformedPayload, year)
	}
	if last := daysIn(year, time.Month(month)); days < 0 || days > last {
		return MonthlyPayload{}, fmt.Errorf("%w: days %d out of range for %04d-%02d", ErrMalformedPayload, days, year, month)
	}

	var rawDays []json.RawMessage
	if err := json.Unmarshal(details, &rawDays); err != nil {
		return MonthlyPayload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	records := make([]DayRecord, days)
	for i := range records {
		date := time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, loc)
		if i >= len(rawDays) {
			records[i] = DayRecord{Date: date}
			continue
		}

		var d wireDay
		if err := json.Unmarshal(rawDays[i], &d); err != nil {
			slog.Debug("Skipping malformed day record", "day", i+1, "error", err)
			records[i] = DayRecord{Date: date}
			continue
		}
		records[i] = d.toRecord(date)
	}

	payload := MonthlyPayload{
		Details:   records,
		Year:      year,
		Month:     month,
		Days:      days,
		IsWorkday: true,
	}
	if wire.IsWorkday != nil {
		payload.IsWorkday = bool(*wire.IsWorkday)
	}
	if wire.Statistics != nil {
		payload.Statistics = Statistics{
			LeaveDays:         int(wire.Statistics.Qjts),
			LateCount:         int(wire.Statistics.Cdts),
			EarlyLeaveCount:   int(wire.Statistics.Ztts),
			MissingPunchCount: int(wire.Statistics.Qtjcnums),
		}
	}

	return payload, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
