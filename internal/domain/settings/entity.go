package settings

import (
	"fmt"
	"time"
)

// Keys of the clock window rows in system_settings.
const (
	KeyMorningStart   = "morning_start"
	KeyMorningEnd     = "morning_end"
	KeyAfternoonStart = "afternoon_start"
	KeyAfternoonEnd   = "afternoon_end"
)

// ClockWindowKeys lists the clock window setting keys in window order.
var ClockWindowKeys = []string{KeyMorningStart, KeyMorningEnd, KeyAfternoonStart, KeyAfternoonEnd}

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
