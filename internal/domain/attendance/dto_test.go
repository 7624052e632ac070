package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCountdown(t *testing.T) {
	target := time.Date(2026, 4, 15, 17, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"hours minutes seconds", target.Add(-(2*time.Hour + 3*time.Minute + 4*time.Second)), "02:03:04"},
		{"sub-second remainder is floored", target.Add(-1500 * time.Millisecond), "00:00:01"},
		{"exactly at target", target, "00:00:00"},
		{"past target clamps to zero", target.Add(time.Hour), "00:00:00"},
		{"more than a day", target.Add(-25 * time.Hour), "25:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatCountdown(target, tc.now))
		})
	}
}

func TestRemainingDecreasesUntilZero(t *testing.T) {
	target := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)
	now := target.Add(-3 * time.Second)

	prev := Remaining(target, now)
	for i := 1; i <= 5; i++ {
		cur := Remaining(target, now.Add(time.Duration(i)*time.Second))
		if prev > 0 {
			assert.Less(t, cur, prev)
		} else {
			assert.Equal(t, time.Duration(0), cur)
		}
		assert.GreaterOrEqual(t, cur, time.Duration(0))
		prev = cur
	}
}

func TestCalendarRequestValidate(t *testing.T) {
	req := CalendarRequest{UserID: "u-1", Year: 2026, Month: 4}
	assert.NoError(t, req.Validate())

	bad := CalendarRequest{UserID: " ", Year: 1900, Month: 0}
	err := bad.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "user_id")
	assert.Contains(t, fields, "year")
	assert.Equal(t, ErrInvalidMonth.Error(), fields["month"])
}

func TestNextActionRequestValidate(t *testing.T) {
	assert.NoError(t, (&NextActionRequest{UserID: "u-1"}).Validate())
	assert.Error(t, (&NextActionRequest{}).Validate())
}

func TestNextActionResponseCountdownAt(t *testing.T) {
	target := time.Date(2026, 4, 15, 9, 0, 0, 0, time.UTC)
	resp := NextActionResponse{Kind: MorningClockIn, TargetTime: target}

	assert.Equal(t, "00:01:00", resp.CountdownAt(target.Add(-time.Minute)))
	assert.Equal(t, "00:00:00", resp.CountdownAt(target.Add(time.Minute)))
}
