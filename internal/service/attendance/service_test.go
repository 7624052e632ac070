package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	body  []byte
	err   error
	calls []string
}

func (f *fakeSource) FetchMonthly(ctx context.Context, userID string, year int, month int) ([]byte, error) {
	f.calls = append(f.calls, userID)
	return f.body, f.err
}

type fakeSettings struct {
	cfg attendance.ClockWindowConfig
	err error
}

func (f *fakeSettings) GetClockWindow(ctx context.Context) (attendance.ClockWindowConfig, error) {
	return f.cfg, f.err
}

func (f *fakeSettings) GetClockWindowSettings(ctx context.Context) (settings.ClockWindowResponse, error) {
	return settings.NewClockWindowResponse(f.cfg), f.err
}

func (f *fakeSettings) UpdateClockWindow(ctx context.Context, req settings.UpdateClockWindowRequest) (settings.ClockWindowResponse, error) {
	return settings.ClockWindowResponse{}, errors.New("not supported")
}

const aprilJSON = `{
	"statistics": {"qjts": 0, "cdts": 1, "ztts": 0, "qtjcnums": 1},
	"details": [
		{"SWSBDKCS": 1, "IsSwSbbuka": 0, "XWXBDKCS": 1, "IsXwXbbuka": 0, "isholiday": 0, "jjr": "", "IsQj": 0},
		{"SWSBDKCS": 1, "IsSwSbbuka": 1, "XWXBDKCS": 0, "IsXwXbbuka": 0, "isholiday": 0, "jjr": "", "IsQj": 0},
		{"SWSBDKCS": 0, "IsSwSbbuka": 0, "XWXBDKCS": 0, "IsXwXbbuka": 0, "isholiday": 1, "jjr": "清明节", "IsQj": 0}
	],
	"month": 4, "year": 2026, "days": 30,
	"is_workday": true
}`

func newTestService(source *fakeSource, now time.Time) attendance.AttendanceService {
	return NewAttendanceService(source, &fakeSettings{cfg: testWindow}, testLoc, func() time.Time { return now })
}

func TestAttendanceService_GetCalendar(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies fetched payload", func(t *testing.T) {
		source := &fakeSource{body: []byte(aprilJSON)}
		svc := newTestService(source, at(2, 10, 0))

		cal, err := svc.GetCalendar(ctx, attendance.CalendarRequest{UserID: "u-1", Year: 2026, Month: 4})
		require.NoError(t, err)

		assert.Equal(t, []string{"u-1"}, source.calls)
		assert.Equal(t, 3, cal.FirstWeekday)
		require.Len(t, cal.Items, 30)
		assert.Equal(t, attendance.DayMixedOrNormal, cal.Items[0].Status.Kind)
		assert.Equal(t, attendance.HalfDays{Morning: attendance.HalfDayMakeup, Afternoon: attendance.HalfDayMissing}, *cal.Items[1].Status.Halves)
		assert.True(t, cal.Items[1].AfternoonPending)
		assert.Equal(t, attendance.DayFuture, cal.Items[2].Status.Kind)
		assert.Equal(t, 1, cal.Statistics.LateCount)
	})

	t.Run("invalid request is not fetched", func(t *testing.T) {
		source := &fakeSource{body: []byte(aprilJSON)}
		svc := newTestService(source, at(2, 10, 0))

		_, err := svc.GetCalendar(ctx, attendance.CalendarRequest{UserID: "", Year: 2026, Month: 13})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Empty(t, source.calls)
	})

	t.Run("upstream failure", func(t *testing.T) {
		source := &fakeSource{err: errors.New("connection refused")}
		svc := newTestService(source, at(2, 10, 0))

		_, err := svc.GetCalendar(ctx, attendance.CalendarRequest{UserID: "u-1", Year: 2026, Month: 4})
		assert.ErrorIs(t, err, attendance.ErrUpstreamUnavailable)
	})

	t.Run("malformed payload", func(t *testing.T) {
		source := &fakeSource{body: []byte(`{"details": {}, "days": 30, "month": 4, "year": 2026}`)}
		svc := newTestService(source, at(2, 10, 0))

		_, err := svc.GetCalendar(ctx, attendance.CalendarRequest{UserID: "u-1", Year: 2026, Month: 4})
		assert.ErrorIs(t, err, attendance.ErrMalformedPayload)
	})

	t.Run("settings failure", func(t *testing.T) {
		svc := NewAttendanceService(
			&fakeSource{body: []byte(aprilJSON)},
			&fakeSettings{err: errors.New("db down")},
			testLoc,
			func() time.Time { return at(2, 10, 0) },
		)

		_, err := svc.GetCalendar(ctx, attendance.CalendarRequest{UserID: "u-1", Year: 2026, Month: 4})
		assert.Error(t, err)
	})
}

func TestAttendanceService_ClassifyPayload(t *testing.T) {
	source := &fakeSource{}
	svc := newTestService(source, at(5, 10, 0))

	cal, err := svc.ClassifyPayload(context.Background(), []byte(aprilJSON))
	require.NoError(t, err)

	assert.Empty(t, source.calls)
	assert.Equal(t, attendance.DayStatus{Kind: attendance.DayHoliday, HolidayName: "清明"}, cal.Items[2].Status)
	assert.Equal(t, attendance.DayBothMissing, cal.Items[3].Status.Kind)

	_, err = svc.ClassifyPayload(context.Background(), []byte(`not json`))
	assert.ErrorIs(t, err, attendance.ErrMalformedPayload)
}

func TestAttendanceService_GetNextAction(t *testing.T) {
	ctx := context.Background()
	req := attendance.NextActionRequest{UserID: "u-1"}

	t.Run("afternoon owed", func(t *testing.T) {
		now := at(2, 10, 0)
		svc := newTestService(&fakeSource{body: []byte(aprilJSON)}, now)

		resp, err := svc.GetNextAction(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, attendance.AfternoonClockOut, resp.Kind)
		assert.Equal(t, "下班", resp.Label)
		assert.True(t, resp.TargetTime.Equal(at(2, 17, 0)))
		assert.Equal(t, "07:00:00", resp.Countdown)
	})

	t.Run("both punched", func(t *testing.T) {
		svc := newTestService(&fakeSource{body: []byte(aprilJSON)}, at(1, 10, 0))

		resp, err := svc.GetNextAction(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("not a workday", func(t *testing.T) {
		body := []byte(`{"details": [], "month": 4, "year": 2026, "days": 30, "is_workday": 0}`)
		svc := newTestService(&fakeSource{body: body}, at(2, 7, 0))

		resp, err := svc.GetNextAction(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("padded day owes morning punch", func(t *testing.T) {
		svc := newTestService(&fakeSource{body: []byte(aprilJSON)}, at(20, 8, 30))

		resp, err := svc.GetNextAction(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, attendance.MorningClockIn, resp.Kind)
		assert.Equal(t, "上班", resp.Label)
		assert.Equal(t, "00:30:00", resp.Countdown)
	})

	t.Run("missing user", func(t *testing.T) {
		source := &fakeSource{body: []byte(aprilJSON)}
		svc := newTestService(source, at(2, 10, 0))

		_, err := svc.GetNextAction(ctx, attendance.NextActionRequest{})
		assert.Error(t, err)
		assert.Empty(t, source.calls)
	})
}

func TestAttendanceService_NextActionAtRederivesFromSnapshot(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{body: []byte(aprilJSON)}
	svc := newTestService(source, at(20, 8, 59))

	snapshot, err := svc.GetTodaySnapshot(ctx, attendance.NextActionRequest{UserID: "u-1"})
	require.NoError(t, err)
	require.NotNil(t, snapshot.Today)
	assert.True(t, snapshot.IsWorkday)
	assert.Equal(t, testWindow, snapshot.Window)
	assert.True(t, snapshot.FetchedAt.Equal(at(20, 8, 59)))

	before := svc.NextActionAt(snapshot, at(20, 8, 59))
	require.NotNil(t, before)
	assert.Equal(t, attendance.MorningClockIn, before.Kind)
	assert.Equal(t, "00:01:00", before.Countdown)

	after := svc.NextActionAt(snapshot, at(20, 9, 0).Add(30*time.Second))
	require.NotNil(t, after)
	assert.Equal(t, attendance.AfternoonClockOut, after.Kind)
	assert.True(t, after.TargetTime.Equal(at(20, 17, 0)))
	assert.Equal(t, "07:59:30", after.Countdown)

	assert.Len(t, source.calls, 1)
}

func TestAttendanceService_NowUsesLocation(t *testing.T) {
	utc := time.Date(2026, 4, 14, 16, 30, 0, 0, time.UTC)
	svc := NewAttendanceService(&fakeSource{}, &fakeSettings{}, testLoc, func() time.Time { return utc })

	now := svc.Now()
	assert.Equal(t, 15, now.Day())
	assert.Equal(t, 0, now.Hour())
}
