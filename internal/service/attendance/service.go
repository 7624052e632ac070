package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
)

type AttendanceServiceImpl struct {
	source          attendance.PayloadSource
	settingsService settings.SettingsService
	location        *time.Location
	clock           func() time.Time
}

// GetCalendar implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetCalendar(ctx context.Context, req attendance.CalendarRequest) (attendance.Calendar, error) {
	if err := req.Validate(); err != nil {
		return attendance.Calendar{}, err
	}

	payload, err := s.fetchPayload(ctx, req.UserID, req.Year, req.Month)
	if err != nil {
		return attendance.Calendar{}, err
	}

	return s.buildCalendar(ctx, payload)
}

// ClassifyPayload implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClassifyPayload(ctx context.Context, raw []byte) (attendance.Calendar, error) {
	payload, err := attendance.ParsePayload(raw, s.location)
	if err != nil {
		return attendance.Calendar{}, err
	}

	return s.buildCalendar(ctx, payload)
}

// GetNextAction implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetNextAction(ctx context.Context, req attendance.NextActionRequest) (*attendance.NextActionResponse, error) {
	snapshot, err := s.GetTodaySnapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.NextActionAt(snapshot, snapshot.FetchedAt), nil
}

// GetTodaySnapshot implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodaySnapshot(ctx context.Context, req attendance.NextActionRequest) (attendance.TodaySnapshot, error) {
	if err := req.Validate(); err != nil {
		return attendance.TodaySnapshot{}, err
	}

	now := s.Now()
	payload, err := s.fetchPayload(ctx, req.UserID, now.Year(), int(now.Month()))
	if err != nil {
		return attendance.TodaySnapshot{}, err
	}

	cfg, err := s.settingsService.GetClockWindow(ctx)
	if err != nil {
		return attendance.TodaySnapshot{}, fmt.Errorf("failed to load clock window: %w", err)
	}

	return attendance.TodaySnapshot{
		Today:     payload.Today(now),
		IsWorkday: payload.IsWorkday,
		Window:    cfg,
		FetchedAt: now,
	}, nil
}

// NextActionAt implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) NextActionAt(snapshot attendance.TodaySnapshot, now time.Time) *attendance.NextActionResponse {
	now = now.In(s.location)
	action := CalculateNextAction(snapshot.Window, snapshot.Today, snapshot.IsWorkday, now)
	if action == nil {
		return nil
	}

	return &attendance.NextActionResponse{
		Kind:       action.Kind,
		Label:      action.Kind.Label(),
		TargetTime: action.TargetTime,
		Countdown:  attendance.FormatCountdown(action.TargetTime, now),
	}
}

// Now implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Now() time.Time {
	return s.clock().In(s.location)
}

func (s *AttendanceServiceImpl) fetchPayload(ctx context.Context, userID string, year, month int) (attendance.MonthlyPayload, error) {
	raw, err := s.source.FetchMonthly(ctx, userID, year, month)
	if err != nil {
		slog.Error("Failed to fetch attendance payload", "user_id", userID, "year", year, "month", month, "error", err)
		if errors.Is(err, attendance.ErrUpstreamUnavailable) {
			return attendance.MonthlyPayload{}, err
		}
		return attendance.MonthlyPayload{}, fmt.Errorf("%w: %v", attendance.ErrUpstreamUnavailable, err)
	}

	payload, err := attendance.ParsePayload(raw, s.location)
	if err != nil {
		slog.Error("Upstream returned malformed attendance payload", "user_id", userID, "error", err)
		return attendance.MonthlyPayload{}, err
	}

	return payload, nil
}

func (s *AttendanceServiceImpl) buildCalendar(ctx context.Context, payload attendance.MonthlyPayload) (attendance.Calendar, error) {
	cfg, err := s.settingsService.GetClockWindow(ctx)
	if err != nil {
		return attendance.Calendar{}, fmt.Errorf("failed to load clock window: %w", err)
	}

	return BuildCalendar(payload, cfg, s.Now()), nil
}

func NewAttendanceService(
	source attendance.PayloadSource,
	settingsService settings.SettingsService,
	location *time.Location,
	clock func() time.Time,
) attendance.AttendanceService {
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		source:          source,
		settingsService: settingsService,
		location:        location,
		clock:           clock,
	}
}
