package settings

import (
	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
)

type UpdateClockWindowRequest struct {
	MorningStart   string `json:"morning_start"`
	MorningEnd     string `json:"morning_end"`
	AfternoonStart string `json:"afternoon_start"`
	AfternoonEnd   string `json:"afternoon_end"`
}

func (r *UpdateClockWindowRequest) Validate() error {
	var errs validator.ValidationErrors

	fields := []struct {
		name  string
		value string
	}{
		{KeyMorningStart, r.MorningStart},
		{KeyMorningEnd, r.MorningEnd},
		{KeyAfternoonStart, r.AfternoonStart},
		{KeyAfternoonEnd, r.AfternoonEnd},
	}
	for _, f := range fields {
		if _, ok := validator.IsValidClock(f.value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	cfg := r.ToConfig()
	if cfg.MorningStartMinutes > cfg.MorningEndMinutes ||
		cfg.MorningEndMinutes > cfg.AfternoonStartMinutes ||
		cfg.AfternoonStartMinutes > cfg.AfternoonEndMinutes {
		return ErrInvalidClockWindow
	}

	return nil
}

// ToConfig converts the request to minutes. Call Validate first.
func (r *UpdateClockWindowRequest) ToConfig() attendance.ClockWindowConfig {
	ms, _ := validator.IsValidClock(r.MorningStart)
	me, _ := validator.IsValidClock(r.MorningEnd)
	as, _ := validator.IsValidClock(r.AfternoonStart)
	ae, _ := validator.IsValidClock(r.AfternoonEnd)
	return attendance.ClockWindowConfig{
		MorningStartMinutes:   ms,
		MorningEndMinutes:     me,
		AfternoonStartMinutes: as,
		AfternoonEndMinutes:   ae,
	}
}

type ClockWindowResponse struct {
	MorningStart   string `json:"morning_start"`
	MorningEnd     string `json:"morning_end"`
	AfternoonStart string `json:"afternoon_start"`
	AfternoonEnd   string `json:"afternoon_end"`
}

func NewClockWindowResponse(cfg attendance.ClockWindowConfig) ClockWindowResponse {
	return ClockWindowResponse{
		MorningStart:   FormatClock(cfg.MorningStartMinutes),
		MorningEnd:     FormatClock(cfg.MorningEndMinutes),
		AfternoonStart: FormatClock(cfg.AfternoonStartMinutes),
		AfternoonEnd:   FormatClock(cfg.AfternoonEndMinutes),
	}
}
