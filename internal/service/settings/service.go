package settings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/database"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
	"github.com/cmlabs-hris/clockin-console/internal/repository/postgresql"
	"github.com/maypok86/otter/v2"
)

const clockWindowCacheKey = "clock_window"

type SettingsServiceImpl struct {
	db       *database.DB
	repo     settings.SettingsRepository
	defaults attendance.ClockWindowConfig
	cache    *otter.Cache[string, attendance.ClockWindowConfig]
}

// GetClockWindow implements settings.SettingsService.
func (s *SettingsServiceImpl) GetClockWindow(ctx context.Context) (attendance.ClockWindowConfig, error) {
	if cfg, ok := s.cache.GetIfPresent(clockWindowCacheKey); ok {
		return cfg, nil
	}

	stored, err := s.repo.GetByKeys(ctx, settings.ClockWindowKeys)
	if err != nil {
		return attendance.ClockWindowConfig{}, fmt.Errorf("failed to load clock window settings: %w", err)
	}

	cfg := s.defaults
	targets := map[string]*int{
		settings.KeyMorningStart:   &cfg.MorningStartMinutes,
		settings.KeyMorningEnd:     &cfg.MorningEndMinutes,
		settings.KeyAfternoonStart: &cfg.AfternoonStartMinutes,
		settings.KeyAfternoonEnd:   &cfg.AfternoonEndMinutes,
	}
	for key, target := range targets {
		row, ok := stored[key]
		if !ok {
			continue
		}
		minutes, valid := validator.IsValidClock(row.Value)
		if !valid {
			slog.Warn("Ignoring invalid stored clock setting", "key", key, "value", row.Value, "error", settings.ErrInvalidStoredValue)
			continue
		}
		*target = minutes
	}

	s.cache.Set(clockWindowCacheKey, cfg)
	return cfg, nil
}

// GetClockWindowSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetClockWindowSettings(ctx context.Context) (settings.ClockWindowResponse, error) {
	cfg, err := s.GetClockWindow(ctx)
	if err != nil {
		return settings.ClockWindowResponse{}, err
	}
	return settings.NewClockWindowResponse(cfg), nil
}

// UpdateClockWindow implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateClockWindow(ctx context.Context, req settings.UpdateClockWindowRequest) (settings.ClockWindowResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.ClockWindowResponse{}, err
	}

	cfg := req.ToConfig()
	values := map[string]string{
		settings.KeyMorningStart:   settings.FormatClock(cfg.MorningStartMinutes),
		settings.KeyMorningEnd:     settings.FormatClock(cfg.MorningEndMinutes),
		settings.KeyAfternoonStart: settings.FormatClock(cfg.AfternoonStartMinutes),
		settings.KeyAfternoonEnd:   settings.FormatClock(cfg.AfternoonEndMinutes),
	}

	err := s.runInTx(ctx, func(txCtx context.Context) error {
		for _, key := range settings.ClockWindowKeys {
			if err := s.repo.Upsert(txCtx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return settings.ClockWindowResponse{}, fmt.Errorf("failed to save clock window: %w", err)
	}

	s.cache.Invalidate(clockWindowCacheKey)
	slog.Info("Clock window updated",
		"morning_start", values[settings.KeyMorningStart],
		"morning_end", values[settings.KeyMorningEnd],
		"afternoon_start", values[settings.KeyAfternoonStart],
		"afternoon_end", values[settings.KeyAfternoonEnd],
	)

	return settings.NewClockWindowResponse(cfg), nil
}

// runInTx wraps fn in a database transaction when a pool is configured.
func (s *SettingsServiceImpl) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

func NewSettingsService(
	db *database.DB,
	repo settings.SettingsRepository,
	defaults attendance.ClockWindowConfig,
	cacheTTL time.Duration,
) settings.SettingsService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	cache := otter.Must(&otter.Options[string, attendance.ClockWindowConfig]{
		MaximumSize:      16,
		ExpiryCalculator: otter.ExpiryWriting[string, attendance.ClockWindowConfig](cacheTTL),
	})

	return &SettingsServiceImpl{
		db:       db,
		repo:     repo,
		defaults: defaults,
		cache:    cache,
	}
}
