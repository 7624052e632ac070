package settings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/clockin-console/internal/domain/attendance"
	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu        sync.Mutex
	rows      map[string]settings.Setting
	reads     int
	failRead  error
	failWrite error
}

func newMemoryRepo(values map[string]string) *memoryRepo {
	rows := make(map[string]settings.Setting, len(values))
	for k, v := range values {
		rows[k] = settings.Setting{Key: k, Value: v, UpdatedAt: time.Now()}
	}
	return &memoryRepo{rows: rows}
}

func (m *memoryRepo) GetByKeys(ctx context.Context, keys []string) (map[string]settings.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.failRead != nil {
		return nil, m.failRead
	}
	result := make(map[string]settings.Setting)
	for _, k := range keys {
		if row, ok := m.rows[k]; ok {
			result[k] = row
		}
	}
	return result, nil
}

func (m *memoryRepo) Upsert(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.rows[key] = settings.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return nil
}

var defaultWindow = attendance.ClockWindowConfig{
	MorningStartMinutes:   6 * 60,
	MorningEndMinutes:     9 * 60,
	AfternoonStartMinutes: 13 * 60,
	AfternoonEndMinutes:   17 * 60,
}

func TestSettingsService_GetClockWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing stored", func(t *testing.T) {
		svc := NewSettingsService(nil, newMemoryRepo(nil), defaultWindow, time.Minute)

		cfg, err := svc.GetClockWindow(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaultWindow, cfg)
	})

	t.Run("stored values override defaults", func(t *testing.T) {
		repo := newMemoryRepo(map[string]string{
			settings.KeyMorningEnd:   "09:30",
			settings.KeyAfternoonEnd: "18:00",
		})
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		cfg, err := svc.GetClockWindow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 6*60, cfg.MorningStartMinutes)
		assert.Equal(t, 9*60+30, cfg.MorningEndMinutes)
		assert.Equal(t, 13*60, cfg.AfternoonStartMinutes)
		assert.Equal(t, 18*60, cfg.AfternoonEndMinutes)
	})

	t.Run("invalid stored value is ignored", func(t *testing.T) {
		repo := newMemoryRepo(map[string]string{settings.KeyMorningEnd: "nine"})
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		cfg, err := svc.GetClockWindow(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaultWindow, cfg)
	})

	t.Run("result is cached", func(t *testing.T) {
		repo := newMemoryRepo(nil)
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		_, err := svc.GetClockWindow(ctx)
		require.NoError(t, err)
		_, err = svc.GetClockWindow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.reads)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newMemoryRepo(nil)
		repo.failRead = errors.New("connection reset")
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		_, err := svc.GetClockWindow(ctx)
		assert.Error(t, err)
	})
}

func TestSettingsService_UpdateClockWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and invalidates cache", func(t *testing.T) {
		repo := newMemoryRepo(nil)
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		_, err := svc.GetClockWindow(ctx)
		require.NoError(t, err)

		resp, err := svc.UpdateClockWindow(ctx, settings.UpdateClockWindowRequest{
			MorningStart:   "07:00",
			MorningEnd:     "08:30",
			AfternoonStart: "12:30",
			AfternoonEnd:   "16:45",
		})
		require.NoError(t, err)
		assert.Equal(t, "08:30", resp.MorningEnd)

		assert.Equal(t, "07:00", repo.rows[settings.KeyMorningStart].Value)
		assert.Equal(t, "16:45", repo.rows[settings.KeyAfternoonEnd].Value)

		cfg, err := svc.GetClockWindow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 8*60+30, cfg.MorningEndMinutes)
		assert.Equal(t, 2, repo.reads)

		view, err := svc.GetClockWindowSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings.ClockWindowResponse{MorningStart: "07:00", MorningEnd: "08:30", AfternoonStart: "12:30", AfternoonEnd: "16:45"}, view)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		repo := newMemoryRepo(nil)
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		_, err := svc.UpdateClockWindow(ctx, settings.UpdateClockWindowRequest{MorningStart: "bad"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		assert.Empty(t, repo.rows)
	})

	t.Run("ordering failure", func(t *testing.T) {
		repo := newMemoryRepo(nil)
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		_, err := svc.UpdateClockWindow(ctx, settings.UpdateClockWindowRequest{
			MorningStart:   "10:00",
			MorningEnd:     "09:00",
			AfternoonStart: "13:00",
			AfternoonEnd:   "17:00",
		})
		assert.ErrorIs(t, err, settings.ErrInvalidClockWindow)
		assert.Empty(t, repo.rows)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newMemoryRepo(nil)
		repo.failWrite = errors.New("disk full")
		svc := NewSettingsService(nil, repo, defaultWindow, time.Minute)

		_, err := svc.UpdateClockWindow(ctx, settings.UpdateClockWindowRequest{
			MorningStart:   "06:00",
			MorningEnd:     "09:00",
			AfternoonStart: "13:00",
			AfternoonEnd:   "17:00",
		})
		assert.Error(t, err)
	})
}
