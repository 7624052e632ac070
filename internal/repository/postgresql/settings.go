package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/clockin-console/internal/domain/settings"
	"github.com/cmlabs-hris/clockin-console/internal/pkg/database"
)

const settingsSchema = `
	CREATE TABLE IF NOT EXISTS system_settings (
		setting_key   VARCHAR(64) PRIMARY KEY,
		setting_value TEXT        NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// EnsureSettingsSchema creates the settings table when missing
func EnsureSettingsSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, settingsSchema); err != nil {
		return fmt.Errorf("failed to create system_settings: %w", err)
	}
	return nil
}

type settingsRepository struct {
	db *database.DB
}

// GetByKeys implements settings.SettingsRepository.
func (r *settingsRepository) GetByKeys(ctx context.Context, keys []string) (map[string]settings.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT setting_key, setting_value, updated_at
		FROM system_settings
		WHERE setting_key = ANY($1)
	`

	rows, err := q.Query(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]settings.Setting, len(keys))
	for rows.Next() {
		var s settings.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		result[s.Key] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return result, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, key string, value string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO system_settings (setting_key, setting_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}

	return nil
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}
