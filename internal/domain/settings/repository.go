package settings

import (
	"context"
)

type SettingsRepository interface {
	// GetByKeys returns the stored rows for the given keys; absent keys are omitted
	GetByKeys(ctx context.Context, keys []string) (map[string]Setting, error)

	// Upsert inserts or replaces a single setting value
	Upsert(ctx context.Context, key string, value string) error
}
