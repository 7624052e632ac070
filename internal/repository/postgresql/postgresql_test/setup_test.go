package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/clockin-console/internal/pkg/database"
	"github.com/cmlabs-hris/clockin-console/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL and prepares a clean
// system_settings table. The test is skipped when no database is configured.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.EnsureSettingsSchema(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE system_settings")
	require.NoError(t, err)

	return db
}
