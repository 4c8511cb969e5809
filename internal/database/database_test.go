package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
)

func TestAutoMigrate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	require.NoError(t, AutoMigrate(db))

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
}

func TestRunMigrations(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("0002_seed.sql", "INSERT INTO pantry (item) VALUES ('salt')")
	write("0001_pantry.sql", "CREATE TABLE pantry (item TEXT NOT NULL)")
	write("README.md", "not a migration")

	ctx := context.Background()
	applied, err := RunMigrations(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_pantry.sql", "0002_seed.sql"}, applied)

	applied, err = RunMigrations(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var count int
	require.NoError(t, sqlDB.QueryRow("SELECT COUNT(*) FROM pantry").Scan(&count))
	assert.Equal(t, 1, count)

	write("0003_broken.sql", "INSERT INTO missing_table VALUES (1)")
	_, err = RunMigrations(ctx, sqlDB, dir)
	assert.Error(t, err)
	require.NoError(t, sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestAutoMigrate_Postgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, Pinger(db)(context.Background()))
}

func TestNewSQL_BadDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "127.0.0.1", DBPort: "1", DBUser: "nobody", DBPassword: "x", DBName: "none", DBSSLMode: "disable"}
	_, err := NewSQL(cfg.DSN())
	assert.Error(t, err)
}
