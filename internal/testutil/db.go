// Package testutil builds throwaway databases and configs for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nexcart/storefront/internal/config"
	"github.com/nexcart/storefront/internal/database"
)

// Config returns a development config rooted in a per-test temp directory.
func Config(t testing.TB) *config.Config {
	t.Helper()
	dir := t.TempDir()

	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Port: "0"},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			Path:        filepath.Join(dir, "shop.db"),
			MaxLifetime: 300,
			LogLevel:    "silent",
		},
		Session: config.SessionConfig{
			SecretKey:  "test-session-secret-0123456789abcdef",
			CookieName: "nexcart_session",
			MaxAge:     3600,
		},
		Storage: config.StorageConfig{
			UploadDir:     filepath.Join(dir, "images"),
			MaxUploadSize: 1 << 20,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
		I18n:      config.I18nConfig{DefaultLocale: "en"},
		Log:       config.LogConfig{Level: "warn", Format: "text"},
	}
}

// DB opens a migrated SQLite database for cfg and closes it when the test ends.
func DB(t testing.TB, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

// SeededDB is DB plus the sample catalog.
func SeededDB(t testing.TB, cfg *config.Config) *gorm.DB {
	t.Helper()

	db := DB(t, cfg)
	_, err := database.SeedCatalog(db)
	require.NoError(t, err)
	return db
}
