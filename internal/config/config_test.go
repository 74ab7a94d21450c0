package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(3000), cfg.HTTP.Port)
	assert.Equal(t, "", cfg.HTTP.Host)
	assert.Equal(t, DefaultCatalogPath, cfg.Library.CatalogPath)
	assert.Equal(t, DefaultBooksDir, cfg.Library.BooksDir)
	assert.Equal(t, DefaultStaticPath, cfg.Library.StaticPath)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, 5, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)

	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, time.Hour, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)

	assert.False(t, cfg.Consolidate.Enabled)
	assert.Equal(t, DefaultConsolidateSchedule, cfg.Consolidate.Schedule)
	assert.Empty(t, cfg.Consolidate.SourceDir)
	assert.False(t, cfg.Consolidate.MoveWaste)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("CATALOG_PATH", "/srv/library/metadata.json")
	t.Setenv("BOOKS_DIR", "/srv/library/books")
	t.Setenv("DATABASE_PATH", "/var/lib/reading.db")
	t.Setenv("DATABASE_LOG_LEVEL", "info")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("TASK_RELEASE_AFTER", "30m")
	t.Setenv("CONSOLIDATE_ENABLED", "true")
	t.Setenv("CONSOLIDATE_SOURCE_DIR", "/srv/incoming")
	t.Setenv("CONSOLIDATE_SCHEDULE", "0 4 * * 0")
	t.Setenv("CONSOLIDATE_MOVE_WASTE", "true")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, "/srv/library/metadata.json", cfg.Library.CatalogPath)
	assert.Equal(t, "/srv/library/books", cfg.Library.BooksDir)
	assert.Equal(t, "/var/lib/reading.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Database.LogLevel)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Tasks.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.True(t, cfg.Consolidate.Enabled)
	assert.Equal(t, "/srv/incoming", cfg.Consolidate.SourceDir)
	assert.Equal(t, "0 4 * * 0", cfg.Consolidate.Schedule)
	assert.True(t, cfg.Consolidate.MoveWaste)
}

func TestNewConfig_EmptyCORSDisables(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " ")

	assert.Empty(t, NewConfig().CORS.AllowedOrigins)
}

func TestConfig_ConsolidateOutputDir(t *testing.T) {
	cfg := &Config{Library: Library{CatalogPath: "/srv/library/metadata.json"}}
	assert.Equal(t, "/srv/library", cfg.ConsolidateOutputDir())

	cfg.Consolidate.OutputDir = "/tmp/out"
	assert.Equal(t, "/tmp/out", cfg.ConsolidateOutputDir())
}
