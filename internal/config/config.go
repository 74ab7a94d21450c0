package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Library
		Database
		Global
		CORS
		Tasks
		Consolidate
	}

	HTTP struct {
		Port int32
		Host string
	}
	Library struct {
		CatalogPath string // metadata.json produced by the consolidator
		BooksDir    string // root of <category>/<filename> book files
		StaticPath  string // frontend assets
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	CORS struct {
		AllowedOrigins []string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Consolidate struct {
		SourceDir string
		OutputDir string // defaults to the directory holding the catalog
		Enabled   bool   // run on Schedule
		Schedule  string // Cron format: "0 3 * * *" = daily at 03:00
		MoveWaste bool
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("catalog_path", DefaultCatalogPath)
	v.SetDefault("books_dir", DefaultBooksDir)
	v.SetDefault("static_path", DefaultStaticPath)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("cors_allowed_origins", "*")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "1h")
	v.SetDefault("task_cleanup_interval", "1h")

	// Catalog builder defaults
	v.SetDefault("consolidate_source_dir", "")
	v.SetDefault("consolidate_output_dir", "")
	v.SetDefault("consolidate_enabled", false)
	v.SetDefault("consolidate_schedule", DefaultConsolidateSchedule)
	v.SetDefault("consolidate_move_waste", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Library: Library{
			CatalogPath: v.GetString("CATALOG_PATH"),
			BooksDir:    v.GetString("BOOKS_DIR"),
			StaticPath:  v.GetString("STATIC_PATH"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Consolidate: Consolidate{
			SourceDir: v.GetString("CONSOLIDATE_SOURCE_DIR"),
			OutputDir: v.GetString("CONSOLIDATE_OUTPUT_DIR"),
			Enabled:   v.GetBool("CONSOLIDATE_ENABLED"),
			Schedule:  v.GetString("CONSOLIDATE_SCHEDULE"),
			MoveWaste: v.GetBool("CONSOLIDATE_MOVE_WASTE"),
		},
	}
}

// splitList parses a comma separated env value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ConsolidateOutputDir is where the catalog builder writes. By default it
// is the directory holding the catalog, so books/ lands next to metadata.json.
func (c *Config) ConsolidateOutputDir() string {
	if c.Consolidate.OutputDir != "" {
		return c.Consolidate.OutputDir
	}
	return filepath.Dir(c.Library.CatalogPath)
}
