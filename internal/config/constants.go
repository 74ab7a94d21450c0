package config

// Default locations, relative to the working directory.
const (
	DefaultDatabasePath = "./reading.db"
	DefaultCatalogPath  = "./metadata.json"
	DefaultBooksDir     = "./books"
	DefaultStaticPath   = "./public"

	// DefaultConsolidateSchedule runs the catalog builder nightly at 03:00.
	DefaultConsolidateSchedule = "0 3 * * *"
)
