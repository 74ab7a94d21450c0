package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog       CatalogReader
	Content       ContentReader
	ProgressStore ProgressStore
	BookmarkStore BookmarkStore

	// Health reporting
	Database        Pinger
	BookCounter     BookCounter
	ProgressCounter ProgressCounter

	// Background tasks; task routes are only registered when set.
	TaskQueue TaskQueue
	Scheduler ScheduleReporter

	// Frontend assets served for non-API GET requests.
	StaticPath string

	// CORS origins; "*" allows any origin and an empty list disables CORS.
	CORSAllowedOrigins []string

	// Application info
	Version string
}
