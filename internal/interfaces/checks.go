package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/readingroom/internal/catalog"
	"github.com/mrlokans/readingroom/internal/consolidate"
	"github.com/mrlokans/readingroom/internal/content"
	"github.com/mrlokans/readingroom/internal/database"
	"github.com/mrlokans/readingroom/internal/database/bookmarks"
	"github.com/mrlokans/readingroom/internal/database/progress"
	"github.com/mrlokans/readingroom/internal/http"
	"github.com/mrlokans/readingroom/internal/scheduler"
	"github.com/mrlokans/readingroom/internal/tasks"
)

// =============================================================================
// Library
// =============================================================================

var _ http.CatalogReader = (*catalog.Catalog)(nil)
var _ http.BookCounter = (*catalog.Catalog)(nil)
var _ http.ContentReader = (*content.Renderer)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.ProgressStore = (*progress.Repository)(nil)
var _ http.ProgressCounter = (*progress.Repository)(nil)
var _ http.BookmarkStore = (*bookmarks.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.ScheduleReporter = (*scheduler.ConsolidateScheduler)(nil)
var _ tasks.Runner = (*consolidate.Consolidator)(nil)
