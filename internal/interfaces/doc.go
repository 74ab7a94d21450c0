// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Library Interfaces
//
//   - CatalogReader: Category and book listings, title search (internal/http/stores.go)
//   - ContentReader: Markdown book loading and rendering (internal/http/stores.go)
//   - BookCounter: Catalog size for health checks (internal/http/health.go)
//
// ## Data Access Interfaces
//
//   - ProgressStore: One scroll position per book path (internal/http/stores.go)
//   - BookmarkStore: Bookmark add, list and delete (internal/http/stores.go)
//   - Pinger: Database connectivity (internal/http/health.go)
//
// ## Background Work Interfaces
//
//   - TaskQueue: Enqueue tasks and read their status (internal/http/tasks.go)
//   - Enqueuer: Scheduled task submission (internal/scheduler/consolidate.go)
//   - Runner: A library consolidation run (internal/tasks/consolidate.go)
//
// # Adding a New Task
//
//  1. Define the task and its queue in internal/tasks/
//
//     type ReindexTask struct{}
//
//     func (t ReindexTask) Config() backlite.QueueConfig {
//         return backlite.QueueConfig{Name: "reindex", MaxAttempts: 1}
//     }
//
//  2. Add it to tasks.Types and tasks.NewTask so it can be run over HTTP
//
//  3. Register the queue in entrypoint.go
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/highlights/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add the entity to the AutoMigrate list in database.go
//
//  4. Add compile-time check in checks.go
//
// # Compile-Time Interface Checks
//
// Implementations are checked against their interfaces at compile time:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
