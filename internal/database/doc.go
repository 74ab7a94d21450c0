// Package database provides the data access layer for reading state.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── progress/        # Reading progress upserts and lookups
//	└── bookmarks/       # Bookmark creation, listing and removal
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type built on the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./reading.db")
//
//	progressRepo := progress.NewRepository(db.DB)
//	bookmarksRepo := bookmarks.NewRepository(db.DB)
//
//	err = progressRepo.SaveProgress("novels/dune.md", 1200)
//	marks, err := bookmarksRepo.ListBookmarks("novels/dune.md")
//
// # Interface Implementations
//
//   - progress.Repository: implements http.ProgressStore
//   - bookmarks.Repository: implements http.BookmarkStore
//
// Every write is a single SQL statement; no repository opens a transaction.
package database
