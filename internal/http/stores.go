package http

import (
	"github.com/mrlokans/readingroom/internal/catalog"
	"github.com/mrlokans/readingroom/internal/content"
	"github.com/mrlokans/readingroom/internal/entities"
)

// This file consolidates the interfaces HTTP controllers depend on.
// Each controller only receives the narrow interface it needs.

// CatalogReader provides read access to the in-memory catalog.
type CatalogReader interface {
	ListCategories() []catalog.CategorySummary
	ListBooks(category string) []catalog.Book
	Search(query string) []catalog.SearchResult
}

// ContentReader loads and renders a single book file.
type ContentReader interface {
	GetContent(category, filename string) (*content.Book, error)
}

// ProgressStore persists one reading position per book path.
type ProgressStore interface {
	SaveProgress(bookPath string, scrollPosition int) error
	GetProgress(bookPath string) (*entities.ReadingProgress, bool, error)
}

// BookmarkStore persists bookmarks.
type BookmarkStore interface {
	AddBookmark(bookPath string, position int) (*entities.Bookmark, error)
	ListBookmarks(bookPath string) ([]entities.Bookmark, error)
	DeleteBookmark(id uint64) error
}
