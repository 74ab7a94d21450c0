// Package bookmarks provides database operations for book bookmarks.
//
// This package implements the BookmarkStore interface defined in internal/http/bookmarks.go.
//
// # Interface Implementation
//
//	var _ http.BookmarkStore = (*Repository)(nil)
package bookmarks

import (
	"gorm.io/gorm"

	"github.com/mrlokans/readingroom/internal/entities"
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddBookmark stores a new bookmark and returns it with its assigned ID.
func (r *Repository) AddBookmark(bookPath string, position int) (*entities.Bookmark, error) {
	bookmark := &entities.Bookmark{
		BookPath: bookPath,
		Position: position,
	}
	if err := r.db.Create(bookmark).Error; err != nil {
		return nil, err
	}
	return bookmark, nil
}

// ListBookmarks returns every bookmark of a book ordered by position.
// Bookmarks sharing a position keep their creation order.
func (r *Repository) ListBookmarks(bookPath string) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := r.db.Where("book_path = ?", bookPath).
		Order("position ASC, id ASC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []entities.Bookmark{}
	}
	return bookmarks, nil
}

// DeleteBookmark removes the bookmark with the given ID. Deleting an ID
// that does not exist succeeds and changes nothing.
func (r *Repository) DeleteBookmark(id uint64) error {
	return r.db.Delete(&entities.Bookmark{}, id).Error
}
