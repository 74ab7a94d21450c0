package entities

import (
	"time"
)

// ReadingProgress is the last known scroll position for a single book file.
// BookPath has the form "<category>/<filename>" and is unique.
type ReadingProgress struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BookPath       string    `gorm:"uniqueIndex;not null" json:"book_path"`
	ScrollPosition int       `gorm:"default:0" json:"scroll_position"`
	LastRead       time.Time `json:"last_read"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}

// Bookmark is a saved position inside a book. Bookmarks are never edited,
// only created and deleted.
type Bookmark struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	BookPath  string    `gorm:"index;not null" json:"book_path"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
