// Package progress provides database operations for per-book reading progress.
//
// This package implements the ProgressStore interface defined in internal/http/progress.go.
//
// # Interface Implementation
//
//	var _ http.ProgressStore = (*Repository)(nil)
//
// # Usage
//
//	repo := progress.NewRepository(db)
//	err := repo.SaveProgress("novels/dune.md", 1200)
//	p, found, err := repo.GetProgress("novels/dune.md")
package progress

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/readingroom/internal/entities"
)

// Repository handles all reading progress database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// SaveProgress inserts the progress row for bookPath or, when one already
// exists, overwrites its scroll position and last_read in the same statement.
func (r *Repository) SaveProgress(bookPath string, scrollPosition int) error {
	now := r.now().UTC()
	row := entities.ReadingProgress{
		BookPath:       bookPath,
		ScrollPosition: scrollPosition,
		LastRead:       now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "book_path"}},
		DoUpdates: clause.Assignments(map[string]any{
			"scroll_position": scrollPosition,
			"last_read":       now,
		}),
	}).Create(&row).Error
}

// GetProgress returns the stored progress for bookPath. found is false when
// the book has never been saved; that is not an error.
func (r *Repository) GetProgress(bookPath string) (*entities.ReadingProgress, bool, error) {
	var p entities.ReadingProgress
	err := r.db.Where("book_path = ?", bookPath).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

// CountProgress returns the number of books with saved progress.
func (r *Repository) CountProgress() (int64, error) {
	var count int64
	err := r.db.Model(&entities.ReadingProgress{}).Count(&count).Error
	return count, err
}
