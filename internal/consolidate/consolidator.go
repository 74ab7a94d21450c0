package consolidate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mrlokans/readingroom/internal/utils"
)

var (
	ErrSourceDirRequired = errors.New("source directory is required")
	ErrOutputDirRequired = errors.New("output directory is required")
)

const (
	BooksDirName       = "books"
	WasteDirName       = "waste"
	MetadataFileName   = "metadata.json"
	CatalogIndexName   = "CATALOG.md"
	DeletionReportName = "DELETION_REPORT.md"
)

// Stats summarizes a run. Processed counts the files that passed every
// check, so it always equals Kept.
type Stats struct {
	Total      int `json:"total"`
	Processed  int `json:"processed"`
	Kept       int `json:"kept"`
	Removed    int `json:"removed"`
	Duplicates int `json:"duplicates"`
}

// CatalogEntry is a written book as it appears in metadata.json.
type CatalogEntry struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Length   int    `json:"length"`
	Chapters int    `json:"chapters"`
}

// Result describes everything a run produced.
type Result struct {
	RunID       string
	GeneratedAt time.Time
	Stats       Stats
	// Categories lists category names in first-seen order.
	Categories []string
	Books      map[string][]CatalogEntry
	Removed    []Rejection
	WasteMoved int
}

// Consolidator builds a categorized library from a directory of markdown books.
type Consolidator struct {
	opts Options
	now  func() time.Time
}

func NewConsolidator(opts Options) *Consolidator {
	return &Consolidator{opts: opts, now: time.Now}
}

// Run scans the source directory, writes kept books and reports into the
// output directory and returns the summary. Cancelling ctx stops the scan
// between files.
func (c *Consolidator) Run(ctx context.Context) (*Result, error) {
	if c.opts.SourceDir == "" {
		return nil, ErrSourceDirRequired
	}
	if c.opts.OutputDir == "" {
		return nil, ErrOutputDirRequired
	}

	info, err := os.Stat(c.opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", c.opts.SourceDir)
	}

	files, err := c.collect()
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       uuid.NewString(),
		GeneratedAt: c.now().UTC(),
		Books:       make(map[string][]CatalogEntry),
	}
	result.Stats.Total = len(files)
	log.Printf("Consolidation %s: found %d markdown files in %s", result.RunID, len(files), c.opts.SourceDir)

	booksDir := filepath.Join(c.opts.OutputDir, BooksDirName)
	if err := os.MkdirAll(booksDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create books directory: %w", err)
	}

	a := newAnalyzer(c.opts)
	usedNames := make(map[string]map[string]bool)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, rejection := a.analyze(path)
		if rejection != nil {
			result.Removed = append(result.Removed, *rejection)
			result.Stats.Removed++
			if rejection.Duplicate {
				result.Stats.Duplicates++
			}
			log.Printf("Skipping %s: %s", rejection.Filename, rejection.Reason)
			continue
		}

		if usedNames[entry.Category] == nil {
			usedNames[entry.Category] = make(map[string]bool)
			result.Categories = append(result.Categories, entry.Category)
		}
		filename := uniqueFilename(usedNames[entry.Category], utils.SanitizeFilename(entry.Title))

		if err := writeBook(booksDir, entry.Category, filename, entry.content); err != nil {
			return nil, err
		}

		result.Books[entry.Category] = append(result.Books[entry.Category], CatalogEntry{
			Title:    entry.Title,
			Filename: filename,
			Length:   entry.Length,
			Chapters: entry.Chapters,
		})
		result.Stats.Kept++
		result.Stats.Processed++
	}

	if c.opts.MoveWaste {
		result.WasteMoved = c.moveWaste(result.Removed)
	}

	if err := writeMetadata(filepath.Join(c.opts.OutputDir, MetadataFileName), result); err != nil {
		return nil, err
	}
	if err := writeCatalogIndex(filepath.Join(c.opts.OutputDir, CatalogIndexName), result); err != nil {
		return nil, err
	}
	if err := writeDeletionReport(filepath.Join(c.opts.OutputDir, DeletionReportName), result); err != nil {
		return nil, err
	}

	log.Printf("Consolidation %s finished: %d kept, %d removed (%d duplicates) in %d categories",
		result.RunID, result.Stats.Kept, result.Stats.Removed, result.Stats.Duplicates, len(result.Categories))

	return result, nil
}

// collect returns every *.md file under the source directory in lexical
// order, skipping the output directory when it is nested inside the source.
func (c *Consolidator) collect() ([]string, error) {
	outputAbs, _ := filepath.Abs(c.opts.OutputDir)

	var files []string
	err := filepath.WalkDir(c.opts.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == outputAbs {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan source directory: %w", err)
	}
	return files, nil
}

func (c *Consolidator) moveWaste(removed []Rejection) int {
	wasteDir := filepath.Join(c.opts.OutputDir, WasteDirName)
	moved := 0
	for _, r := range removed {
		rel, err := filepath.Rel(c.opts.SourceDir, r.Path)
		if err != nil {
			rel = r.Filename
		}
		dst := filepath.Join(wasteDir, rel)
		if err := moveFile(r.Path, dst); err != nil {
			log.Printf("Failed to move %s to waste: %v", r.Path, err)
			continue
		}
		moved++
	}
	return moved
}

func uniqueFilename(used map[string]bool, stem string) string {
	name := stem + ".md"
	for i := 2; used[name]; i++ {
		name = stem + " (" + strconv.Itoa(i) + ").md"
	}
	used[name] = true
	return name
}

func writeBook(booksDir, category, filename, content string) error {
	dir := filepath.Join(booksDir, utils.SanitizeFilename(category))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create category directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write book %s: %w", filename, err)
	}
	return nil
}

// moveFile renames src to dst, copying when the rename crosses devices.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
