package consolidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mrlokans/readingroom/internal/catalog"
)

// Catalog returns the run's books as a catalog in first-seen category order.
func (r *Result) Catalog() *catalog.Catalog {
	lists := make([][]catalog.Book, len(r.Categories))
	for i, name := range r.Categories {
		for _, e := range r.Books[name] {
			lists[i] = append(lists[i], catalog.Book{
				Title:    e.Title,
				Filename: e.Filename,
				Extra: map[string]any{
					"length":   e.Length,
					"chapters": e.Chapters,
				},
			})
		}
	}
	return catalog.New(r.Categories, lists)
}

func writeMetadata(path string, r *Result) error {
	categories, err := r.Catalog().MarshalCategories()
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	stats, err := json.Marshal(r.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	header, err := json.Marshal(struct {
		RunID       string `json:"run_id"`
		GeneratedAt string `json:"generated_at"`
	}{r.RunID, r.GeneratedAt.Format(time.RFC3339)})
	if err != nil {
		return err
	}

	// categories is built by hand to keep insertion order, so the document
	// is assembled from parts and indented once at the end.
	var raw bytes.Buffer
	raw.Write(header[:len(header)-1])
	raw.WriteString(`,"stats":`)
	raw.Write(stats)
	raw.WriteString(`,"categories":`)
	raw.Write(categories)
	raw.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("failed to format metadata: %w", err)
	}
	out.WriteByte('\n')

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

func writeCatalogIndex(path string, r *Result) error {
	names := append([]string(nil), r.Categories...)
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# Library Catalog\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total: %d books in %d categories\n\n", r.Stats.Kept, len(names))

	for _, name := range names {
		books := append([]CatalogEntry(nil), r.Books[name]...)
		sort.SliceStable(books, func(i, j int) bool { return books[i].Title < books[j].Title })

		fmt.Fprintf(&b, "## %s (%d)\n\n", name, len(books))
		for _, book := range books {
			fmt.Fprintf(&b, "- **%s** (%s characters, %d chapters)\n",
				book.Title, humanize.Comma(int64(book.Length)), book.Chapters)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write catalog index: %w", err)
	}
	return nil
}

func writeDeletionReport(path string, r *Result) error {
	var b strings.Builder
	b.WriteString("# Deletion Report\n\n")
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Scanned: %d\n", r.Stats.Total)
	fmt.Fprintf(&b, "- Kept: %d\n", r.Stats.Kept)
	fmt.Fprintf(&b, "- Removed: %d\n", r.Stats.Removed)
	fmt.Fprintf(&b, "- Duplicates: %d\n\n", r.Stats.Duplicates)

	if len(r.Removed) > 0 {
		b.WriteString("## Removed files\n\n")
		b.WriteString("| File | Reason |\n")
		b.WriteString("|------|--------|\n")
		for _, rej := range r.Removed {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeTableCell(rej.Filename), escapeTableCell(rej.Reason))
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write deletion report: %w", err)
	}
	return nil
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
