package consolidate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrlokans/readingroom/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLibrary creates a source tree with two kept books in one category,
// one in another, a duplicate and a garbage file.
func setupLibrary(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeSource(t, src, "a/盗墓笔记.md", []byte(bookContent("", 5, '山')))
	writeSource(t, src, "b/盗墓笔记 copy.md", []byte(bookContent("", 5, '山')))
	writeSource(t, src, "c/盗墓笔记.md", []byte(bookContent("", 5, '火')))
	writeSource(t, src, "nested/重生之路.md", []byte(bookContent("", 5, '水')))
	writeSource(t, src, "test_notes.md", []byte(bookContent("", 5, '木')))
	writeSource(t, src, "readme.txt", []byte("ignored"))
	return src
}

func TestConsolidator_Run(t *testing.T) {
	src := setupLibrary(t)
	out := t.TempDir()

	c := NewConsolidator(DefaultOptions(src, out))
	c.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, Stats{Total: 5, Processed: 3, Kept: 3, Removed: 2, Duplicates: 1}, result.Stats)
	assert.Equal(t, []string{"盜墓探險", "網絡小說"}, result.Categories)
	assert.Equal(t, 0, result.WasteMoved)

	t.Run("writes books under their category", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(out, "books", "盜墓探險", "盗墓笔记.md"))
		assert.FileExists(t, filepath.Join(out, "books", "盜墓探險", "盗墓笔记 (2).md"))
		assert.FileExists(t, filepath.Join(out, "books", "網絡小說", "重生之路.md"))
	})

	t.Run("metadata is a loadable catalog", func(t *testing.T) {
		cat, err := catalog.Load(filepath.Join(out, MetadataFileName))
		require.NoError(t, err)

		assert.Equal(t, []catalog.CategorySummary{
			{Name: "盜墓探險", Count: 2},
			{Name: "網絡小說", Count: 1},
		}, cat.ListCategories())

		books := cat.ListBooks("盜墓探險")
		require.Len(t, books, 2)
		assert.Equal(t, "盗墓笔记", books[0].Title)
		assert.Equal(t, "盗墓笔记.md", books[0].Filename)
		assert.Equal(t, "盗墓笔记 (2).md", books[1].Filename)
		assert.Contains(t, books[0].Extra, "chapters")
	})

	t.Run("metadata carries run id and stats", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(out, MetadataFileName))
		require.NoError(t, err)

		var doc struct {
			RunID       string `json:"run_id"`
			GeneratedAt string `json:"generated_at"`
			Stats       Stats  `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, result.RunID, doc.RunID)
		assert.Equal(t, "2024-05-01T12:00:00Z", doc.GeneratedAt)
		assert.Equal(t, result.Stats, doc.Stats)
	})

	t.Run("writes catalog index and deletion report", func(t *testing.T) {
		index, err := os.ReadFile(filepath.Join(out, CatalogIndexName))
		require.NoError(t, err)
		assert.Contains(t, string(index), "## 盜墓探險 (2)")
		assert.Contains(t, string(index), "**重生之路**")
		assert.Contains(t, string(index), "5 chapters")

		report, err := os.ReadFile(filepath.Join(out, DeletionReportName))
		require.NoError(t, err)
		assert.Contains(t, string(report), "| test_notes.md | test or debug file |")
		assert.Contains(t, string(report), "duplicate of 盗墓笔记.md")
		assert.Contains(t, string(report), result.RunID)
	})

	t.Run("leaves rejected sources in place", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(src, "test_notes.md"))
	})
}

func TestConsolidator_MoveWaste(t *testing.T) {
	src := setupLibrary(t)
	out := t.TempDir()

	opts := DefaultOptions(src, out)
	opts.MoveWaste = true

	result, err := NewConsolidator(opts).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.WasteMoved)
	assert.FileExists(t, filepath.Join(out, WasteDirName, "test_notes.md"))
	assert.FileExists(t, filepath.Join(out, WasteDirName, "b", "盗墓笔记 copy.md"))
	assert.NoFileExists(t, filepath.Join(src, "test_notes.md"))
	assert.FileExists(t, filepath.Join(src, "a", "盗墓笔记.md"))
}

func TestConsolidator_SkipsNestedOutputDir(t *testing.T) {
	src := setupLibrary(t)
	out := filepath.Join(src, "library")

	first, err := NewConsolidator(DefaultOptions(src, out)).Run(context.Background())
	require.NoError(t, err)

	second, err := NewConsolidator(DefaultOptions(src, out)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
}

func TestConsolidator_EmptySource(t *testing.T) {
	out := t.TempDir()

	result, err := NewConsolidator(DefaultOptions(t.TempDir(), out)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{}, result.Stats)

	cat, err := catalog.Load(filepath.Join(out, MetadataFileName))
	require.NoError(t, err)
	assert.Empty(t, cat.ListCategories())
}

func TestConsolidator_Errors(t *testing.T) {
	t.Run("missing source dir", func(t *testing.T) {
		_, err := NewConsolidator(DefaultOptions("", t.TempDir())).Run(context.Background())
		assert.ErrorIs(t, err, ErrSourceDirRequired)
	})

	t.Run("missing output dir", func(t *testing.T) {
		_, err := NewConsolidator(DefaultOptions(t.TempDir(), "")).Run(context.Background())
		assert.ErrorIs(t, err, ErrOutputDirRequired)
	})

	t.Run("source does not exist", func(t *testing.T) {
		_, err := NewConsolidator(DefaultOptions(filepath.Join(t.TempDir(), "nope"), t.TempDir())).Run(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewConsolidator(DefaultOptions(setupLibrary(t), t.TempDir())).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
