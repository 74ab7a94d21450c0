package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/readingroom/internal/catalog"
	"github.com/mrlokans/readingroom/internal/content"
	"github.com/mrlokans/readingroom/internal/database"
	"github.com/mrlokans/readingroom/internal/database/bookmarks"
	"github.com/mrlokans/readingroom/internal/database/progress"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
	"categories": {
		"Sci-Fi": [
			{"title": "Dune", "filename": "dune.md", "author": "Frank Herbert"},
			{"title": "Hyperion", "filename": "hyperion.md"}
		],
		"推理懸疑": [
			{"title": "无人生还", "filename": "无人生还.md"}
		],
		"Classics": [
			{"title": "Dune Messiah", "filename": "messiah.md"}
		]
	}
}`

type testServer struct {
	router *gin.Engine
	db     *database.Database
	static string
}

// setupTestServer wires a router against a real catalog, books directory
// and SQLite database under t.TempDir().
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()

	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)

	booksDir := filepath.Join(dir, "books")
	writeTestFile(t, filepath.Join(booksDir, "Sci-Fi", "dune.md"), "# Dune\n\nThe spice must flow.")
	writeTestFile(t, filepath.Join(booksDir, "推理懸疑", "无人生还.md"), "# 无人生还\n\n十个人。")
	writeTestFile(t, filepath.Join(dir, "secret.md"), "# Secret")

	renderer, err := content.NewRenderer(booksDir)
	require.NoError(t, err)

	db, err := database.NewDatabase(filepath.Join(dir, "reading.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	staticDir := filepath.Join(dir, "public")
	writeTestFile(t, filepath.Join(staticDir, "index.html"), "<html>reader</html>")
	writeTestFile(t, filepath.Join(staticDir, "app.js"), "console.log('reader')")

	progressRepo := progress.NewRepository(db.DB)
	router := NewRouter(RouterConfig{
		Catalog:            cat,
		Content:            renderer,
		ProgressStore:      progressRepo,
		BookmarkStore:      bookmarks.NewRepository(db.DB),
		Database:           db,
		BookCounter:        cat,
		ProgressCounter:    progressRepo,
		StaticPath:         staticDir,
		CORSAllowedOrigins: []string{"*"},
		Version:            "test",
	})

	return &testServer{router: router, db: db, static: staticDir}
}

func writeTestFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func (s *testServer) do(method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

