package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/readingroom/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBookmarkStore struct{}

func (failingBookmarkStore) AddBookmark(string, int) (*entities.Bookmark, error) {
	return nil, errors.New("disk I/O error")
}

func (failingBookmarkStore) ListBookmarks(string) ([]entities.Bookmark, error) {
	return nil, errors.New("disk I/O error")
}

func (failingBookmarkStore) DeleteBookmark(uint64) error {
	return errors.New("disk I/O error")
}

func positions(bookmarks []entities.Bookmark) []int {
	result := make([]int, len(bookmarks))
	for i, b := range bookmarks {
		result[i] = b.Position
	}
	return result
}

func TestBookmarksController_AddAndList(t *testing.T) {
	s := setupTestServer(t)

	w := s.do("POST", "/api/bookmark", gin.H{"book_path": "Sci-Fi/dune.md", "position": 50})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	s.do("POST", "/api/bookmark", gin.H{"book_path": "Sci-Fi/dune.md", "position": 10})
	s.do("POST", "/api/bookmark", gin.H{"book_path": "Sci-Fi/hyperion.md", "position": 5})

	w = s.do("GET", "/api/bookmarks/Sci-Fi/dune.md", nil)
	require.Equal(t, http.StatusOK, w.Code)

	bookmarks := decodeJSON[[]entities.Bookmark](t, w)
	assert.Equal(t, []int{10, 50}, positions(bookmarks))
	for _, b := range bookmarks {
		assert.Equal(t, "Sci-Fi/dune.md", b.BookPath)
		assert.NotZero(t, b.ID)
		assert.False(t, b.CreatedAt.IsZero())
	}
}

func TestBookmarksController_ListEmpty(t *testing.T) {
	s := setupTestServer(t)

	w := s.do("GET", "/api/bookmarks/Sci-Fi/dune.md", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookmarksController_Delete(t *testing.T) {
	s := setupTestServer(t)

	s.do("POST", "/api/bookmark", gin.H{"book_path": "Sci-Fi/dune.md", "position": 10})
	s.do("POST", "/api/bookmark", gin.H{"book_path": "Sci-Fi/dune.md", "position": 50})

	bookmarks := decodeJSON[[]entities.Bookmark](t, s.do("GET", "/api/bookmarks/Sci-Fi/dune.md", nil))
	require.Len(t, bookmarks, 2)

	w := s.do("DELETE", fmt.Sprintf("/api/bookmark/%d", bookmarks[0].ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	remaining := decodeJSON[[]entities.Bookmark](t, s.do("GET", "/api/bookmarks/Sci-Fi/dune.md", nil))
	assert.Equal(t, []int{50}, positions(remaining))

	t.Run("unknown id still succeeds", func(t *testing.T) {
		w := s.do("DELETE", "/api/bookmark/99999", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true}`, w.Body.String())

		remaining := decodeJSON[[]entities.Bookmark](t, s.do("GET", "/api/bookmarks/Sci-Fi/dune.md", nil))
		assert.Len(t, remaining, 1)
	})

	t.Run("ids that cannot match a row still succeed", func(t *testing.T) {
		for _, id := range []string{"4294967296", "9223372036854775807", "9223372036854775808", "first", "-1"} {
			w := s.do("DELETE", "/api/bookmark/"+id, nil)

			assert.Equal(t, http.StatusOK, w.Code, id)
			assert.JSONEq(t, `{"success": true}`, w.Body.String(), id)
		}

		remaining := decodeJSON[[]entities.Bookmark](t, s.do("GET", "/api/bookmarks/Sci-Fi/dune.md", nil))
		assert.Len(t, remaining, 1)
	})
}

func TestBookmarksController_RejectsOutOfRangePosition(t *testing.T) {
	s := setupTestServer(t)

	for _, position := range []float64{1e20, -1e20} {
		w := s.do("POST", "/api/bookmark", gin.H{"book_path": "Sci-Fi/dune.md", "position": position})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "position is out of range"}`, w.Body.String())
	}

	w := s.do("GET", "/api/bookmarks/Sci-Fi/dune.md", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookmarksController_InvalidRequests(t *testing.T) {
	s := setupTestServer(t)

	for _, body := range []string{`{"position": 10}`, `not json`, `{"book_path": "", "position": 1}`} {
		req := httptest.NewRequest("POST", "/api/bookmark", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestBookmarksController_StoreErrors(t *testing.T) {
	controller := NewBookmarksController(failingBookmarkStore{})
	router := gin.New()
	router.POST("/api/bookmark", controller.AddBookmark)
	router.GET("/api/bookmarks/*book_path", controller.ListBookmarks)
	router.DELETE("/api/bookmark/:id", controller.DeleteBookmark)

	req := httptest.NewRequest("POST", "/api/bookmark", strings.NewReader(`{"book_path":"a.md","position":1}`))
	req.Header.Set("Content-Type", "application/json")

	for _, r := range []*http.Request{
		req,
		httptest.NewRequest("GET", "/api/bookmarks/a.md", nil),
		httptest.NewRequest("DELETE", "/api/bookmark/1", nil),
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code, r.URL.Path)
		assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
	}
}
