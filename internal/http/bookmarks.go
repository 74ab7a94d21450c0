package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BookmarksController struct {
	store BookmarkStore
}

func NewBookmarksController(store BookmarkStore) *BookmarksController {
	return &BookmarksController{store: store}
}

// AddBookmarkRequest is the body of POST /api/bookmark.
type AddBookmarkRequest struct {
	BookPath string  `json:"book_path"`
	Position float64 `json:"position"`
}

// AddBookmark handles POST /api/bookmark
// The response does not include the new bookmark; clients re-list.
func (bc *BookmarksController) AddBookmark(c *gin.Context) {
	var req AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.BookPath == "" {
		respondBadRequest(c, "book_path is required")
		return
	}

	position, ok := roundPosition(req.Position)
	if !ok {
		respondBadRequest(c, "position is out of range")
		return
	}

	if _, err := bc.store.AddBookmark(req.BookPath, position); err != nil {
		respondInternalError(c, err, "add bookmark")
		return
	}

	respondSuccess(c)
}

// ListBookmarks handles GET /api/bookmarks/*book_path
func (bc *BookmarksController) ListBookmarks(c *gin.Context) {
	bookPath, ok := parseBookPathParam(c, "book_path")
	if !ok {
		return
	}

	bookmarks, err := bc.store.ListBookmarks(bookPath)
	if err != nil {
		respondInternalError(c, err, "list bookmarks")
		return
	}

	c.JSON(http.StatusOK, bookmarks)
}

// DeleteBookmark handles DELETE /api/bookmark/:id
// Deleting an unknown ID still succeeds. An id outside the SQLite rowid
// range cannot match a row, so it succeeds without touching the store.
func (bc *BookmarksController) DeleteBookmark(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		respondSuccess(c)
		return
	}

	if err := bc.store.DeleteBookmark(id); err != nil {
		respondInternalError(c, err, "delete bookmark")
		return
	}

	respondSuccess(c)
}
