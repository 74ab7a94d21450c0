package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	store ProgressStore
}

func NewProgressController(store ProgressStore) *ProgressController {
	return &ProgressController{store: store}
}

// SaveProgressRequest is the body of POST /api/progress.
// Browsers may report fractional scroll offsets; they are rounded.
type SaveProgressRequest struct {
	BookPath       string  `json:"book_path"`
	ScrollPosition float64 `json:"scroll_position"`
}

// SaveProgress handles POST /api/progress
func (pc *ProgressController) SaveProgress(c *gin.Context) {
	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.BookPath == "" {
		respondBadRequest(c, "book_path is required")
		return
	}

	position, ok := roundPosition(req.ScrollPosition)
	if !ok {
		respondBadRequest(c, "scroll_position is out of range")
		return
	}

	if err := pc.store.SaveProgress(req.BookPath, position); err != nil {
		respondInternalError(c, err, "save progress")
		return
	}

	respondSuccess(c)
}

// GetProgress handles GET /api/progress/*book_path
// A book without saved progress reports scroll_position 0.
func (pc *ProgressController) GetProgress(c *gin.Context) {
	bookPath, ok := parseBookPathParam(c, "book_path")
	if !ok {
		return
	}

	progress, found, err := pc.store.GetProgress(bookPath)
	if err != nil {
		respondInternalError(c, err, "get progress")
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"scroll_position": 0})
		return
	}

	c.JSON(http.StatusOK, progress)
}
