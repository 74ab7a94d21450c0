package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingroom/internal/content"
)

type ContentController struct {
	reader ContentReader
}

func NewContentController(reader ContentReader) *ContentController {
	return &ContentController{reader: reader}
}

// GetContent handles GET /api/book/content?category=&filename=
func (cc *ContentController) GetContent(c *gin.Context) {
	category := c.Query("category")
	filename := c.Query("filename")

	if category == "" || filename == "" {
		respondBadRequest(c, "category and filename query parameters are required")
		return
	}

	book, err := cc.reader.GetContent(category, filename)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, book)
	case errors.Is(err, content.ErrMissingParameter):
		respondBadRequest(c, "category and filename query parameters are required")
	case errors.Is(err, content.ErrNotFound):
		respondNotFound(c, "book")
	default:
		log.Printf("Failed to read book %s/%s: %v", category, filename, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read book"})
	}
}
