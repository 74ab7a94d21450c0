package http

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a write that returns no data.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// --- Success Response Helpers ---

// respondSuccess sends the {"success": true} acknowledgement.
func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// --- Parameter Parsing ---

// roundPosition rounds a client-reported offset to the nearest int.
// Values that do not fit are refused instead of wrapping.
func roundPosition(v float64) (int, bool) {
	r := math.Round(v)
	if math.IsNaN(r) || r < math.MinInt || r >= -math.MinInt {
		return 0, false
	}
	return int(r), true
}

// parseBookPathParam reads a book path captured by a catch-all route
// segment. Book paths contain a slash, so clients may send it either raw
// (/api/progress/novels/dune.md) or encoded (/api/progress/novels%2Fdune.md).
func parseBookPathParam(c *gin.Context, paramName string) (string, bool) {
	bookPath := strings.TrimPrefix(c.Param(paramName), "/")
	if bookPath == "" {
		respondBadRequest(c, paramName+" is required")
		return "", false
	}
	return bookPath, true
}
