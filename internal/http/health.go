package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger reports database connectivity.
type Pinger interface {
	Ping() error
}

// BookCounter reports how many books the loaded catalog holds.
type BookCounter interface {
	BookCount() int
}

// ProgressCounter reports how many books have saved reading progress.
type ProgressCounter interface {
	CountProgress() (int64, error)
}

type HealthController struct {
	db       Pinger
	catalog  BookCounter
	progress ProgressCounter
	version  string
}

func NewHealthController(db Pinger, catalog BookCounter, progress ProgressCounter, version string) *HealthController {
	return &HealthController{
		db:       db,
		catalog:  catalog,
		progress: progress,
		version:  version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// An empty catalog is served normally, so it never fails the check.
	if h.catalog != nil {
		checks["catalog"] = strconv.Itoa(h.catalog.BookCount()) + " books"
	} else {
		checks["catalog"] = "not configured"
	}

	if h.progress != nil {
		if count, err := h.progress.CountProgress(); err != nil {
			checks["progress"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["progress"] = strconv.FormatInt(count, 10) + " books in progress"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
