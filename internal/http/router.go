package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	if corsMiddleware := CORSMiddleware(cfg.CORSAllowedOrigins); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	health := NewHealthController(cfg.Database, cfg.BookCounter, cfg.ProgressCounter, cfg.Version)
	catalogController := NewCatalogController(cfg.Catalog)
	contentController := NewContentController(cfg.Content)
	progressController := NewProgressController(cfg.ProgressStore)
	bookmarksController := NewBookmarksController(cfg.BookmarkStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Catalog
	api.GET("/categories", catalogController.ListCategories)
	api.GET("/books/:category", catalogController.ListBooks)
	api.GET("/search", catalogController.Search)
	api.GET("/book/content", contentController.GetContent)

	// Book paths contain slashes, so they are captured with catch-all params.
	api.POST("/progress", progressController.SaveProgress)
	api.GET("/progress/*book_path", progressController.GetProgress)

	api.POST("/bookmark", bookmarksController.AddBookmark)
	api.GET("/bookmarks/*book_path", bookmarksController.ListBookmarks)
	api.DELETE("/bookmark/:id", bookmarksController.DeleteBookmark)

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.Scheduler)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	router.NoRoute(staticFallback(cfg.StaticPath))

	return router
}

// staticFallback serves frontend files for GET requests outside /api.
// Everything else gets a JSON 404.
func staticFallback(root string) gin.HandlerFunc {
	return func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if root == "" || !isRead || urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
			respondNotFound(c, "route")
			return
		}

		if file, ok := staticFile(root, urlPath); ok {
			c.File(file)
			return
		}
		respondNotFound(c, "route")
	}
}

// staticFile maps a URL path to a regular file under root, using index.html
// for directories.
func staticFile(root, urlPath string) (string, bool) {
	// Cleaning a rooted path removes any ".." segments.
	rel := filepath.FromSlash(path.Clean("/" + urlPath))
	file := filepath.Join(root, rel)

	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		file = filepath.Join(file, "index.html")
		info, err = os.Stat(file)
	}
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}
