package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalog CatalogReader
}

func NewCatalogController(catalog CatalogReader) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListCategories handles GET /api/categories
func (cc *CatalogController) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, cc.catalog.ListCategories())
}

// ListBooks handles GET /api/books/:category
// Unknown categories return an empty list.
func (cc *CatalogController) ListBooks(c *gin.Context) {
	c.JSON(http.StatusOK, cc.catalog.ListBooks(c.Param("category")))
}

// Search handles GET /api/search?q=
func (cc *CatalogController) Search(c *gin.Context) {
	c.JSON(http.StatusOK, cc.catalog.Search(c.Query("q")))
}
