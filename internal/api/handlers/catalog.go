package handlers

import (
	"net/http"

	"minion-profit/internal/api/models"
	"minion-profit/internal/catalog"
	"minion-profit/internal/model"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the game data the server simulates with
type CatalogHandler struct {
	cat *model.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *model.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

// List handles GET /api/v1/catalog/:kind
func (h *CatalogHandler) List(c *gin.Context) {
	kind := c.Param("kind")
	names, err := catalog.Names(h.cat, kind)
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewError("UNKNOWN_KIND", err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.CatalogResponse{Kind: kind, Names: names, Count: len(names)})
}

// Minion handles GET /api/v1/minions/:name
func (h *CatalogHandler) Minion(c *gin.Context) {
	m, err := h.cat.Minion(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.NewError("UNKNOWN_MINION", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"minion":          m,
		"eligible_levels": m.EligibleLevels(),
	})
}
