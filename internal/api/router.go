// Package api serves simulation results and single-setup simulations over HTTP.
package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"minion-profit/internal/api/handlers"
	"minion-profit/internal/api/middleware"
	"minion-profit/internal/api/models"
	"minion-profit/internal/model"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the routes serve from.
type Deps struct {
	Catalog *model.Catalog
	// Simulator may be nil when no prices are loaded; /simulate then answers 503.
	Simulator handlers.Simulator
	Results   []model.Result
	// StaticDir, when it exists, is served as a single-page app for non-API paths.
	StaticDir string
}

// NewRouter wires the middleware and the /api/v1 routes.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "results": len(d.Results)})
	})

	resultsHandler := handlers.NewResultsHandler(d.Results)
	catalogHandler := handlers.NewCatalogHandler(d.Catalog)

	api := router.Group("/api/v1")
	{
		api.GET("/results", resultsHandler.List)
		api.GET("/results/summary", resultsHandler.Summary)

		api.GET("/catalog/:kind", catalogHandler.List)
		api.GET("/minions/:name", catalogHandler.Minion)

		if d.Simulator != nil {
			api.POST("/simulate", handlers.NewSimulateHandler(d.Simulator).Simulate)
		} else {
			api.POST("/simulate", func(c *gin.Context) {
				c.JSON(http.StatusServiceUnavailable, models.NewError("NO_PRICES", "server started without a price snapshot"))
			})
		}
	}

	serveIndex := false
	if d.StaticDir != "" {
		if info, err := os.Stat(d.StaticDir); err == nil && info.IsDir() {
			router.Static("/assets", filepath.Join(d.StaticDir, "assets"))
			router.StaticFile("/favicon.ico", filepath.Join(d.StaticDir, "favicon.ico"))
			serveIndex = true
			log.Printf("[API] Serving static files from %s", d.StaticDir)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", "Not found"))
			return
		}
		if serveIndex {
			c.File(filepath.Join(d.StaticDir, "index.html"))
			return
		}
		c.Status(http.StatusNotFound)
	})
	return router
}
