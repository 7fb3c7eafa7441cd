package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"minion-profit/internal/api"
	"minion-profit/internal/catalog"
	"minion-profit/internal/data"
	"minion-profit/internal/model"
	"minion-profit/internal/sim"
	"minion-profit/internal/sink"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cat, err := catalog.Load(os.Getenv("CATALOG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	for _, p := range catalog.Problems(cat) {
		log.Printf("Catalog warning: %s", p)
	}

	deps := api.Deps{Catalog: cat, StaticDir: os.Getenv("STATIC_DIR")}
	if deps.StaticDir == "" {
		deps.StaticDir = "./web/dist"
	}

	// Results are optional; the query routes then serve an empty table.
	if path := os.Getenv("RESULTS_FILE"); path != "" {
		results, err := sink.Read(context.Background(), path, "")
		if err != nil {
			log.Fatalf("Failed to load results from %s: %v", path, err)
		}
		log.Printf("Loaded %d results from %s", len(results), path)
		deps.Results = results
	} else {
		log.Printf("RESULTS_FILE not set, serving no stored results")
		deps.Results = []model.Result{}
	}

	pricesPath := data.DefaultSnapshotPath()
	var auctions data.AuctionSource
	if os.Getenv("FETCH_AUCTIONS") == "true" {
		auctions = data.NewAuctionClient("")
	}
	if prices, err := data.LoadReference(pricesPath, auctions); err != nil {
		log.Printf("Price snapshot %s not loaded (%v), /api/v1/simulate disabled", pricesPath, err)
	} else {
		log.Printf("Loaded %d prices from %s", prices.Len(), pricesPath)
		deps.Simulator = sim.New(cat, prices)
	}

	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
