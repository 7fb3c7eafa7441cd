package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"minion-profit/internal/catalog"
	"minion-profit/internal/data"
	"minion-profit/internal/model"
	"minion-profit/internal/sim"
)

func main() {
	var (
		outputPath  = flag.String("output", "", "Output file path (default: $PRICES_FILE or ./data/sb_items.json)")
		seedFile    = flag.String("seed", "", "Existing snapshot whose auction averages are carried over")
		onlyBazaar  = flag.Bool("only-bazaar", false, "Keep only items traded on the bazaar")
		auctions    = flag.Bool("auctions", false, "Fetch auction averages for catalog items without a bazaar price")
		catalogFile = flag.String("catalog", "", "Catalog YAML used to pick the items to price (default: built-in)")
		apiURL      = flag.String("api", "", "Hypixel API base URL")
	)
	flag.Parse()

	if *outputPath == "" {
		*outputPath = data.DefaultSnapshotPath()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := data.NewHypixelClient(*apiURL)
	fmt.Println("Fetching items and bazaar data...")
	records, err := client.Items(ctx, *onlyBazaar)
	if err != nil {
		log.Fatalf("Failed to fetch items: %v", err)
	}
	fmt.Printf("Fetched %d items\n", len(records))

	// Reuse auction averages from the seed snapshot, or the current file if none given.
	seedPath := *seedFile
	if seedPath == "" {
		seedPath = *outputPath
	}
	if seed, err := data.LoadSnapshot(seedPath); err == nil {
		carried := carryAuctionAverages(records, seed.Items)
		fmt.Printf("Carried over %d auction averages from %s\n", carried, seedPath)
	}

	var source data.AuctionSource
	if *auctions {
		source = data.NewAuctionClient("")
	}
	ref := data.NewReference(records, source)

	if *auctions {
		cat, err := catalog.Load(*catalogFile)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		names := sim.PricedItems(cat)
		fmt.Printf("Pricing %d catalog items...\n", len(names))
		missing := 0
		for _, name := range names {
			if _, err := ref.LowestPrice(ctx, name); err != nil {
				fmt.Printf("  ⚠️  Warning: %v\n", err)
				missing++
			}
		}
		fmt.Printf("Priced %d/%d catalog items\n", len(names)-missing, len(names))
	}

	snap := &data.Snapshot{
		UpdatedAt: time.Now().Format(time.RFC3339),
		Items:     ref.Records(),
	}
	if err := data.SaveSnapshot(snap, *outputPath); err != nil {
		log.Fatalf("Failed to save prices: %v", err)
	}
	fmt.Printf("Saved %d items to %s\n", len(snap.Items), *outputPath)
}

// carryAuctionAverages copies stored auction averages onto items that have no bazaar price.
func carryAuctionAverages(records, seed []model.PriceRecord) int {
	byID := make(map[string]*float64, len(seed))
	for _, s := range seed {
		if s.AuctionAverage != nil {
			byID[s.ID] = s.AuctionAverage
		}
	}
	n := 0
	for i := range records {
		r := &records[i]
		if r.HasBazaar() || r.AuctionAverage != nil {
			continue
		}
		if avg, ok := byID[r.ID]; ok {
			r.AuctionAverage = avg
			n++
		}
	}
	return n
}
