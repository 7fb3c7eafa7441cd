package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"

	"minion-profit/internal/catalog"
	"minion-profit/internal/config"
	"minion-profit/internal/data"
	"minion-profit/internal/enumerate"
	"minion-profit/internal/model"
	"minion-profit/internal/sim"
	"minion-profit/internal/sink"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func simulateCmd() *cobra.Command {
	var (
		cfgPath       string
		pricesPath    string
		outPath       string
		format        string
		workers       int
		omitBulk      bool
		fetchAuctions bool
		minions       []string
		dryRun        bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate every combination of the configured sweep and write the results",
		Example: usageExample(
			"cli simulate --prices data/sb_items.json --out results/sheep.db",
			"cli simulate --config examples/run.yaml --omit-bulk",
		),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				cfg = loaded
			}
			flags := cmd.Flags()
			if flags.Changed("prices") || cfg.PricesFile == "" {
				cfg.PricesFile = pricesPath
			}
			if flags.Changed("out") || cfg.Output.Path == "" {
				cfg.Output.Path = outPath
			}
			if flags.Changed("format") {
				cfg.Output.Format = format
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("minion") {
				cfg.Dimensions.Minions = minions
			}
			cfg.Output.OmitBulk = cfg.Output.OmitBulk || omitBulk
			cfg.FetchAuctions = cfg.FetchAuctions || fetchAuctions
			if err := cfg.Validate(); err != nil {
				return err
			}

			cat, err := cfg.Catalog()
			if err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			for _, p := range catalog.Problems(cat) {
				infoColor.Printf("⚠️  catalog: %s\n", p)
			}

			tasks := enumerate.Tasks(cat, cfg.Dimensions)
			total := enumerate.Count(cat, cfg.Dimensions)
			titleColor.Printf("\n%d combinations to simulate\n\n", total)
			if dryRun {
				return nil
			}

			var auctions data.AuctionSource
			if cfg.FetchAuctions {
				auctions = data.NewAuctionClient("")
			}
			prices, err := data.LoadReference(cfg.PricesFile, auctions)
			if err != nil {
				return fmt.Errorf("prices: %w (run update-prices first)", err)
			}
			infoColor.Printf("📦 Loaded %d prices from %s\n", prices.Len(), cfg.PricesFile)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			runner := &enumerate.Runner{Sim: sim.New(cat, prices), Workers: cfg.Workers, MaxFailures: 10}
			results, report, err := runner.Run(ctx, tasks)
			if err != nil {
				return err
			}
			printReport(report)

			f, err := sink.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.Output.Path), 0o755); err != nil {
				return err
			}
			opts := sink.Options{OmitBulk: cfg.Output.OmitBulk, RunID: report.RunID}
			if err := sink.Write(ctx, cfg.Output.Path, f, results, opts); err != nil {
				return fmt.Errorf("write results: %w", err)
			}
			successColor.Printf("\n✓ Wrote %d results to %s\n", len(results), cfg.Output.Path)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "Path to YAML run config")
	f.StringVarP(&pricesPath, "prices", "p", data.DefaultSnapshotPath(), "Price snapshot written by update-prices")
	f.StringVarP(&outPath, "out", "o", "results/minion_simulation_result.db", "Output path")
	f.StringVar(&format, "format", "", "Output format: csv, jsonl or sqlite (default: from extension)")
	f.IntVarP(&workers, "workers", "w", 0, "Worker goroutines (0 = GOMAXPROCS)")
	f.BoolVar(&omitBulk, "omit-bulk", false, "Drop per-item drop and inventory maps from the output")
	f.BoolVar(&fetchAuctions, "fetch-auctions", false, "Fetch auction averages for items without a bazaar price")
	f.StringSliceVarP(&minions, "minion", "m", nil, "Restrict the sweep to these minions")
	f.BoolVar(&dryRun, "dry-run", false, "Only count the combinations")
	return cmd
}

func printReport(r enumerate.Report) {
	titleColor.Printf("\nRun %s\n", r.RunID)
	fmt.Printf("  attempted %d, succeeded %d, failed %d in %v\n", r.Attempted, r.Succeeded, r.Failed(), r.Duration)
	if r.Failed() == 0 {
		return
	}
	reasons := make([]string, 0, len(r.FailedByReason))
	for reason := range r.FailedByReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithHeader([]string{"Reason", "Failed"}))
	for _, reason := range reasons {
		_ = table.Append([]string{reason, strconv.Itoa(r.FailedByReason[reason])})
	}
	_ = table.Render()
	for _, f := range r.Failures {
		infoColor.Printf("  %s: %s\n", f.Reason, f.Error)
	}
}

func runCmd() *cobra.Command {
	var (
		catalogPath string
		pricesPath  string
		task        model.Task
		bulk        bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one setup and print the result as JSON",
		Example: usageExample(
			`cli run --minion Sheep --level 11 --fuel "Enchanted Lava Bucket" --item1 "Super Compactor 3000" --seconds 86400`,
		),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			prices, err := data.LoadReference(pricesPath, data.NewAuctionClient(""))
			if err != nil {
				return err
			}
			res, err := sim.New(cat, prices).Run(cmd.Context(), task)
			if err != nil {
				return err
			}
			if !bulk {
				*res = res.WithoutBulk()
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	f := cmd.Flags()
	f.StringVar(&catalogPath, "catalog", "", "Catalog YAML (default: built-in)")
	f.StringVarP(&pricesPath, "prices", "p", data.DefaultSnapshotPath(), "Price snapshot")
	f.StringVarP(&task.Minion, "minion", "m", "Sheep", "Minion")
	f.IntVarP(&task.Level, "level", "l", 11, "Minion tier")
	f.StringVar(&task.Fuel, "fuel", "", "Fuel")
	f.StringVar(&task.Item1, "item1", "", "First held item")
	f.StringVar(&task.Item2, "item2", "", "Second held item")
	f.StringVar(&task.Storage, "storage", "", "Storage tier (e.g. Large)")
	f.StringVar(&task.Hopper, "hopper", "", "Hopper")
	f.BoolVar(&task.MithrilInfusion, "mithril-infusion", false, "Apply a mithril infusion")
	f.BoolVar(&task.FreeWill, "free-will", false, "Apply free will")
	f.BoolVar(&task.Postcard, "postcard", false, "Island has a postcard")
	f.IntVar(&task.BeaconBoost, "beacon", 0, "Beacon boost percent (0, 10 or 11)")
	f.IntVar(&task.PetBonus, "pet", 0, "Pet speed bonus percent")
	f.IntVar(&task.CrystalBonus, "crystal", 0, "Crystal speed bonus percent")
	f.IntVarP(&task.Seconds, "seconds", "s", 86400, "Window length in seconds")
	f.BoolVar(&bulk, "bulk", false, "Include per-item maps")
	return cmd
}
