package main

import (
	"fmt"
	"os"
	"path/filepath"

	"minion-profit/internal/config"
	"minion-profit/internal/data"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func pricesCmd() *cobra.Command {
	var pricesPath string
	cmd := &cobra.Command{
		Use:   "prices ITEM...",
		Short: "Show the stored market data of items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prices, err := data.LoadReference(pricesPath, nil)
			if err != nil {
				return err
			}
			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Item", "ID", "NPC", "Instant sell", "Sell order", "Lowest"}),
			)
			for _, name := range args {
				rec, err := prices.Lookup(cmd.Context(), name)
				if err != nil {
					infoColor.Printf("⚠️  %v\n", err)
					continue
				}
				lowest := "-"
				if v, err := rec.LowestPrice(); err == nil {
					lowest = fmt.Sprintf("%.1f", v)
				}
				_ = table.Append([]string{
					rec.Name,
					rec.ID,
					fmt.Sprintf("%.1f", rec.NPC()),
					fmt.Sprintf("%.1f", rec.InstantSell()),
					fmt.Sprintf("%.1f", rec.SellOrder()),
					lowest,
				})
			}
			return table.Render()
		},
	}
	cmd.Flags().StringVarP(&pricesPath, "prices", "p", data.DefaultSnapshotPath(), "Price snapshot")
	return cmd
}

func schemaCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the run config",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := config.SchemaJSON()
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = os.Stdout.Write(raw)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("create schema directory: %w", err)
			}
			if err := os.WriteFile(outPath, raw, 0o644); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			successColor.Printf("✓ Wrote schema to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}
