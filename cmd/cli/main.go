package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgYellow)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Minion profitability simulator",
		Long: `Simulates every legal minion setup over a set of time windows,
values the output at market prices and ranks the setups by profit.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(simulateCmd(), runCmd(), rankCmd(), summaryCmd(), pricesCmd(), schemaCmd())

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func usageExample(lines ...string) string {
	out := ""
	for _, l := range lines {
		out += fmt.Sprintf("  %s\n", l)
	}
	return out
}
