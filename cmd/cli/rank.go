package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"minion-profit/internal/analysis"
	"minion-profit/internal/model"
	"minion-profit/internal/sink"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func rankCmd() *cobra.Command {
	var (
		resultsPath string
		q           analysis.Query
		sortBy      string
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank stored results by profit or APR",
		Example: usageExample(
			"cli rank --results results/minion_simulation_result.db --seconds 86400 --limit 10",
			"cli rank --sort apr_instant_sell --max-cost 5000000",
		),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := analysis.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			q.SortBy = key
			results, err := sink.Read(cmd.Context(), resultsPath, "")
			if err != nil {
				return err
			}
			page, total, err := analysis.Rank(results, q)
			if err != nil {
				return err
			}

			titleColor.Printf("\n%d of %d matching setups, by %s\n\n", len(page), total, key)
			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"#", "Minion", "Fuel", "Items", "Storage", "Hopper", "Window", "Profit/day", "APR %", "Cost"}),
			)
			for _, r := range page {
				_ = table.Append([]string{
					strconv.Itoa(r.Rank),
					fmt.Sprintf("%s T%d", r.Minion, r.Level),
					orDash(r.Fuel),
					items(r.Result),
					orDash(r.Storage),
					orDash(r.Hopper),
					window(r.Seconds),
					coins(profitFor(key, r.Result)),
					r.APRInstantSell.String(),
					coins(r.CostTotal),
				})
			}
			return table.Render()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&resultsPath, "results", "r", "results/minion_simulation_result.db", "Results file (jsonl or sqlite)")
	f.StringVarP(&q.Minion, "minion", "m", "", "Minion name substring")
	f.IntSliceVarP(&q.Horizons, "seconds", "s", nil, "Window lengths to keep")
	f.Int64Var(&q.MaxSetupCost, "max-cost", 0, "Maximum setup cost (0 = no limit)")
	f.StringVar(&sortBy, "sort", "", "Sort key: "+sortKeyList())
	f.BoolVar(&q.Ascending, "asc", false, "Ascending order")
	f.IntVarP(&q.Limit, "limit", "n", 20, "Rows per page")
	f.IntVar(&q.Offset, "offset", 0, "Rows to skip")
	return cmd
}

func summaryCmd() *cobra.Command {
	var (
		resultsPath string
		minion      string
		sortBy      string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize stored results per minion and window",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := analysis.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			results, err := sink.Read(cmd.Context(), resultsPath, "")
			if err != nil {
				return err
			}
			summaries := analysis.Summarize(analysis.Filter(results, analysis.Query{Minion: minion}), key)

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Minion", "Window", "Setups", "Min", "Median", "Mean", "Max", "Best setup"}),
			)
			for _, s := range summaries {
				best := "-"
				if s.Best != nil {
					best = fmt.Sprintf("T%d %s / %s", s.Best.Level, orDash(s.Best.Fuel), items(*s.Best))
				}
				_ = table.Append([]string{
					s.Minion,
					window(s.Seconds),
					fmt.Sprintf("%d/%d", s.Defined, s.Count),
					coins(s.Min),
					coins(int64(s.Median)),
					coins(int64(s.Mean)),
					coins(s.Max),
					best,
				})
			}
			return table.Render()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&resultsPath, "results", "r", "results/minion_simulation_result.db", "Results file (jsonl or sqlite)")
	f.StringVarP(&minion, "minion", "m", "", "Minion name substring")
	f.StringVar(&sortBy, "sort", "", "Sort key: "+sortKeyList())
	return cmd
}

func profitFor(key analysis.SortKey, r model.Result) int64 {
	if c, ok := model.ParseChannel(string(key)); ok {
		return r.Profit(c)
	}
	return r.ProfitInstantSell
}

func sortKeyList() string {
	keys := analysis.SortKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func items(r model.Result) string {
	var parts []string
	for _, it := range []string{r.Item1, r.Item2} {
		if it != "" {
			parts = append(parts, it)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " + ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func window(seconds int) string {
	switch {
	case seconds%86400 == 0:
		return fmt.Sprintf("%dd", seconds/86400)
	case seconds%3600 == 0:
		return fmt.Sprintf("%dh", seconds/3600)
	}
	return fmt.Sprintf("%ds", seconds)
}

// coins groups thousands: 1234567 -> 1,234,567.
func coins(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
