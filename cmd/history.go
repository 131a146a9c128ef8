package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tokenledger/internal/cli"
	"github.com/theirongolddev/tokenledger/internal/report"
	"github.com/theirongolddev/tokenledger/internal/store"
)

var (
	flagHistoryDays  int
	flagHistoryChart bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Daily spend table and chart from the stored series",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 14, "Days to show, ending today")
	historyCmd.Flags().BoolVar(&flagHistoryChart, "chart", true, "Plot daily spend")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	series, err := store.Load(cfg.DataPath())
	if err != nil {
		return err
	}
	if len(series) == 0 {
		fmt.Println("\n  No stored days. Run `tokenledger report` or `tokenledger backfill` first.")
		return nil
	}

	rows := report.History(series, time.Now().UTC(), flagHistoryDays)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPEND  Last %dd", len(rows))))
	fmt.Println()

	tableRows := make([][]string, 0, len(rows))
	spend := make([]float64, 0, len(rows))
	var prev, total float64
	for i, r := range rows {
		delta := ""
		if i > 0 {
			delta = cli.FormatDelta(r.Spend, prev)
		}
		tokens, requests, cost := "-", "-", "-"
		if r.Present {
			tokens = cli.FormatTokens(r.Tokens)
			requests = cli.FormatNumber(r.Requests)
			cost = cli.FormatCost(r.Spend)
		}
		tableRows = append(tableRows, []string{
			r.Label,
			cli.FormatDayOfWeek(int(r.Date.Weekday())),
			requests,
			tokens,
			cost,
			delta,
		})
		spend = append(spend, r.Spend)
		prev = r.Spend
		total += r.Spend
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Requests", "Tokens", "Spend", "vs prev"},
		Rows:    tableRows,
	}))
	fmt.Printf("  Total: %s\n", cli.FormatCost(total))
	fmt.Printf("  Trend: %s\n", cli.RenderSparkline(spend))

	if flagHistoryChart && len(spend) > 1 {
		fmt.Println()
		fmt.Println(cli.RenderLineChart(spend, 60, 10, "daily spend (USD)"))
	}
	fmt.Println()
	return nil
}
