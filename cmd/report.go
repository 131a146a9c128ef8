package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tokenledger/internal/config"
	"github.com/theirongolddev/tokenledger/internal/model"
	"github.com/theirongolddev/tokenledger/internal/pipeline"
	"github.com/theirongolddev/tokenledger/internal/report"
	"github.com/theirongolddev/tokenledger/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch yesterday and today, store them and print the comparison",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return runReport(ctx, cfg, os.Stdout, time.Now().UTC())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(ctx context.Context, cfg config.Config, w io.Writer, now time.Time) error {
	series, err := refreshDays(ctx, cfg, now)
	if err != nil {
		return err
	}
	yesterday, today := report.Labels(now)
	return report.Write(w, series, yesterday, today, now)
}

// refreshDays fetches yesterday and today, replaces both records and saves
// the store. Any primary fetch error aborts without writing.
func refreshDays(ctx context.Context, cfg config.Config, now time.Time) (model.Series, error) {
	collector, err := newCollector(cfg)
	if err != nil {
		return nil, err
	}

	series, err := store.Load(cfg.DataPath())
	if err != nil {
		return nil, err
	}

	today := model.DayStart(now)
	for _, day := range []time.Time{today.AddDate(0, 0, -1), today} {
		label, rec, err := collector.CollectLabel(ctx, day, pipeline.ReplaceOnConflict)
		if err != nil {
			return nil, err
		}
		series[label] = rec
	}

	if err := store.Save(cfg.DataPath(), series); err != nil {
		return nil, fmt.Errorf("saving store: %w", err)
	}
	return series, nil
}
