package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tokenledger/internal/pipeline"
	"github.com/theirongolddev/tokenledger/internal/store"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Fill missing days of the past week",
	Long: "Fetch each of the last seven days that has no stored record. " +
		"Existing days are never refetched; a failed day is logged and skipped.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		collector, err := newCollector(cfg)
		if err != nil {
			return err
		}

		series, err := store.Load(cfg.DataPath())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		res := pipeline.Backfill(ctx, series, time.Now().UTC(), collector)

		if err := store.Save(cfg.DataPath(), series); err != nil {
			return fmt.Errorf("saving store: %w", err)
		}

		fmt.Println()
		fmt.Printf("  Data saved. Total days: %d\n", len(series))
		fmt.Printf("  Fetched %d, skipped %d, failed %d\n", len(res.Fetched), len(res.Skipped), len(res.Failed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}
