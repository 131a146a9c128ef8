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
	"github.com/theirongolddev/tokenledger/internal/logger"
	"github.com/theirongolddev/tokenledger/internal/notify"
	"github.com/theirongolddev/tokenledger/internal/store"
)

var (
	flagNotifyChannel string
	flagNotifyTarget  string
	flagNotifyNoFetch bool
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Run the report and send the daily summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagNotifyChannel != "" {
			cfg.Notify.Channel = flagNotifyChannel
		}
		if flagNotifyTarget != "" {
			cfg.Notify.Target = flagNotifyTarget
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return runNotify(ctx, cfg, notify.New(cfg.Notify), time.Now().UTC())
	},
}

func init() {
	notifyCmd.Flags().StringVar(&flagNotifyChannel, "channel", "", "Delivery channel (overrides NOTIFY_CHANNEL; \"desktop\" for a local notification)")
	notifyCmd.Flags().StringVar(&flagNotifyTarget, "target", "", "Delivery target (overrides TELEGRAM_TARGET)")
	notifyCmd.Flags().BoolVar(&flagNotifyNoFetch, "no-fetch", false, "Send from the stored series without fetching")
	rootCmd.AddCommand(notifyCmd)
}

// runNotify refreshes the store, then sends the summary. A failed refresh
// is reported through the notifier and still returns the error.
func runNotify(ctx context.Context, cfg config.Config, n notify.Notifier, now time.Time) error {
	if !flagNotifyNoFetch {
		if err := runReport(ctx, cfg, io.Discard, now); err != nil {
			if sendErr := n.Send(ctx, notify.FailureMessage(err)); sendErr != nil {
				logger.Error("sending failure notice", "error", sendErr)
			}
			return err
		}
	}

	series, err := store.Load(cfg.DataPath())
	if err != nil {
		return err
	}

	if err := n.Send(ctx, notify.BuildMessage(series, now)); err != nil {
		return fmt.Errorf("notify via %s: %w", n.Name(), err)
	}
	logger.Info("summary sent", "channel", n.Name())
	return nil
}
