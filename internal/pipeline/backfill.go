package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/tokenledger/internal/logger"
	"github.com/theirongolddev/tokenledger/internal/model"
)

// BackfillDays is how many days, ending today, backfill considers.
const BackfillDays = 7

// DayCollector collects the UTC day containing a time.
type DayCollector interface {
	CollectLabel(ctx context.Context, t time.Time, strategy MergeStrategy) (string, model.DayRecord, error)
}

// BackfillResult lists what happened to each considered label.
type BackfillResult struct {
	Fetched []string
	Skipped []string
	Failed  []string
}

// Backfill fills missing labels for the last BackfillDays days, oldest
// first, summing usage of overlapping models. Existing labels are never refetched.
// Per-day failures are logged and skipped; series is updated in place.
func Backfill(ctx context.Context, series model.Series, now time.Time, dc DayCollector) BackfillResult {
	var res BackfillResult
	for daysAgo := BackfillDays - 1; daysAgo >= 0; daysAgo-- {
		day := now.AddDate(0, 0, -daysAgo)
		label := model.Label(day)

		if series.Has(label) {
			logger.Info(fmt.Sprintf("Data already exists for %s, skipping...", label))
			res.Skipped = append(res.Skipped, label)
			continue
		}

		if err := ctx.Err(); err != nil {
			logger.Warn("backfill interrupted", "label", label, "error", err)
			res.Failed = append(res.Failed, label)
			continue
		}

		logger.Info(fmt.Sprintf("Fetching data for %s...", label))
		_, rec, err := dc.CollectLabel(ctx, day, SumOnConflict)
		if err != nil {
			logger.Error(fmt.Sprintf("Error fetching %s", label), "error", err)
			res.Failed = append(res.Failed, label)
			continue
		}

		series[label] = rec
		res.Fetched = append(res.Fetched, label)

		var spend float64
		for _, c := range rec.Costs {
			spend += model.TotalOf(c)
		}
		logger.Info(fmt.Sprintf("  - %d models, %d requests, $%.2f", len(rec.Usage), rec.Summary.Requests, spend))
	}
	return res
}
