package report

import (
	"fmt"
	"io"
	"time"

	"github.com/theirongolddev/tokenledger/internal/model"
)

// Write prints the full daily report for the yesterday/today pair: both
// summaries, the per-model comparison, then each day's lines.
func Write(w io.Writer, series model.Series, yesterday, today string, now time.Time) error {
	y, okY := series[yesterday]
	t, okT := series[today]
	if !okY || !okT {
		return fmt.Errorf("report needs both %s and %s in the store", yesterday, today)
	}

	lines := []string{
		"",
		FormatSummary(yesterday, y.Summary),
		FormatSummary(today, t.Summary),
		"",
		"Daily comparison (tokens + costs) by model",
	}
	for _, c := range Compare(y, t) {
		lines = append(lines, FormatComparison(c))
	}
	lines = append(lines, "")
	lines = append(lines, FormatDay(yesterday, y, DayOptions{})...)
	lines = append(lines, FormatDay(today, t, DayOptions{Now: &now})...)

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// Labels returns the yesterday and today labels relative to now (UTC).
func Labels(now time.Time) (yesterday, today string) {
	start := model.DayStart(now)
	return model.Label(start.AddDate(0, 0, -1)), model.Label(start)
}
