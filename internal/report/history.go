package report

import (
	"time"

	"github.com/theirongolddev/tokenledger/internal/model"
)

// HistoryRow is one displayed day. Missing days are zero rows with Present false.
type HistoryRow struct {
	Label    string
	Date     time.Time
	Present  bool
	Requests int64
	Tokens   int64
	Spend    float64
}

// History returns the last days labels ending at now, oldest first.
// Gaps are filled for display only; series is not modified.
func History(series model.Series, now time.Time, days int) []HistoryRow {
	if days < 1 {
		days = 1
	}
	today := model.DayStart(now)
	rows := make([]HistoryRow, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		label := model.Label(d)
		row := HistoryRow{Label: label, Date: d}
		if rec, ok := series[label]; ok {
			row.Present = true
			row.Requests = rec.Summary.Requests
			row.Tokens = rec.Summary.Tokens
			row.Spend = DaySpend(rec)
		}
		rows = append(rows, row)
	}
	return rows
}

// DaySpend sums every model's total cost.
func DaySpend(day model.DayRecord) float64 {
	var total float64
	for _, c := range day.Costs {
		total += model.TotalOf(c)
	}
	return total
}
