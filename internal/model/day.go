// Package model defines domain types for the daily usage series.
package model

import (
	"sort"
	"time"
)

// LabelLayout is the day-bucket key format (UTC calendar date).
const LabelLayout = "2006-01-02"

// Label returns the day label for t in UTC.
func Label(t time.Time) string {
	return t.UTC().Format(LabelLayout)
}

// DayStart truncates t to UTC midnight.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayRecord is one aggregated day of usage and cost.
// Fields are ordered by JSON name so encoded output has sorted keys.
type DayRecord struct {
	Costs     map[string]*CostEntry   `json:"costs"`
	End       time.Time               `json:"end"`
	Providers map[string]ProviderData `json:"providers,omitempty"`
	Start     time.Time               `json:"start"`
	Summary   Summary                 `json:"summary"`
	Usage     map[string]*UsageEntry  `json:"usage"`
}

// ProviderData is the per-source breakdown stored alongside the merged maps.
type ProviderData struct {
	Costs map[string]*CostEntry  `json:"costs"`
	Usage map[string]*UsageEntry `json:"usage"`
}

// Summary holds derived totals for a day.
type Summary struct {
	AvgTokensPerRequest float64 `json:"avg_tokens_per_request"`
	Input               int64   `json:"input"`
	Output              int64   `json:"output"`
	Requests            int64   `json:"requests"`
	Tokens              int64   `json:"tokens"`
}

// Series is the whole store document keyed by day label.
type Series map[string]DayRecord

// Has reports whether a record exists for label.
func (s Series) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Labels returns the stored day labels in ascending order.
func (s Series) Labels() []string {
	labels := make([]string, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
