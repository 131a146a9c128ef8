package report

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/theirongolddev/tokenledger/internal/cli"
	"github.com/theirongolddev/tokenledger/internal/model"
)

// Side is one day's view of a model.
type Side struct {
	Tokens int64
	Cost   float64
	Rates  model.Rates
}

// ModelComparison is the day-over-day delta for one model.
type ModelComparison struct {
	Model     string
	Provider  string
	Yesterday Side
	Today     Side
	TokenDiff int64
	CostDiff  float64
}

// Compare pairs every model seen on either day, sorted by name.
// A model absent on one side counts as zero usage with unavailable rates.
func Compare(yesterday, today model.DayRecord) []ModelComparison {
	names := lo.Uniq(append(lo.Keys(yesterday.Usage), lo.Keys(today.Usage)...))
	sort.Strings(names)

	out := make([]ModelComparison, 0, len(names))
	for _, name := range names {
		y := sideOf(yesterday, name)
		t := sideOf(today, name)
		out = append(out, ModelComparison{
			Model:     name,
			Provider:  ProviderOf(name),
			Yesterday: y,
			Today:     t,
			TokenDiff: t.Tokens - y.Tokens,
			CostDiff:  t.Cost - y.Cost,
		})
	}
	return out
}

func sideOf(day model.DayRecord, name string) Side {
	s := Side{Tokens: day.Usage[name].Tokens()}
	if c := day.Costs[name]; c != nil {
		s.Cost = c.Total
		s.Rates = c.PerToken
	}
	return s
}

// FormatRate renders a per-token rate, or "n/a" when unavailable.
func FormatRate(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("$%.6f", *r)
}

// FormatComparison renders one comparison line.
func FormatComparison(c ModelComparison) string {
	return fmt.Sprintf(
		"%s %s: yesterday %s tokens / $%.5f (in %s, out %s) | today %s tokens / $%.5f (in %s, out %s) | delta tokens %s | delta cost $%+.5f",
		c.Provider, c.Model,
		cli.FormatNumber(c.Yesterday.Tokens), c.Yesterday.Cost,
		FormatRate(c.Yesterday.Rates.Input), FormatRate(c.Yesterday.Rates.Output),
		cli.FormatNumber(c.Today.Tokens), c.Today.Cost,
		FormatRate(c.Today.Rates.Input), FormatRate(c.Today.Rates.Output),
		cli.FormatSigned(c.TokenDiff), c.CostDiff,
	)
}
