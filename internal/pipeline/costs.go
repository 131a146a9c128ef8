package pipeline

import (
	"github.com/theirongolddev/tokenledger/internal/config"
	"github.com/theirongolddev/tokenledger/internal/model"
)

// SecondaryCosts prices usage with the configured table. Only models present
// in both the table and usage get an entry; per_token records the prices used.
func SecondaryCosts(usage map[string]*model.UsageEntry, pricing config.PricingTable) map[string]*model.CostEntry {
	costs := make(map[string]*model.CostEntry)
	for name, p := range pricing {
		u, ok := usage[name]
		if !ok || u == nil {
			continue
		}
		c := &model.CostEntry{
			Input:  float64(u.InputTokens) * config.Price(p.Input),
			Output: float64(u.OutputTokens) * config.Price(p.Output),
			Cached: float64(u.CachedTokens) * config.Price(p.Cached),
			PerToken: model.Rates{
				Input:  p.Input,
				Output: p.Output,
				Cached: p.Cached,
			},
		}
		c.ComputeTotal()
		costs[name] = c.Clone()
	}
	return costs
}

// AttachRates sets per-token rates on each cost entry from the matching usage.
// A rate is nil when the model has no tokens of that kind.
func AttachRates(costs map[string]*model.CostEntry, usage map[string]*model.UsageEntry) {
	for name, c := range costs {
		u := usage[name]
		if u == nil {
			u = &model.UsageEntry{}
		}
		c.PerToken = model.Rates{
			Input:  rate(c.Input, u.InputTokens),
			Output: rate(c.Output, u.OutputTokens),
			Cached: rate(c.Cached, u.CachedTokens),
		}
	}
}

func rate(cost float64, tokens int64) *float64 {
	if tokens <= 0 {
		return nil
	}
	return model.Rate(cost / float64(tokens))
}
