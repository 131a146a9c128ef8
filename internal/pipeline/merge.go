// Package pipeline reconciles provider data into daily records.
package pipeline

import (
	"github.com/theirongolddev/tokenledger/internal/model"
)

// MergeStrategy decides what happens when two providers report the same model.
type MergeStrategy int

const (
	// ReplaceOnConflict keeps the later provider's entry.
	ReplaceOnConflict MergeStrategy = iota
	// SumOnConflict adds the counters of both entries.
	SumOnConflict
)

func (s MergeStrategy) String() string {
	switch s {
	case ReplaceOnConflict:
		return "replace"
	case SumOnConflict:
		return "sum"
	default:
		return "unknown"
	}
}

// MergeUsage combines usage maps in order. Inputs are not modified.
func MergeUsage(strategy MergeStrategy, sources ...map[string]*model.UsageEntry) map[string]*model.UsageEntry {
	out := make(map[string]*model.UsageEntry)
	for _, src := range sources {
		for name, entry := range src {
			if entry == nil {
				continue
			}
			existing, ok := out[name]
			if ok && strategy == SumOnConflict {
				existing.Add(entry)
				continue
			}
			out[name] = entry.Clone()
		}
	}
	return out
}

// MergeCosts combines cost maps in order. On a summed collision the
// destination keeps its per-token rates. Inputs are not modified.
func MergeCosts(strategy MergeStrategy, sources ...map[string]*model.CostEntry) map[string]*model.CostEntry {
	out := make(map[string]*model.CostEntry)
	for _, src := range sources {
		for name, entry := range src {
			if entry == nil {
				continue
			}
			existing, ok := out[name]
			if ok && strategy == SumOnConflict {
				existing.Input += entry.Input
				existing.Output += entry.Output
				existing.Cached += entry.Cached
				existing.Other += entry.Other
				existing.Total += entry.Total
				continue
			}
			out[name] = entry.Clone()
		}
	}
	return out
}

// Summarize totals a usage map.
func Summarize(usage map[string]*model.UsageEntry) model.Summary {
	var s model.Summary
	for _, u := range usage {
		if u == nil {
			continue
		}
		s.Input += u.InputTokens
		s.Output += u.OutputTokens
		s.Requests += u.Requests
	}
	s.Tokens = s.Input + s.Output
	if s.Requests > 0 {
		s.AvgTokensPerRequest = float64(s.Tokens) / float64(s.Requests)
	}
	return s
}
