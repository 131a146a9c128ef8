// Package moonshot derives Kimi model usage from session records.
package moonshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/tokenledger/internal/logger"
	"github.com/theirongolddev/tokenledger/internal/model"
)

// Fetcher builds per-model usage from a session listing.
type Fetcher struct {
	Lister SessionLister
	Split  TokenSplit
}

// NewFetcher returns a fetcher with the default token split.
func NewFetcher(l SessionLister) *Fetcher {
	return &Fetcher{Lister: l, Split: DefaultSplit}
}

// FetchUsage returns usage for sessions updated within [start, end].
// Sessions without a timestamp are always counted. Any failure is logged
// and yields an empty map.
func (f *Fetcher) FetchUsage(ctx context.Context, start, end int64) map[string]*model.UsageEntry {
	usage, err := f.fetch(ctx, start, end)
	if err != nil {
		logger.Warn("could not fetch Moonshot usage", "error", err)
		return map[string]*model.UsageEntry{}
	}
	return usage
}

func (f *Fetcher) fetch(ctx context.Context, start, end int64) (map[string]*model.UsageEntry, error) {
	raw, err := f.Lister.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	var list sessionList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parsing session list: %w", err)
	}

	usage := make(map[string]*model.UsageEntry)
	for _, s := range list.Sessions {
		if !IsModel(s.Model) {
			continue
		}
		if !inRange(s.UpdatedAt, start, end) {
			continue
		}

		name := Normalize(s.Model)
		entry, ok := usage[name]
		if !ok {
			entry = model.NewUsageEntry(name)
			usage[name] = entry
		}
		in, out := f.Split.Apply(s.TotalTokens)
		entry.InputTokens += in
		entry.OutputTokens += out
		entry.Requests++
	}
	return usage, nil
}

func inRange(updatedAt float64, start, end int64) bool {
	if updatedAt == 0 {
		return true
	}
	if updatedAt > 1e12 {
		updatedAt /= 1000
	}
	return float64(start) <= updatedAt && updatedAt <= float64(end)
}
