package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/tokenledger/internal/config"
	"github.com/theirongolddev/tokenledger/internal/model"
)

type fakePrimary struct {
	usage    map[string]*model.UsageEntry
	costs    map[string]*model.CostEntry
	usageErr error
	calls    []int64
}

func (f *fakePrimary) FetchUsage(_ context.Context, start, _ int64) (map[string]*model.UsageEntry, error) {
	f.calls = append(f.calls, start)
	if f.usageErr != nil {
		return nil, f.usageErr
	}
	out := make(map[string]*model.UsageEntry, len(f.usage))
	for k, v := range f.usage {
		out[k] = v.Clone()
	}
	return out, nil
}

func (f *fakePrimary) FetchCosts(context.Context, int64, int64) (map[string]*model.CostEntry, error) {
	out := make(map[string]*model.CostEntry, len(f.costs))
	for k, v := range f.costs {
		out[k] = v.Clone()
	}
	return out, nil
}

type fakeSecondary map[string]*model.UsageEntry

func (f fakeSecondary) FetchUsage(context.Context, int64, int64) map[string]*model.UsageEntry {
	return f
}

func newCollector(p *fakePrimary) *Collector {
	return &Collector{
		Primary:   p,
		Secondary: fakeSecondary{"kimi-k2": usageOf("kimi-k2", 900, 100, 1)},
		Pricing:   config.PricingTable{"kimi-k2": {Input: model.Rate(0.000001), Output: model.Rate(0.000002)}},
	}
}

func TestCollectDayBuildsRecord(t *testing.T) {
	p := &fakePrimary{
		usage: map[string]*model.UsageEntry{"gpt-4o": usageOf("gpt-4o", 1000, 200, 4)},
		costs: map[string]*model.CostEntry{"gpt-4o": {Input: 0.01, Output: 0.02, Total: 0.03}},
	}
	start := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	rec, err := newCollector(p).CollectDay(context.Background(), "2026-10-15", start, start.AddDate(0, 0, 1), ReplaceOnConflict)
	if err != nil {
		t.Fatalf("CollectDay: %v", err)
	}

	if rec.Summary.Tokens != 2200 || rec.Summary.Requests != 5 {
		t.Errorf("summary = %+v, want 2200 tokens / 5 requests", rec.Summary)
	}
	if rec.Summary.AvgTokensPerRequest != 440 {
		t.Errorf("avg = %f, want 440", rec.Summary.AvgTokensPerRequest)
	}
	if r := rec.Costs["gpt-4o"].PerToken.Input; r == nil || math.Abs(*r-0.00001) > 1e-15 {
		t.Errorf("gpt-4o input rate = %v, want 0.00001", r)
	}
	if c := rec.Costs["kimi-k2"]; c == nil || math.Abs(c.Total-0.0011) > 1e-12 {
		t.Errorf("kimi-k2 cost = %+v", c)
	}
	if len(rec.Providers) != 2 || len(rec.Providers[ProviderMoonshot].Usage) != 1 {
		t.Errorf("providers = %+v", rec.Providers)
	}
	if !rec.End.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("End = %v", rec.End)
	}
}

func TestCollectDaySumsUsageButReplacesCosts(t *testing.T) {
	p := &fakePrimary{
		usage: map[string]*model.UsageEntry{"kimi-k2": usageOf("kimi-k2", 100, 50, 2)},
		costs: map[string]*model.CostEntry{"kimi-k2": {Input: 5, Output: 5, Total: 10}},
	}
	start := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	rec, err := newCollector(p).CollectDay(context.Background(), "2026-10-15", start, start.AddDate(0, 0, 1), SumOnConflict)
	if err != nil {
		t.Fatalf("CollectDay: %v", err)
	}

	if u := rec.Usage["kimi-k2"]; u == nil || u.InputTokens != 1000 || u.OutputTokens != 150 || u.Requests != 3 {
		t.Errorf("kimi-k2 usage = %+v, want summed 1000/150/3", u)
	}
	if c := rec.Costs["kimi-k2"]; c == nil || math.Abs(c.Total-0.0011) > 1e-12 {
		t.Errorf("kimi-k2 cost = %+v, want the pricing-based 0.0011 only", c)
	}
}

func TestCollectDayPrimaryError(t *testing.T) {
	p := &fakePrimary{usageErr: errors.New("boom")}
	start := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	_, err := newCollector(p).CollectDay(context.Background(), "2026-10-15", start, start.AddDate(0, 0, 1), ReplaceOnConflict)
	if err == nil {
		t.Fatal("expected error")
	}
}

type fakeDayCollector struct {
	fail  map[string]bool
	calls []string
}

func (f *fakeDayCollector) CollectLabel(_ context.Context, t time.Time, strategy MergeStrategy) (string, model.DayRecord, error) {
	label := model.Label(t)
	f.calls = append(f.calls, label)
	if strategy != SumOnConflict {
		return label, model.DayRecord{}, errors.New("backfill must sum")
	}
	if f.fail[label] {
		return label, model.DayRecord{}, errors.New("api down")
	}
	return label, model.DayRecord{Summary: model.Summary{Requests: 1}}, nil
}

func TestBackfillSkipsExistingAndContinuesPastFailures(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	series := model.Series{
		"2026-10-12": {Summary: model.Summary{Requests: 99}},
		"2026-10-16": {Summary: model.Summary{Requests: 42}},
	}
	dc := &fakeDayCollector{fail: map[string]bool{"2026-10-14": true}}

	res := Backfill(context.Background(), series, now, dc)

	wantCalls := []string{"2026-10-10", "2026-10-11", "2026-10-13", "2026-10-14", "2026-10-15"}
	if len(dc.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", dc.calls, wantCalls)
	}
	for i := range wantCalls {
		if dc.calls[i] != wantCalls[i] {
			t.Fatalf("calls = %v, want %v", dc.calls, wantCalls)
		}
	}
	if len(res.Skipped) != 2 || len(res.Failed) != 1 || len(res.Fetched) != 4 {
		t.Errorf("result = %+v", res)
	}
	if series["2026-10-16"].Summary.Requests != 42 {
		t.Error("existing label was overwritten")
	}
	if series.Has("2026-10-14") {
		t.Error("failed label was stored")
	}
	if len(series) != 6 {
		t.Errorf("series has %d labels, want 6", len(series))
	}
}
