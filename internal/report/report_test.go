package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/tokenledger/internal/model"
)

func day(start time.Time) model.DayRecord {
	return model.DayRecord{
		Start: start,
		End:   start.AddDate(0, 0, 1),
		Usage: map[string]*model.UsageEntry{
			"gpt-4o":             {Model: "gpt-4o", InputTokens: 800, OutputTokens: 200, Requests: 4},
			"moonshot/kimi-k2.5": {Model: "moonshot/kimi-k2.5", InputTokens: 90, OutputTokens: 10, Requests: 1},
			"kimi-k2":            {Model: "kimi-k2", InputTokens: 0, OutputTokens: 0, Requests: 0},
		},
		Costs: map[string]*model.CostEntry{
			"gpt-4o":  {Input: 0.004, Output: 0.006, Total: 0.01},
			"kimi-k2": {Total: 0.0025},
		},
		Summary: model.Summary{Tokens: 1100, Requests: 5, AvgTokensPerRequest: 220, Input: 890, Output: 210},
	}
}

func TestFormatDay(t *testing.T) {
	start := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	got := FormatDay("2026-10-15", day(start), DayOptions{})
	want := []string{
		"2026-10-15 total spend: $0.01250 (OpenAI: $0.01000, Moonshot: $0.00250)",
		"2026-10-15 cost per query: $0.002500",
		"2026-10-15 avg tokens in per query: 178.0",
		"2026-10-15 avg tokens out per query: 42.0",
		"2026-10-15 OpenAI models: gpt-4o",
		"2026-10-15 Moonshot models: kimi-k2, moonshot/kimi-k2.5",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("FormatDay =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestFormatDayProjection(t *testing.T) {
	start := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	now := start.Add(10 * time.Hour)

	lines := FormatDay("2026-10-16", day(start), DayOptions{Now: &now})
	// 5 requests over 10h = 0.5/h; 0.0025 per query * 0.5 * 24 = 0.03
	want := "2026-10-16 projected spend (24h trend): $0.03000 based on 0.50 requests/hour"
	if lines[1] != want {
		t.Errorf("projection = %q, want %q", lines[1], want)
	}
}

func TestFormatDayProjectionFloor(t *testing.T) {
	start := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	rec := model.DayRecord{Start: start, Summary: model.Summary{Requests: 1}}

	lines := FormatDay("2026-10-16", rec, DayOptions{Now: &start})
	if !strings.HasSuffix(lines[1], "based on 100.00 requests/hour") {
		t.Errorf("projection = %q, want 0.01h floor", lines[1])
	}
}

func TestFormatDayEmpty(t *testing.T) {
	lines := FormatDay("2026-10-16", model.DayRecord{}, DayOptions{})
	if len(lines) != 4 {
		t.Fatalf("lines = %v, want 4 without model lines", lines)
	}
	if lines[1] != "2026-10-16 cost per query: $0.000000" {
		t.Errorf("cost per query = %q", lines[1])
	}
}

func TestCompareAndFormat(t *testing.T) {
	yesterday := model.DayRecord{
		Usage: map[string]*model.UsageEntry{
			"gpt-4o": {InputTokens: 100, OutputTokens: 40},
		},
		Costs: map[string]*model.CostEntry{
			"gpt-4o": {Total: 0.001, PerToken: model.Rates{Input: model.Rate(0.000002), Output: model.Rate(0.00001)}},
		},
	}
	today := model.DayRecord{
		Usage: map[string]*model.UsageEntry{
			"gpt-4o":  {InputTokens: 150, OutputTokens: 50},
			"kimi-k2": {InputTokens: 1800, OutputTokens: 200},
		},
		Costs: map[string]*model.CostEntry{
			"gpt-4o": {Total: 0.002},
		},
	}

	cmp := Compare(yesterday, today)
	if len(cmp) != 2 || cmp[0].Model != "gpt-4o" || cmp[1].Model != "kimi-k2" {
		t.Fatalf("Compare = %+v", cmp)
	}
	if cmp[0].TokenDiff != 60 {
		t.Errorf("TokenDiff = %d, want 60", cmp[0].TokenDiff)
	}

	want := "OpenAI gpt-4o: yesterday 140 tokens / $0.00100 (in $0.000002, out $0.000010) | " +
		"today 200 tokens / $0.00200 (in n/a, out n/a) | delta tokens +60 | delta cost $+0.00100"
	if got := FormatComparison(cmp[0]); got != want {
		t.Errorf("FormatComparison =\n%s\nwant\n%s", got, want)
	}

	want = "Moonshot kimi-k2: yesterday 0 tokens / $0.00000 (in n/a, out n/a) | " +
		"today 2,000 tokens / $0.00000 (in n/a, out n/a) | delta tokens +2,000 | delta cost $+0.00000"
	if got := FormatComparison(cmp[1]); got != want {
		t.Errorf("FormatComparison =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(nil); got != "n/a" {
		t.Errorf("FormatRate(nil) = %q", got)
	}
	if got := FormatRate(model.Rate(0.0000126)); got != "$0.000013" {
		t.Errorf("FormatRate = %q", got)
	}
}

func TestWrite(t *testing.T) {
	now := time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC)
	y, td := Labels(now)
	if y != "2026-10-15" || td != "2026-10-16" {
		t.Fatalf("Labels = %s, %s", y, td)
	}

	series := model.Series{
		y:  day(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)),
		td: day(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)),
	}
	var buf bytes.Buffer
	if err := Write(&buf, series, y, td, now); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Daily comparison (tokens + costs) by model",
		"OpenAI gpt-4o: yesterday 1,000 tokens",
		"2026-10-16 projected spend (24h trend)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2026-10-15 projected") {
		t.Error("yesterday got a projection line")
	}

	if err := Write(&buf, model.Series{}, y, td, now); err == nil {
		t.Error("expected error when days are missing")
	}
}
