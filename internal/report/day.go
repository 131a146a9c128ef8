// Package report renders stored day records as plain-text summaries.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/tokenledger/internal/model"
	"github.com/theirongolddev/tokenledger/internal/moonshot"
)

// Provider display names.
const (
	ProviderOpenAI   = "OpenAI"
	ProviderMoonshot = "Moonshot"
)

// minElapsedHours floors the projection window so early-day runs do not divide by zero.
const minElapsedHours = 0.01

// ProviderOf names the provider a stored model key belongs to.
func ProviderOf(name string) string {
	if moonshot.IsProviderModel(name) {
		return ProviderMoonshot
	}
	return ProviderOpenAI
}

// DayOptions controls the optional projection line.
type DayOptions struct {
	// Now enables the 24h projection when set.
	Now *time.Time
}

// FormatDay returns the report lines for one day.
func FormatDay(label string, day model.DayRecord, opts DayOptions) []string {
	var openaiTotal, moonshotTotal float64
	for name, c := range day.Costs {
		if ProviderOf(name) == ProviderMoonshot {
			moonshotTotal += model.TotalOf(c)
		} else {
			openaiTotal += model.TotalOf(c)
		}
	}
	total := openaiTotal + moonshotTotal

	s := day.Summary
	var costPerQuery, avgIn, avgOut float64
	if s.Requests > 0 {
		req := float64(s.Requests)
		costPerQuery = total / req
		avgIn = float64(s.Input) / req
		avgOut = float64(s.Output) / req
	}

	lines := []string{
		fmt.Sprintf("%s total spend: $%.5f (OpenAI: $%.5f, Moonshot: $%.5f)", label, total, openaiTotal, moonshotTotal),
	}

	if opts.Now != nil {
		elapsed := opts.Now.Sub(day.Start).Hours()
		if elapsed < minElapsedHours {
			elapsed = minElapsedHours
		}
		perHour := float64(s.Requests) / elapsed
		projected := costPerQuery * perHour * 24
		lines = append(lines, fmt.Sprintf("%s projected spend (24h trend): $%.5f based on %.2f requests/hour", label, projected, perHour))
	}

	lines = append(lines,
		fmt.Sprintf("%s cost per query: $%.6f", label, costPerQuery),
		fmt.Sprintf("%s avg tokens in per query: %.1f", label, avgIn),
		fmt.Sprintf("%s avg tokens out per query: %.1f", label, avgOut),
	)

	openaiModels, moonshotModels := splitModels(day.Usage)
	if len(openaiModels) > 0 {
		lines = append(lines, fmt.Sprintf("%s OpenAI models: %s", label, strings.Join(openaiModels, ", ")))
	}
	if len(moonshotModels) > 0 {
		lines = append(lines, fmt.Sprintf("%s Moonshot models: %s", label, strings.Join(moonshotModels, ", ")))
	}
	return lines
}

// FormatSummary returns a one-line rendering of a day's summary.
func FormatSummary(label string, s model.Summary) string {
	return fmt.Sprintf("Summary %s: tokens=%d requests=%d avg_tokens_per_request=%.2f input=%d output=%d",
		label, s.Tokens, s.Requests, s.AvgTokensPerRequest, s.Input, s.Output)
}

func splitModels(usage map[string]*model.UsageEntry) (openai, moon []string) {
	for name := range usage {
		if ProviderOf(name) == ProviderMoonshot {
			moon = append(moon, name)
		} else {
			openai = append(openai, name)
		}
	}
	sort.Strings(openai)
	sort.Strings(moon)
	return openai, moon
}
