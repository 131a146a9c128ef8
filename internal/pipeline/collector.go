package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/tokenledger/internal/config"
	"github.com/theirongolddev/tokenledger/internal/logger"
	"github.com/theirongolddev/tokenledger/internal/model"
)

// Provider keys in DayRecord.Providers.
const (
	ProviderOpenAI   = "openai"
	ProviderMoonshot = "moonshot"
)

// PrimarySource fetches billed usage and costs. Errors are fatal for the day.
type PrimarySource interface {
	FetchUsage(ctx context.Context, start, end int64) (map[string]*model.UsageEntry, error)
	FetchCosts(ctx context.Context, start, end int64) (map[string]*model.CostEntry, error)
}

// SecondarySource fetches estimated usage and never fails.
type SecondarySource interface {
	FetchUsage(ctx context.Context, start, end int64) map[string]*model.UsageEntry
}

// Collector assembles one DayRecord from both providers.
type Collector struct {
	Primary   PrimarySource
	Secondary SecondarySource
	Pricing   config.PricingTable
}

// CollectDay fetches, reconciles and merges one day bucket [start, end).
// strategy governs usage only; a secondary cost entry always replaces a
// primary one of the same model.
func (c *Collector) CollectDay(ctx context.Context, label string, start, end time.Time, strategy MergeStrategy) (model.DayRecord, error) {
	startTS, endTS := start.Unix(), end.Unix()

	logger.Info(fmt.Sprintf("Fetching OpenAI usage for %s (%d-%d)", label, startTS, endTS))
	primaryUsage, err := c.Primary.FetchUsage(ctx, startTS, endTS)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("fetching usage for %s: %w", label, err)
	}

	logger.Info("Fetching OpenAI costs for " + label)
	primaryCosts, err := c.Primary.FetchCosts(ctx, startTS, endTS)
	if err != nil {
		return model.DayRecord{}, fmt.Errorf("fetching costs for %s: %w", label, err)
	}
	AttachRates(primaryCosts, primaryUsage)

	logger.Info("Fetching Moonshot usage for " + label)
	secondaryUsage := c.Secondary.FetchUsage(ctx, startTS, endTS)

	logger.Info("Calculating Moonshot costs for " + label)
	secondaryCosts := SecondaryCosts(secondaryUsage, c.Pricing)

	usage := MergeUsage(strategy, primaryUsage, secondaryUsage)
	return model.DayRecord{
		Start:   start.UTC(),
		End:     end.UTC(),
		Usage:   usage,
		Costs:   MergeCosts(ReplaceOnConflict, primaryCosts, secondaryCosts),
		Summary: Summarize(usage),
		Providers: map[string]model.ProviderData{
			ProviderOpenAI:   {Usage: primaryUsage, Costs: primaryCosts},
			ProviderMoonshot: {Usage: secondaryUsage, Costs: secondaryCosts},
		},
	}, nil
}

// CollectLabel collects the UTC day containing t.
func (c *Collector) CollectLabel(ctx context.Context, t time.Time, strategy MergeStrategy) (string, model.DayRecord, error) {
	start := model.DayStart(t)
	label := model.Label(start)
	rec, err := c.CollectDay(ctx, label, start, start.AddDate(0, 0, 1), strategy)
	return label, rec, err
}
