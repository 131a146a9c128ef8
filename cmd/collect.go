package cmd

import (
	"github.com/theirongolddev/tokenledger/internal/config"
	"github.com/theirongolddev/tokenledger/internal/moonshot"
	"github.com/theirongolddev/tokenledger/internal/openai"
	"github.com/theirongolddev/tokenledger/internal/pipeline"
)

// newCollector wires both providers and the pricing table from cfg.
func newCollector(cfg config.Config) (*pipeline.Collector, error) {
	key, err := config.LoadAdminKey(cfg.CredentialPath())
	if err != nil {
		return nil, err
	}

	pricing, err := config.LoadPricing(cfg.PricingPath())
	if err != nil {
		return nil, err
	}

	client := openai.NewClient(key, openai.Options{
		BaseURL:   cfg.OpenAI.BaseURL,
		ProjectID: cfg.OpenAI.ProjectID,
	})

	fetcher := moonshot.NewFetcher(moonshot.CLILister{
		Command: cfg.Moonshot.SessionCommand,
		Limit:   cfg.Moonshot.SessionLimit,
	})
	fetcher.Split = moonshot.TokenSplit{
		Input:  cfg.Moonshot.InputShare,
		Output: cfg.Moonshot.OutputShare,
	}

	return &pipeline.Collector{
		Primary:   client,
		Secondary: fetcher,
		Pricing:   pricing,
	}, nil
}
