package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ModelPricing holds per-token prices for a model. Nil means no price configured.
type ModelPricing struct {
	Input  *float64 `json:"input"`
	Output *float64 `json:"output"`
	Cached *float64 `json:"cached"`
}

// PricingTable maps model names to pricing. It is read once per run.
type PricingTable map[string]ModelPricing

type pricingFile struct {
	Models map[string]struct {
		Pricing ModelPricing `json:"pricing"`
	} `json:"models"`
}

// LoadPricing reads the secondary provider pricing file.
// A missing file yields an empty table.
func LoadPricing(path string) (PricingTable, error) {
	data, err := os.ReadFile(path) //nolint:gosec // pricing path comes from config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PricingTable{}, nil
		}
		return nil, fmt.Errorf("reading pricing: %w", err)
	}

	var raw pricingFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing pricing %s: %w", path, err)
	}

	table := make(PricingTable, len(raw.Models))
	for name, m := range raw.Models {
		table[name] = m.Pricing
	}
	return table, nil
}

// Lookup returns the pricing for model.
func (t PricingTable) Lookup(model string) (ModelPricing, bool) {
	p, ok := t[model]
	return p, ok
}

// Price dereferences a nullable price, treating nil as 0.
func Price(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
