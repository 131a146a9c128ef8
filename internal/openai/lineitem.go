package openai

import (
	"strings"

	"github.com/theirongolddev/tokenledger/internal/model"
)

// ParseLineItem splits a cost line item like "gpt-4o, cached input tokens"
// into the model name and a metric. The second field is matched
// case-insensitively: "cached" wins over "input", then "output"; anything
// else, or a missing second field, is "other". An empty line item yields
// two empty strings.
func ParseLineItem(lineItem string) (string, string) {
	var parts []string
	for _, p := range strings.Split(lineItem, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", ""
	}

	metric := model.MetricOther
	if len(parts) > 1 {
		candidate := strings.ToLower(parts[1])
		switch {
		case strings.Contains(candidate, "cached"):
			metric = model.MetricCached
		case strings.Contains(candidate, "input"):
			metric = model.MetricInput
		case strings.Contains(candidate, "output"):
			metric = model.MetricOutput
		}
	}
	return parts[0], metric
}
