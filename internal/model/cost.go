package model

// Metric names used for cost line items and rates.
const (
	MetricInput  = "input"
	MetricOutput = "output"
	MetricCached = "cached"
	MetricOther  = "other"
)

// CostEntry holds USD amounts per metric for one model over a day.
type CostEntry struct {
	Cached   float64 `json:"cached"`
	Input    float64 `json:"input"`
	Other    float64 `json:"other"`
	Output   float64 `json:"output"`
	PerToken Rates   `json:"per_token"`
	Total    float64 `json:"total"`
}

// Rates holds per-token prices. A nil rate means unavailable, not free.
type Rates struct {
	Cached *float64 `json:"cached"`
	Input  *float64 `json:"input"`
	Output *float64 `json:"output"`
}

// AddMetric accumulates amount into the bucket named by metric.
// Unknown metrics land in Other.
func (c *CostEntry) AddMetric(metric string, amount float64) {
	switch metric {
	case MetricInput:
		c.Input += amount
	case MetricOutput:
		c.Output += amount
	case MetricCached:
		c.Cached += amount
	default:
		c.Other += amount
	}
}

// ComputeTotal sets Total to the sum of all four buckets.
func (c *CostEntry) ComputeTotal() {
	c.Total = c.Input + c.Output + c.Cached + c.Other
}

// TotalOf returns the entry's total, or 0 for a nil entry.
func TotalOf(c *CostEntry) float64 {
	if c == nil {
		return 0
	}
	return c.Total
}

// Clone returns a deep copy.
func (c *CostEntry) Clone() *CostEntry {
	if c == nil {
		return nil
	}
	out := *c
	out.PerToken = Rates{
		Cached: copyRate(c.PerToken.Cached),
		Input:  copyRate(c.PerToken.Input),
		Output: copyRate(c.PerToken.Output),
	}
	return &out
}

// Rate returns a pointer to v, for building Rates literals.
func Rate(v float64) *float64 {
	return &v
}

func copyRate(r *float64) *float64 {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}
