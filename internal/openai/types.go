package openai

import (
	"fmt"
	"strings"
)

// page is one paginated response from the organization usage/cost endpoints.
type page[T any] struct {
	Data     []bucket[T] `json:"data"`
	HasMore  bool        `json:"has_more"`
	NextPage string      `json:"next_page"`
}

// bucket is a single time bucket holding grouped results.
type bucket[T any] struct {
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`
	Results   []T   `json:"results"`
}

// usageResult is one grouped row from a usage endpoint.
type usageResult struct {
	Model             string `json:"model"`
	InputTokens       int64  `json:"input_tokens"`
	InputCachedTokens int64  `json:"input_cached_tokens"`
	OutputTokens      int64  `json:"output_tokens"`
	NumModelRequests  int64  `json:"num_model_requests"`
}

// costResult is one grouped row from the costs endpoint.
type costResult struct {
	LineItem string `json:"line_item"`
	Amount   struct {
		Value    float64 `json:"value"`
		Currency string  `json:"currency"`
	} `json:"amount"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Kind       string // "usage" or "costs"
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai %s API error %d: %s", e.Kind, e.StatusCode, strings.TrimSpace(e.Body))
}
