// Package openai fetches organization usage and cost data from the OpenAI admin API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/tokenledger/internal/model"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	costsPath      = "/organization/costs"
	requestTimeout = 30 * time.Second
	maxBodySize    = 10 << 20 // 10 MB
	usagePageLimit = 1
	costPageLimit  = 100
)

// Service is one usage API surface.
type Service struct {
	Name string
	Path string
}

// Services are the usage surfaces queried by FetchUsage, in order.
var Services = []Service{
	{Name: "completions", Path: "/organization/usage/completions"},
	{Name: "embeddings", Path: "/organization/usage/embeddings"},
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	ProjectID  string
	HTTPClient *http.Client
}

// Client fetches usage and cost buckets with an admin key.
type Client struct {
	apiKey    string
	baseURL   string
	projectID string
	http      *http.Client
}

// NewClient creates a client for the given admin key.
func NewClient(apiKey string, opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		apiKey:    strings.TrimSpace(apiKey),
		baseURL:   base,
		projectID: opts.ProjectID,
		http:      hc,
	}
}

// FetchUsage returns per-model usage for [start, end), accumulated across
// every usage surface with a per-service breakdown.
func (c *Client) FetchUsage(ctx context.Context, start, end int64) (map[string]*model.UsageEntry, error) {
	usage := make(map[string]*model.UsageEntry)

	for _, svc := range Services {
		query := c.baseQuery(start, end, "model", usagePageLimit)
		err := fetchPages(ctx, c, "usage", svc.Path, query, func(r usageResult) {
			name := r.Model
			if name == "" {
				name = "unknown"
			}
			entry, ok := usage[name]
			if !ok {
				entry = model.NewUsageEntry(name)
				usage[name] = entry
			}
			entry.InputTokens += r.InputTokens
			entry.CachedTokens += r.InputCachedTokens
			entry.OutputTokens += r.OutputTokens
			entry.Requests += r.NumModelRequests

			s := entry.Service(svc.Name)
			s.InputTokens += r.InputTokens
			s.CachedTokens += r.InputCachedTokens
			s.OutputTokens += r.OutputTokens
			s.Requests += r.NumModelRequests
		})
		if err != nil {
			return nil, err
		}
	}

	return usage, nil
}

// FetchCosts returns per-model cost buckets for [start, end), grouped by
// line item and classified with ParseLineItem.
func (c *Client) FetchCosts(ctx context.Context, start, end int64) (map[string]*model.CostEntry, error) {
	costs := make(map[string]*model.CostEntry)

	query := c.baseQuery(start, end, "line_item", costPageLimit)
	err := fetchPages(ctx, c, "costs", costsPath, query, func(r costResult) {
		name, metric := ParseLineItem(r.LineItem)
		if name == "" {
			return
		}
		entry, ok := costs[name]
		if !ok {
			entry = &model.CostEntry{}
			costs[name] = entry
		}
		entry.AddMetric(metric, r.Amount.Value)
	})
	if err != nil {
		return nil, err
	}

	for _, entry := range costs {
		entry.ComputeTotal()
	}
	return costs, nil
}

func (c *Client) baseQuery(start, end int64, groupBy string, limit int) url.Values {
	q := url.Values{}
	q.Set("start_time", strconv.FormatInt(start, 10))
	q.Set("end_time", strconv.FormatInt(end, 10))
	q.Set("group_by", groupBy)
	q.Set("bucket_width", "1d")
	q.Set("limit", strconv.Itoa(limit))
	if c.projectID != "" {
		q.Set("project_ids", c.projectID)
	}
	return q
}

// fetchPages follows next_page cursors until the endpoint reports none,
// calling visit for every result row.
func fetchPages[T any](ctx context.Context, c *Client, kind, path string, query url.Values, visit func(T)) error {
	for {
		body, err := c.get(ctx, kind, path, query)
		if err != nil {
			return err
		}

		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return fmt.Errorf("openai: parsing %s page: %w", kind, err)
		}
		for _, b := range p.Data {
			for _, r := range b.Results {
				visit(r)
			}
		}

		if p.NextPage == "" {
			return nil
		}
		query.Set("page", p.NextPage)
	}
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, kind, path string, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("openai: creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req) //nolint:gosec // base URL comes from config
	if err != nil {
		return nil, fmt.Errorf("openai: %s request failed: %w", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("openai: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Kind: kind, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
