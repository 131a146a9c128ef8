package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/theirongolddev/tokenledger/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("sk-admin-test", Options{BaseURL: srv.URL, HTTPClient: srv.Client()})
}

func TestFetchUsagePaginatesAndAccumulates(t *testing.T) {
	var pages []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-admin-test" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("group_by") != "model" || q.Get("bucket_width") != "1d" || q.Get("limit") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Has("project_ids") {
			t.Errorf("project_ids sent without a configured project")
		}
		pages = append(pages, r.URL.Path+"?page="+q.Get("page"))

		switch {
		case r.URL.Path == "/organization/usage/completions" && q.Get("page") == "":
			fmt.Fprint(w, `{"data":[{"results":[{"model":"gpt-4o","input_tokens":100,"output_tokens":20,"input_cached_tokens":5,"num_model_requests":2}]}],"next_page":"p2"}`)
		case r.URL.Path == "/organization/usage/completions" && q.Get("page") == "p2":
			fmt.Fprint(w, `{"data":[{"results":[{"model":"gpt-4o","input_tokens":50,"output_tokens":10,"num_model_requests":1},{"model":"","input_tokens":7,"output_tokens":3,"num_model_requests":1}]}],"next_page":null}`)
		case r.URL.Path == "/organization/usage/embeddings":
			fmt.Fprint(w, `{"data":[{"results":[{"model":"text-embedding-3-small","input_tokens":400,"num_model_requests":4}]}]}`)
		default:
			t.Errorf("unexpected request %s", r.URL.String())
			w.WriteHeader(http.StatusNotFound)
		}
	})

	usage, err := c.FetchUsage(context.Background(), 1700000000, 1700086400)
	if err != nil {
		t.Fatalf("FetchUsage: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("requests = %v, want 3", pages)
	}

	gpt := usage["gpt-4o"]
	if gpt == nil {
		t.Fatal("missing gpt-4o")
	}
	if gpt.InputTokens != 150 || gpt.OutputTokens != 30 || gpt.CachedTokens != 5 || gpt.Requests != 3 {
		t.Errorf("gpt-4o = %+v", *gpt)
	}
	if s := gpt.Services["completions"]; s == nil || s.Requests != 3 {
		t.Errorf("completions service = %+v", s)
	}
	if u := usage["unknown"]; u == nil || u.Tokens() != 10 {
		t.Errorf("unknown = %+v, want 10 tokens", u)
	}
	if e := usage["text-embedding-3-small"]; e == nil || e.Services["embeddings"] == nil {
		t.Errorf("embeddings entry = %+v", e)
	}
}

func TestFetchUsageSendsProjectID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("project_ids"); got != "proj_1" {
			t.Errorf("project_ids = %q, want proj_1", got)
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := NewClient("k", Options{BaseURL: srv.URL + "/", ProjectID: "proj_1"})
	if _, err := c.FetchUsage(context.Background(), 0, 1); err != nil {
		t.Fatalf("FetchUsage: %v", err)
	}
}

func TestFetchCostsClassifiesLineItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organization/costs" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q := r.URL.Query(); q.Get("group_by") != "line_item" || q.Get("limit") != "100" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"data":[{"results":[
			{"line_item":"gpt-4o, input","amount":{"value":0.5,"currency":"usd"}},
			{"line_item":"gpt-4o, output","amount":{"value":0.25}},
			{"line_item":"gpt-4o, cached input","amount":{"value":0.1}},
			{"line_item":"gpt-4o","amount":{"value":0.05}},
			{"line_item":" , ","amount":{"value":9}}
		]}]}`)
	})

	costs, err := c.FetchCosts(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("FetchCosts: %v", err)
	}
	if len(costs) != 1 {
		t.Fatalf("costs = %v, want only gpt-4o", costs)
	}
	got := costs["gpt-4o"]
	want := model.CostEntry{Input: 0.5, Output: 0.25, Cached: 0.1, Other: 0.05}
	if got.Input != want.Input || got.Output != want.Output || got.Cached != want.Cached || got.Other != want.Other {
		t.Errorf("gpt-4o = %+v, want %+v", *got, want)
	}
	if math.Abs(got.Total-0.9) > 1e-9 {
		t.Errorf("Total = %f, want 0.9", got.Total)
	}
}

func TestGetReturnsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"bad key"}`)
	})

	_, err := c.FetchCosts(context.Background(), 0, 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Kind != "costs" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if want := `openai costs API error 401: {"error":"bad key"}`; apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestParseLineItem(t *testing.T) {
	tests := []struct {
		in         string
		wantModel  string
		wantMetric string
	}{
		{"gpt-4o, input", "gpt-4o", model.MetricInput},
		{"gpt-4o, Cached Input Tokens", "gpt-4o", model.MetricCached},
		{"gpt-4o-mini,output", "gpt-4o-mini", model.MetricOutput},
		{"gpt-4o, web search", "gpt-4o", model.MetricOther},
		{"gpt-4o", "gpt-4o", model.MetricOther},
		{"gpt-4o, , input", "gpt-4o", model.MetricInput},
		{"", "", ""},
		{" , ,", "", ""},
	}
	for _, tt := range tests {
		gotModel, gotMetric := ParseLineItem(tt.in)
		if gotModel != tt.wantModel || gotMetric != tt.wantMetric {
			t.Errorf("ParseLineItem(%q) = (%q, %q), want (%q, %q)",
				tt.in, gotModel, gotMetric, tt.wantModel, tt.wantMetric)
		}
	}
}
