// Package search wraps the Tavily-style web-search API used to ground
// lesson plans in current material. Failures degrade: callers get a nil
// result after the retry budget is spent, never an escaped transport error.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Metadata summarizes a completed search for audit and display.
type Metadata struct {
	Query        string   `json:"query"`
	TotalResults int      `json:"totalResults"`
	Sources      []string `json:"sources"`
}

// Response bundles the hits with their metadata.
type Response struct {
	Results  []Result
	Metadata Metadata
}

// Config holds web-search provider configuration.
type Config struct {
	APIKey     string
	BaseURL    string // Default: "https://api.tavily.com"
	MaxResults int    // Default: 5
	MaxRetries int    // Default: 3
	Timeout    time.Duration
}

// DefaultConfig returns production defaults. Search stays disabled until
// an API key is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://api.tavily.com",
		MaxResults: 5,
		MaxRetries: 3,
		Timeout:    120 * time.Second,
	}
}

// ConfigFromEnv builds a Config from CURIO_TAVILY_* environment variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if k := os.Getenv("CURIO_TAVILY_API_KEY"); k != "" {
		cfg.APIKey = k
	}
	if u := os.Getenv("CURIO_TAVILY_BASE_URL"); u != "" {
		cfg.BaseURL = u
	}
	return cfg
}

// Client issues searches against the provider.
type Client interface {
	// Search runs query and returns up to maxResults hits, or nil when
	// the provider is unavailable or search is not configured.
	Search(ctx context.Context, query string, maxResults int) *Response

	// Enabled reports whether the client is configured with an API key.
	Enabled() bool
}

// HTTPClient is the production Client.
type HTTPClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a search client from cfg.
func NewClient(cfg Config) *HTTPClient {
	return &HTTPClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) Enabled() bool {
	return c.cfg.APIKey != ""
}

type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains"`
	ExcludeDomains []string `json:"exclude_domains"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search runs the query with bounded retries. Every failure path returns
// nil; the caller decides whether to generate without grounding.
func (c *HTTPClient) Search(ctx context.Context, query string, maxResults int) *Response {
	if !c.Enabled() {
		return nil
	}
	if maxResults <= 0 || maxResults > c.cfg.MaxResults {
		maxResults = c.cfg.MaxResults
	}

	body, err := json.Marshal(searchRequest{
		APIKey:         c.cfg.APIKey,
		Query:          query,
		SearchDepth:    "basic",
		MaxResults:     maxResults,
		IncludeDomains: []string{},
		ExcludeDomains: []string{},
	})
	if err != nil {
		return nil
	}

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil
		}

		resp, err := c.attempt(ctx, body)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: web search attempt %d/%d failed: %v\n",
				attempt+1, c.cfg.MaxRetries, err)
			continue
		}

		sources := make([]string, 0, len(resp.Results))
		for _, r := range resp.Results {
			sources = append(sources, r.URL)
		}
		return &Response{
			Results: resp.Results,
			Metadata: Metadata{
				Query:        query,
				TotalResults: len(resp.Results),
				Sources:      sources,
			},
		}
	}
	return nil
}

func (c *HTTPClient) attempt(ctx context.Context, body []byte) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
