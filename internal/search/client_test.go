package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig(baseURL string) Config {
	return Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		MaxResults: 5,
		MaxRetries: 3,
		Timeout:    2 * time.Second,
	}
}

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query != "光合作用 教学设计" {
			t.Errorf("query = %q", req.Query)
		}
		if req.MaxResults != 3 {
			t.Errorf("max results = %d", req.MaxResults)
		}
		json.NewEncoder(w).Encode(searchResponse{
			Results: []Result{
				{Title: "教案一", URL: "https://example.com/1", Content: "内容一"},
				{Title: "教案二", URL: "https://example.com/2", Content: "内容二"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	resp := c.Search(context.Background(), "光合作用 教学设计", 3)
	if resp == nil {
		t.Fatal("expected response")
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results", len(resp.Results))
	}
	if resp.Metadata.TotalResults != 2 || len(resp.Metadata.Sources) != 2 {
		t.Fatalf("unexpected metadata: %+v", resp.Metadata)
	}
	if resp.Metadata.Query != "光合作用 教学设计" {
		t.Fatalf("metadata query = %q", resp.Metadata.Query)
	}
}

func TestSearch_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(searchResponse{
			Results: []Result{{Title: "教案", URL: "https://example.com", Content: "内容"}},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	resp := c.Search(context.Background(), "q", 1)
	if resp == nil {
		t.Fatal("expected response after retries")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestSearch_AllAttemptsFailReturnsNil(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	if resp := c.Search(context.Background(), "q", 1); resp != nil {
		t.Fatalf("expected nil, got %+v", resp)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestSearch_DisabledWithoutKey(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://unreachable.invalid", MaxRetries: 3})
	if c.Enabled() {
		t.Fatal("expected disabled without API key")
	}
	if resp := c.Search(context.Background(), "q", 1); resp != nil {
		t.Fatal("disabled client must return nil without network calls")
	}
}

func TestSearch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected with canceled context")
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	if resp := c.Search(ctx, "q", 1); resp != nil {
		t.Fatal("expected nil with canceled context")
	}
}
