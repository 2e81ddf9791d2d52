package gather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent",
		MaxBodyBytes: 1 << 20,
	}
}

func TestGNews_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "mpox outbreak" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("token") != "key123" {
			t.Errorf("token = %q", q.Get("token"))
		}
		if q.Get("max") != "5" {
			t.Errorf("max = %q", q.Get("max"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalArticles": 2,
			"articles": [
				{"title": "A", "description": "d1", "url": "https://example.com/a", "publishedAt": "2025-01-01T00:00:00Z", "source": {"name": "Example"}},
				{"title": "B", "description": "d2", "url": "", "source": {"name": "NoURL"}}
			]
		}`))
	}))
	defer server.Close()

	c := NewGNewsClient(server.URL, "key123", "en", testHTTPConfig(), nil)

	articles, err := c.Search(context.Background(), "mpox outbreak", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// Articles without a URL are dropped
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Title != "A" || articles[0].SourceName != "Example" {
		t.Errorf("unexpected article: %+v", articles[0])
	}
}

func TestGNews_StatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		transient bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusForbidden, false},
		{http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		c := NewGNewsClient(server.URL, "key", "en", testHTTPConfig(), nil)
		_, err := c.Search(context.Background(), "q", 5)
		server.Close()

		if err == nil {
			t.Errorf("status %d: expected error", tt.status)
			continue
		}
		if fault.IsTransient(err) != tt.transient {
			t.Errorf("status %d: transient = %v, want %v", tt.status, fault.IsTransient(err), tt.transient)
		}
	}
}

func TestGNews_MissingKey(t *testing.T) {
	c := NewGNewsClient("https://gnews.io/api/v4", "", "en", testHTTPConfig(), nil)

	_, err := c.Search(context.Background(), "q", 5)
	if err == nil {
		t.Fatal("expected error without API key")
	}
	if fault.IsTransient(err) {
		t.Error("missing key must not be retried")
	}
}
