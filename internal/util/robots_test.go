package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_AllowAndDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\nCrawl-delay: 2\n"))
		}
	}))
	defer server.Close()

	c := NewRobotsChecker("test-agent", 5*time.Second)

	allowed, delay, err := c.CanFetch(context.Background(), server.URL+"/public/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("public path should be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("crawl delay = %v, want 2s", delay)
	}

	allowed, _, err = c.CanFetch(context.Background(), server.URL+"/private/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if allowed {
		t.Error("private path should be disallowed")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewRobotsChecker("test-agent", 5*time.Second)

	allowed, _, err := c.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("missing robots.txt should allow everything")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var fetches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			atomic.AddInt32(&fetches, 1)
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
		}
	}))
	defer server.Close()

	c := NewRobotsChecker("test-agent", 5*time.Second)

	for i := 0; i < 3; i++ {
		if _, _, err := c.CanFetch(context.Background(), server.URL+"/page"); err != nil {
			t.Fatalf("CanFetch failed: %v", err)
		}
	}

	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", n)
	}
}
