package util

import (
	"net/http"
	"net/url"
	"testing"
)

func newRequest(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %s: %v", rawURL, err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_NoConfigDefersToEnvironment(t *testing.T) {
	fn := NewProxyFunc("", "", "")
	if fn == nil {
		t.Fatal("expected a proxy func")
	}
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	fn := NewProxyFunc("http://proxy-http:3128", "http://proxy-https:3128", "")

	u, err := fn(newRequest(t, "https://news.example.com/a"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "proxy-https:3128" {
		t.Errorf("https request proxied via %v, want proxy-https:3128", u)
	}

	u, err = fn(newRequest(t, "http://news.example.com/a"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "proxy-http:3128" {
		t.Errorf("http request proxied via %v, want proxy-http:3128", u)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "", "internal.corp, .local")

	tests := []struct {
		url      string
		bypassed bool
	}{
		{"http://internal.corp/api", true},
		{"http://svc.internal.corp/api", true},
		{"http://db.local/x", true},
		{"http://news.example.com/a", false},
		{"http://notinternal.corp.example.com/a", false},
	}

	for _, tt := range tests {
		u, err := fn(newRequest(t, tt.url))
		if err != nil {
			t.Fatalf("proxy func failed for %s: %v", tt.url, err)
		}
		if tt.bypassed && u != nil {
			t.Errorf("%s should bypass the proxy, got %v", tt.url, u)
		}
		if !tt.bypassed && u == nil {
			t.Errorf("%s should be proxied", tt.url)
		}
	}
}

func TestNewProxyFunc_WildcardDisables(t *testing.T) {
	fn := NewProxyFunc("http://proxy:3128", "", "*")

	u, err := fn(newRequest(t, "http://news.example.com/a"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u != nil {
		t.Errorf("wildcard no-proxy should disable proxying, got %v", u)
	}
}
