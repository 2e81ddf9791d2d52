package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
)

func newTestClient(baseURL string) *HTTPClient {
	return NewHTTPClient(
		model.TranslateConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		model.HTTPConfig{},
		"en",
	)
}

func TestHTTPClient_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Target != "en" {
			t.Errorf("target = %q, want en", req.Target)
		}

		_ = json.NewEncoder(w).Encode(translateResponse{
			TranslatedText:   "this is hindi",
			DetectedLanguage: "hi",
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	res, err := c.Translate(context.Background(), "यह हिंदी है", "hi")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if res.Text != "this is hindi" {
		t.Errorf("text = %q", res.Text)
	}
	if res.DetectedLanguage != "hi" {
		t.Errorf("detected = %q", res.DetectedLanguage)
	}
}

func TestHTTPClient_UnsupportedLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(translateResponse{Error: "language xx not supported"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Translate(context.Background(), "text", "xx")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if fault.IsTransient(err) {
		t.Error("unsupported language must not be retried")
	}
}

func TestHTTPClient_TransientStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := newTestClient(server.URL)
		_, err := c.Translate(context.Background(), "text", "hi")
		server.Close()

		if !fault.IsTransient(err) {
			t.Errorf("status %d: expected transient error, got %v", status, err)
		}
	}
}

func TestHTTPClient_EmptyTranslationRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: ""})
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.Translate(context.Background(), "text", "hi")
	if err == nil {
		t.Fatal("expected error for empty translation")
	}
	if fault.IsTransient(err) {
		t.Error("empty translation must not be retried")
	}
}

func TestHTTPClient_NotConfigured(t *testing.T) {
	c := newTestClient("")

	_, err := c.Translate(context.Background(), "text", "hi")
	if err == nil {
		t.Fatal("expected error without base URL")
	}
}
