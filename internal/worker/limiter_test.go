package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_PerDomainIsolation(t *testing.T) {
	l := NewLimiter(1, 1)

	// Exhaust one domain's burst
	if !l.Allow("https://gnews.io/api/v4/search") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("https://gnews.io/api/v4/search") {
		t.Error("second immediate request to same domain should be denied")
	}

	// A different domain has its own budget
	if !l.Allow("https://newsapi.org/v2/everything") {
		t.Error("different domain should not share the limit")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetDomainRate("slow.example", 0.001, 1)

	if !l.Allow("https://slow.example/a") {
		t.Fatal("burst request should be allowed")
	}
	if l.Allow("https://slow.example/b") {
		t.Error("overridden domain should be throttled after its burst")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	// Consume the burst
	if err := l.Wait(context.Background(), "https://example.com/a"); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, "https://example.com/b")
	if err == nil {
		t.Error("Wait should fail when the context expires before clearance")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)

	if l.Allow("://bad\x7f") {
		t.Error("unparseable URL should be denied")
	}
}
