package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/fault"
	"github.com/claimlens/claimlens/internal/model"
)

// stubSleep replaces the backoff sleep and records requested delays
func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var delays []time.Duration
	orig := retrySleepFunc
	retrySleepFunc = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	t.Cleanup(func() { retrySleepFunc = orig })
	return &delays
}

func testPolicy(attempts int) *RetryPolicy {
	return NewRetryPolicy(model.RetryConfig{
		MaxAttempts: attempts,
		BackoffBase: 100 * time.Millisecond,
		Multiplier:  2.0,
	})
}

func TestRetry_TransientRetriedWithBackoff(t *testing.T) {
	delays := stubSleep(t)

	calls := 0
	err := testPolicy(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fault.Transientf("flaky")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(*delays) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(*delays))
	}
	for i, d := range want {
		if (*delays)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*delays)[i], d)
		}
	}
}

func TestRetry_PermanentNotRetried(t *testing.T) {
	stubSleep(t)

	calls := 0
	err := testPolicy(5).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return fault.Permanentf("bad request")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("permanent error retried: %d attempts", calls)
	}
}

func TestRetry_UnclassifiedNotRetried(t *testing.T) {
	stubSleep(t)

	calls := 0
	err := testPolicy(5).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("plain error")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("unclassified error retried: %d attempts", calls)
	}
}

func TestRetry_AttemptBound(t *testing.T) {
	stubSleep(t)

	calls := 0
	err := testPolicy(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return fault.Transientf("always down")
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if !fault.IsTransient(err) {
		t.Error("exhausted error should keep its classification")
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	stubSleep(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := testPolicy(3).Do(ctx, func(ctx context.Context) error {
		calls++
		return fault.Transientf("flaky")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("cancelled context should not run fn, got %d calls", calls)
	}
}

func TestRetry_Defaults(t *testing.T) {
	p := NewRetryPolicy(model.RetryConfig{})
	if p.maxAttempts != 1 {
		t.Errorf("default maxAttempts = %d, want 1", p.maxAttempts)
	}
	if p.base != time.Second {
		t.Errorf("default base = %v, want 1s", p.base)
	}
	if p.multiplier != 2 {
		t.Errorf("default multiplier = %v, want 2", p.multiplier)
	}
}
