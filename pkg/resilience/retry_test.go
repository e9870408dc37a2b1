package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "test", RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	sentinel := errors.New("down")
	calls := 0
	err := Retry(context.Background(), "test", RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond}, func() error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Retry(ctx, "test", RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond}, func() error {
		calls++
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffCapped(t *testing.T) {
	cfg := RetryConfig{InitialDelay: time.Second, MaxDelay: 2 * time.Second, Multiplier: 10}
	for attempt := 1; attempt <= 5; attempt++ {
		if d := Backoff(attempt, cfg); d > cfg.MaxDelay {
			t.Errorf("attempt %d delay %v exceeds max %v", attempt, d, cfg.MaxDelay)
		}
	}
}
