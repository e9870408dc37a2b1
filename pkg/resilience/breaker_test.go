package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBreakerOpensAndRecovers(t *testing.T) {
	now := time.Unix(0, 0)
	b := NewBreaker("test", BreakerConfig{FailureThreshold: 2, Cooldown: time.Second})
	b.now = func() time.Time { return now }
	fail := errors.New("fail")

	for range 2 {
		b.Do(func() error { return fail })
	}
	if b.State() != StateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}
	called := false
	if err := b.Do(func() error { called = true; return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}
	if called {
		t.Error("operation ran while open")
	}

	now = now.Add(time.Second)
	if err := b.Do(func() error { return nil }); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if b.State() != StateClosed {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	now := time.Unix(0, 0)
	b := NewBreaker("test", BreakerConfig{FailureThreshold: 1, Cooldown: time.Second})
	b.now = func() time.Time { return now }

	b.Do(func() error { return errors.New("fail") })
	now = now.Add(2 * time.Second)
	b.Do(func() error { return errors.New("still failing") })
	if b.State() != StateOpen {
		t.Errorf("state = %s, want open", b.State())
	}
}

func TestBreakerIgnoresExpectedErrors(t *testing.T) {
	miss := errors.New("miss")
	b := NewBreaker("test", BreakerConfig{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return err != nil && !errors.Is(err, miss) },
	})
	for range 5 {
		if err := b.Do(func() error { return miss }); !errors.Is(err, miss) {
			t.Fatalf("err = %v, want miss", err)
		}
	}
	if b.State() != StateClosed {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestWithTimeout(t *testing.T) {
	err := WithTimeout(context.Background(), 10*time.Millisecond, "slow", func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}

	if err := WithTimeout(context.Background(), time.Second, "fast", func(ctx context.Context) error { return nil }); err != nil {
		t.Errorf("fast op: %v", err)
	}
}
