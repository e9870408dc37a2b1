package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling the operation while the
// breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig controls when a Breaker trips and how it recovers.
type BreakerConfig struct {
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold int
	// Cooldown is how long the breaker stays open before letting one probe
	// through.
	Cooldown time.Duration
	// IsFailure classifies errors; nil counts every non-nil error. Use it
	// to let expected outcomes such as a cache miss through.
	IsFailure func(error) bool
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 30 * time.Second
	}
	if c.IsFailure == nil {
		c.IsFailure = func(err error) bool { return err != nil }
	}
	return c
}

// Breaker stops calling a failing dependency for a cooldown period. Only one
// probe runs while half-open; other callers get ErrCircuitOpen.
type Breaker struct {
	name     string
	cfg      BreakerConfig
	logger   *slog.Logger
	now      func() time.Time
	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	return &Breaker{
		name:   name,
		cfg:    cfg.withDefaults(),
		logger: slog.Default().With("component", "circuit-breaker", "name", name),
		now:    time.Now,
	}
}

// Do runs fn unless the breaker is open and records the outcome.
func (b *Breaker) Do(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := fn()
	b.record(b.cfg.IsFailure(err))
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateOpen:
		wait := b.cfg.Cooldown - b.now().Sub(b.openedAt)
		if wait > 0 {
			return fmt.Errorf("%w: %s (retry in %v)", ErrCircuitOpen, b.name, wait.Round(time.Millisecond))
		}
		b.state = StateHalfOpen
		b.probing = true
		b.logger.Info("circuit half-open, probing")
	case StateHalfOpen:
		if b.probing {
			return fmt.Errorf("%w: %s (probe in flight)", ErrCircuitOpen, b.name)
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
	if !failed {
		if b.state != StateClosed {
			b.logger.Info("circuit closed")
		}
		b.state = StateClosed
		b.failures = 0
		return
	}
	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.cfg.FailureThreshold {
		if b.state != StateOpen {
			b.logger.Warn("circuit opened", "consecutive_failures", b.failures)
		}
		b.state = StateOpen
		b.openedAt = b.now()
	}
}
