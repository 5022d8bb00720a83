// Package resilience shields the bot from repeatedly hammering a failing
// external service. The metadata refinement step is best-effort by contract,
// so when a lookup provider keeps timing out the right move is to stop
// consulting it for a while rather than add latency to every search.
//
// [Breaker] is a three-state circuit breaker (closed → open → half-open).
// [MetadataChain] composes ordered metadata providers with one breaker each.
// All types are safe for concurrent use.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by [Breaker.Do] while the breaker is open and the
// cooldown has not elapsed.
var ErrOpen = errors.New("resilience: circuit open")

// Breaker state values.
const (
	stateClosed = iota
	stateOpen
	stateHalfOpen
)

// BreakerConfig tunes a [Breaker]. Zero fields take the defaults noted on
// each field.
type BreakerConfig struct {
	// Threshold is the number of consecutive failures that trips the
	// breaker. Default 3.
	Threshold int

	// Cooldown is how long the breaker stays open before allowing a probe
	// call. Default 60s.
	Cooldown time.Duration
}

// Breaker is a consecutive-failure circuit breaker.
type Breaker struct {
	threshold int
	cooldown  time.Duration

	mu       sync.Mutex
	state    int
	failures int
	openedAt time.Time
}

// NewBreaker creates a Breaker from cfg, applying defaults for zero fields.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = time.Minute
	}
	return &Breaker{threshold: cfg.Threshold, cooldown: cfg.Cooldown}
}

// Do runs fn unless the breaker is open. A nil return from fn closes the
// breaker and resets the failure count; an error counts toward the threshold.
// While open, Do returns [ErrOpen] without invoking fn until the cooldown
// elapses, after which a single probe is let through.
func (b *Breaker) Do(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	b.record(err)
	return err
}

// admit decides whether a call may proceed, transitioning open → half-open
// when the cooldown has elapsed.
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if time.Since(b.openedAt) < b.cooldown {
			return ErrOpen
		}
		b.state = stateHalfOpen
		return nil
	case stateHalfOpen:
		// One probe at a time; concurrent callers wait out the probe.
		return ErrOpen
	default:
		return nil
	}
}

// record applies the outcome of a permitted call.
func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.state = stateClosed
		b.failures = 0
		return
	}

	b.failures++
	if b.state == stateHalfOpen || b.failures >= b.threshold {
		b.state = stateOpen
		b.openedAt = time.Now()
		b.failures = 0
	}
}
