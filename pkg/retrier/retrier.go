// Package retrier provides exponential backoff with jitter for calls to
// flaky upstreams.
package retrier

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultMultiplier      = 2.0
	defaultMaxAttempts     = 4
	defaultJitter          = 0.1
)

// Policy describes a backoff schedule. The zero value behaves like
// DefaultPolicy, so it can be embedded in configs without ceremony.
type Policy struct {
	// InitialInterval delay before the second attempt.
	InitialInterval time.Duration
	// MaxInterval cap for the growing delay.
	MaxInterval time.Duration
	// Multiplier growth factor applied after every failed attempt.
	Multiplier float64
	// MaxAttempts total attempts including the first.
	MaxAttempts int
	// Jitter random spread as a fraction of the current interval, [0,1].
	Jitter float64
}

// DefaultPolicy is tuned for HTTP APIs with second-scale rate limits.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: defaultInitialInterval,
		MaxInterval:     defaultMaxInterval,
		Multiplier:      defaultMultiplier,
		MaxAttempts:     defaultMaxAttempts,
		Jitter:          defaultJitter,
	}
}

func (p Policy) normalized() Policy {
	if p.InitialInterval <= 0 {
		p.InitialInterval = defaultInitialInterval
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = defaultMaxInterval
	}
	if p.Multiplier < 1 {
		p.Multiplier = defaultMultiplier
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Jitter < 0 || p.Jitter > 1 {
		p.Jitter = defaultJitter
	}
	return p
}

// Do runs fn until it succeeds, the attempts are exhausted or the context
// is cancelled. The last error is returned on exhaustion.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	pol := p.normalized()
	interval := pol.InitialInterval

	var err error
	for attempt := 0; attempt < pol.MaxAttempts; attempt++ {
		if attempt > 0 {
			jitter := (rand.Float64()*2 - 1) * pol.Jitter * float64(interval)
			sleep := time.Duration(float64(interval) + jitter)
			if sleep < 0 {
				sleep = 0
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}

			interval = time.Duration(float64(interval) * pol.Multiplier)
			if interval > pol.MaxInterval {
				interval = pol.MaxInterval
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}

	return err
}

// Call runs fn with retries and returns its value.
func Call[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, func(ctx context.Context) error {
		var callErr error
		result, callErr = fn(ctx)
		return callErr
	})
	return result, err
}
