package client

import (
	"context"
	"fmt"
	"math"
	"time"
)

// RetryPolicy controls both executors.
//
// The synchronous executor retries a 429 exactly once after RateLimitDelay.
// The asynchronous executor retries any failure up to MaxRetries times,
// sleeping InitialDelay * Factor^attempt before each retry.
type RetryPolicy struct {
	RateLimitDelay time.Duration
	MaxRetries     int
	InitialDelay   time.Duration
	Factor         float64
}

const (
	DefaultRateLimitDelay = 2 * time.Second
	DefaultMaxRetries     = 4
	DefaultInitialDelay   = 500 * time.Millisecond
	DefaultBackoffFactor  = 2
)

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		RateLimitDelay: DefaultRateLimitDelay,
		MaxRetries:     DefaultMaxRetries,
		InitialDelay:   DefaultInitialDelay,
		Factor:         DefaultBackoffFactor,
	}
}

// Delay is the backoff before retry number attempt+1 (attempt starts at 0).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return time.Duration(float64(p.InitialDelay) * math.Pow(p.Factor, float64(attempt)))
}

func (p RetryPolicy) validate() error {
	switch {
	case p.MaxRetries < 0:
		return fmt.Errorf("retry policy: negative max retries %d", p.MaxRetries)
	case p.RateLimitDelay < 0 || p.InitialDelay < 0:
		return fmt.Errorf("retry policy: negative delay")
	case p.Factor < 1:
		return fmt.Errorf("retry policy: backoff factor %v below 1", p.Factor)
	}
	return nil
}

// sleepWithContext waits for the duration or returns early on context cancellation.
// Tests swap it to record delays.
var sleepWithContext = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
