package client

import (
	"context"
	"sync"
	"time"
)

// SleepRecorder replaces the backoff sleeper for one test and records every
// requested delay instead of waiting.
type SleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func RecordSleeps(cleanup func(func())) *SleepRecorder {
	rec := &SleepRecorder{}
	prev := sleepWithContext
	sleepWithContext = func(ctx context.Context, d time.Duration) error {
		rec.mu.Lock()
		rec.delays = append(rec.delays, d)
		rec.mu.Unlock()
		return ctx.Err()
	}
	cleanup(func() { sleepWithContext = prev })
	return rec
}

func (r *SleepRecorder) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}
