package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bodrovis/taxjar/apierr"
)

// asyncExecutor retries every failure, rate limit or not, on an exponential
// schedule and gives up after RetryPolicy.MaxRetries retries.
type asyncExecutor struct {
	c *Client
}

func (e *asyncExecutor) Execute(ctx context.Context, req *Request, out any) error {
	enc, err := e.c.encode(req)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	policy := e.c.retry
	for retries := 0; ; retries++ {
		status, body, err := e.c.roundTrip(ctx, enc, retries+1)
		if err == nil {
			if status == http.StatusTooManyRequests {
				if retries < policy.MaxRetries {
					delay := policy.Delay(retries)
					e.c.logger.Info("rate limited, retrying", "endpoint", enc.endpoint, "delay", delay, "attempt", retries+1)
					if serr := sleepWithContext(ctx, delay); serr != nil {
						return serr
					}
					continue
				}
				err = apierr.RetriesExhausted(status)
			} else {
				err = decodeResponse(status, body, out)
				if err == nil {
					return nil
				}
			}
		}

		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if retries >= policy.MaxRetries {
			return err
		}
		delay := policy.Delay(retries)
		e.c.logger.Warn("attempt failed, retrying",
			"endpoint", enc.endpoint,
			"attempt", retries+1,
			"delay", delay,
			"retryable", apierr.IsRetryable(err),
			"error", err,
		)
		if serr := sleepWithContext(ctx, delay); serr != nil {
			return serr
		}
	}
}

// Future is the pending result of an ...Async call. The call runs on its own
// goroutine with its own retry state.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func runAsync[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await suspends until the call finishes or ctx is done. Giving up on ctx
// does not stop the underlying call; cancel the context passed to the
// ...Async method for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait blocks until the call finishes.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}
