package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bodrovis/taxjar/apierr"
)

// Executor sends a Request and decodes a successful JSON response into out.
// Failures come back as *apierr.APIError, *apierr.TransportError,
// apierr.ErrNoContent or a decode error.
type Executor interface {
	Execute(ctx context.Context, req *Request, out any) error
}

// syncExecutor blocks on the transport and retries a 429 exactly once.
type syncExecutor struct {
	c *Client
}

func (e *syncExecutor) Execute(ctx context.Context, req *Request, out any) error {
	enc, err := e.c.encode(req)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	status, body, err := e.c.roundTrip(ctx, enc, 1)
	if status == http.StatusTooManyRequests {
		delay := e.c.retry.RateLimitDelay
		e.c.logger.Info("rate limited, retrying", "endpoint", enc.endpoint, "delay", delay)
		if serr := sleepWithContext(ctx, delay); serr != nil {
			return serr
		}
		status, body, err = e.c.roundTrip(ctx, enc, 2)
	}
	if err != nil {
		return err
	}
	return decodeResponse(status, body, out)
}

// roundTrip performs one attempt. A non-nil error with a non-zero status means
// the transport returned no body at all. An empty body (http.NoBody) is still
// a body and is classified by status.
func (c *Client) roundTrip(ctx context.Context, enc *encodedRequest, attempt int) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	actx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := enc.httpRequest(actx)
	if err != nil {
		return 0, nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", enc.method, "endpoint", enc.endpoint, "attempt", attempt, "error", err)
		return 0, nil, &apierr.TransportError{Method: enc.method, Endpoint: enc.endpoint, Err: err}
	}
	if resp.Body == nil {
		c.logger.Debug("request complete without body", "method", enc.method, "endpoint", enc.endpoint, "status", resp.StatusCode, "attempt", attempt)
		return resp.StatusCode, nil, apierr.ErrNoContent
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &apierr.TransportError{Method: enc.method, Endpoint: enc.endpoint, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug("request complete",
		"method", enc.method,
		"endpoint", enc.endpoint,
		"status", resp.StatusCode,
		"attempt", attempt,
		"duration", time.Since(start),
	)
	return resp.StatusCode, body, nil
}

// decodeResponse classifies a response that arrived with a body.
func decodeResponse(status int, body []byte, out any) error {
	if status >= http.StatusBadRequest {
		apiErr, err := apierr.Parse(body, status)
		if err != nil {
			return err
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
