package apierr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bodrovis/taxjar/apierr"
)

type timeoutErr bool

func (t timeoutErr) Error() string { return "dial tcp: i/o timeout" }
func (t timeoutErr) Timeout() bool { return bool(t) }

func TestIsRetryable(t *testing.T) {
	transport := &apierr.TransportError{Method: http.MethodPost, Endpoint: "taxes", Err: errors.New("dial")}

	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":               {nil, false},
		"deadline":          {context.DeadlineExceeded, true},
		"wrapped deadline":  {fmt.Errorf("show order: %w", context.DeadlineExceeded), true},
		"canceled":          {context.Canceled, false},
		"net timeout":       {timeoutErr(true), true},
		"net non-timeout":   {timeoutErr(false), false},
		"conn reset":        {fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		"transport":         {transport, true},
		"wrapped transport": {fmt.Errorf("list orders: %w", transport), true},
		"missing id":        {apierr.ErrMissingTransactionID, false},
		"missing zip":       {apierr.ErrMissingZip, false},
		"plain error":       {errors.New("encode params"), false},
		"exhausted 429":     {apierr.RetriesExhausted(http.StatusTooManyRequests), false},
		"wrapped 503":       {fmt.Errorf("taxes: %w", &apierr.APIError{Status: http.StatusServiceUnavailable}), true},
		"unprocessable 422": {&apierr.APIError{Status: http.StatusUnprocessableEntity}, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, apierr.IsRetryable(tc.err))
		})
	}
}

func TestIsRetryable_Statuses(t *testing.T) {
	transient := []int{408, 429, 500, 502, 503, 504}
	for _, st := range transient {
		assert.True(t, apierr.IsRetryable(&apierr.APIError{Status: st}), "status %d", st)
	}
	permanent := []int{400, 401, 403, 404, 405, 406, 410, 422}
	for _, st := range permanent {
		assert.False(t, apierr.IsRetryable(&apierr.APIError{Status: st}), "status %d", st)
	}
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, apierr.IsRateLimited(fmt.Errorf("rates: %w", &apierr.APIError{Status: http.StatusTooManyRequests})))
	assert.True(t, apierr.IsRateLimited(apierr.RetriesExhausted(http.StatusTooManyRequests)))
	assert.False(t, apierr.IsRateLimited(&apierr.APIError{Status: http.StatusServiceUnavailable}))
	assert.False(t, apierr.IsRateLimited(nil))
}
