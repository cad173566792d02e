package apierr

import (
	"errors"
	"io"
	"net/http"
	"syscall"
)

// transientStatuses are the responses TaxJar documents as temporary.
var transientStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// transientCauses are low-level failures seen on dropped or refused connections.
var transientCauses = []error{
	io.EOF,
	io.ErrUnexpectedEOF,
	io.ErrClosedPipe,
	syscall.ECONNRESET,
	syscall.ECONNREFUSED,
}

// IsRetryable classifies err as transient. The executors keep their own
// retry policy; this only feeds the "retryable" attribute of retry logs.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return !apiErr.RetriesExhausted && transientStatuses[apiErr.Status]
	}

	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return true
	}
	for _, cause := range transientCauses {
		if errors.Is(err, cause) {
			return true
		}
	}

	var tErr *TransportError
	return errors.As(err, &tErr)
}

// IsRateLimited reports whether err carries HTTP 429.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
