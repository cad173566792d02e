package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingToken is returned by client construction when the API token is blank.
	ErrMissingToken = errors.New("missing api token: please provide a TaxJar API key")

	// ErrMissingTransactionID is returned before any network call when an order
	// or refund operation has no transaction id.
	ErrMissingTransactionID = errors.New("missing transaction id: transaction ID cannot be null or an empty string")

	// ErrMissingCustomerID is the customer counterpart of ErrMissingTransactionID.
	ErrMissingCustomerID = errors.New("missing customer id: customer ID cannot be null or an empty string")

	// ErrMissingZip is returned before any network call when a rate lookup has no postal code.
	ErrMissingZip = errors.New("missing zip: zip cannot be null or an empty string")

	// ErrNoContent means the transport handed back a response without a body.
	ErrNoContent = errors.New("no content found in response")

	// ErrRateLimited matches any *APIError carrying HTTP 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrRetriesExhausted matches the *APIError produced when the async
	// executor gives up on a rate-limited request.
	ErrRetriesExhausted = errors.New("rate limit exceeded after retries")
)

// ServiceError is the error payload TaxJar sends in a failure response body.
// Fields the service omits stay nil.
type ServiceError struct {
	Error      *string `json:"error,omitempty"`
	Detail     *string `json:"detail,omitempty"`
	StatusCode *string `json:"status,omitempty"`
}

// APIError is a failed API call.
type APIError struct {
	Status           int           // HTTP status from the transport
	Service          *ServiceError // parsed body; nil when retries ran out
	Message          string        // "{error} - {detail}"
	RetriesExhausted bool
	Raw              string // raw (trimmed) body
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Is lets errors.Is match the rate-limit sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case ErrRetriesExhausted:
		return e.RetriesExhausted
	}
	return false
}

// TransportError wraps a failure below HTTP: DNS, connect, TLS, timeouts.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ComposeMessage renders "{error} - {detail}" using empty strings for missing parts.
func ComposeMessage(se *ServiceError) string {
	var label, detail string
	if se != nil {
		if se.Error != nil {
			label = *se.Error
		}
		if se.Detail != nil {
			detail = *se.Detail
		}
	}
	return label + " - " + detail
}
