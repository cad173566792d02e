package apierr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse turns a failure body into an *APIError. status is the HTTP status.
// An empty body yields an APIError without Service. A non-empty body that is
// not a JSON error object is reported as a decode error, not swallowed into
// an APIError.
func Parse(slurp []byte, status int) (*APIError, error) {
	trimmed := strings.TrimSpace(string(slurp))

	var se *ServiceError
	if trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &se); err != nil {
			return nil, fmt.Errorf("decode error body (status %d): %w", status, err)
		}
	}

	return &APIError{
		Status:  status,
		Service: se,
		Message: ComposeMessage(se),
		Raw:     trimmed,
	}, nil
}

// RetriesExhausted builds the error the async executor returns once a
// rate-limited call runs out of attempts.
func RetriesExhausted(status int) *APIError {
	return &APIError{
		Status:           status,
		Message:          "Rate limit exceeded after retries.",
		RetriesExhausted: true,
	}
}
