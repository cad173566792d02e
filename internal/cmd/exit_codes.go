package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bodrovis/taxjar/apierr"
	"github.com/bodrovis/taxjar/internal/config"
)

const (
	exitOK          = 0
	exitGeneric     = 1
	exitUsage       = 2
	exitAPI         = 3
	exitRateLimited = 4
	exitTransport   = 5
)

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}

	var (
		usage     *usageError
		apiErr    *apierr.APIError
		transport *apierr.TransportError
	)
	switch {
	case errors.As(err, &usage),
		errors.Is(err, config.ErrNotConfigured),
		errors.Is(err, apierr.ErrMissingToken),
		errors.Is(err, apierr.ErrMissingTransactionID),
		errors.Is(err, apierr.ErrMissingCustomerID),
		errors.Is(err, apierr.ErrMissingZip):
		return exitUsage
	case errors.Is(err, apierr.ErrRateLimited):
		return exitRateLimited
	case errors.As(err, &apiErr):
		return exitAPI
	case errors.As(err, &transport), errors.Is(err, apierr.ErrNoContent):
		return exitTransport
	}
	return exitGeneric
}
