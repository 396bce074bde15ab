package cmd

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/spf13/pflag"

	"github.com/shopctl/shopctl/internal/api"
)

const (
	exitOK          = 0
	exitGeneric     = 1
	exitUsage       = 2
	exitAuth        = 3
	exitNotFound    = 4
	exitForbidden   = 5
	exitRateLimited = 6
	exitServer      = 7
	exitNetwork     = 8
)

// classifiedExits maps API error classes to process exit codes. Classes
// missing here fall through to the usage/network heuristics.
var classifiedExits = map[api.ErrorCode]int{
	api.ErrUnauthorized: exitAuth,
	api.ErrForbidden:    exitForbidden,
	api.ErrNotFound:     exitNotFound,
	api.ErrRateLimited:  exitRateLimited,
	api.ErrServerError:  exitServer,
	api.ErrTimeout:      exitNetwork,
	api.ErrTransport:    exitNetwork,
	api.ErrBadRequest:   exitUsage,
	api.ErrValidation:   exitUsage,
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}

	// Bulk operations carry their exit code on the wrapper.
	if handled, ok := err.(*handledError); ok {
		if handled.exitCode != 0 {
			return handled.exitCode
		}
		err = handled.err
	}

	if code, ok := classifiedExits[api.Classify(err)]; ok {
		return code
	}
	switch {
	case isUsageError(err):
		return exitUsage
	case isNetworkError(err):
		return exitNetwork
	default:
		return exitGeneric
	}
}

// usagePhrases are substrings of cobra/pflag parse failures and our own
// flag validation messages.
var usagePhrases = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"flag needs an argument",
	"requires at least",
	"requires exactly",
	"invalid argument",
	"invalid value",
	"must be",
	"is required",
}

func isUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range usagePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{"connection refused", "no such host", "tls", "i/o timeout", "timeout"} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
