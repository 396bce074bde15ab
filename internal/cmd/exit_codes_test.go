package cmd

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/pflag"

	"github.com/shopctl/shopctl/internal/api"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitOK},
		{name: "help", err: pflag.ErrHelp, want: exitOK},
		{name: "generic", err: errors.New("boom"), want: exitGeneric},
		{name: "unauthorized", err: &api.ResponseError{Code: 401, Summary: "Unauthorized"}, want: exitAuth},
		{name: "forbidden", err: &api.ResponseError{Code: 403, Summary: "Forbidden"}, want: exitForbidden},
		{name: "not found", err: &api.ResponseError{Code: 404, Summary: "Not Found"}, want: exitNotFound},
		{name: "rate limited", err: &api.ResponseError{Code: 429, Summary: "Too Many Requests"}, want: exitRateLimited},
		{name: "server error", err: &api.ResponseError{Code: 500, Summary: "Internal Server Error"}, want: exitServer},
		{name: "validation", err: &api.ResponseError{Code: 422, Summary: "Unprocessable Entity"}, want: exitUsage},
		{name: "retries exhausted on 429", err: &api.MaxRetriesError{Code: 429, Tries: 3, Summary: "Too Many Requests"}, want: exitRateLimited},
		{name: "wrapped response error", err: fmt.Errorf("listing products: %w", &api.ResponseError{Code: 404, Summary: "Not Found"}), want: exitNotFound},
		{name: "transport", err: &api.TransportError{Err: errors.New("connection refused")}, want: exitNetwork},
		{name: "context deadline", err: context.DeadlineExceeded, want: exitNetwork},
		{name: "unknown flag", err: errors.New("unknown flag: --bogus"), want: exitUsage},
		{name: "missing flag", err: errors.New("--title is required"), want: exitUsage},
		{name: "handled keeps code", err: &handledError{err: errors.New("boom"), exitCode: exitServer}, want: exitServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	if !isNetworkError(errors.New("dial tcp: connection refused")) {
		t.Error("connection refused should be a network error")
	}
	if !isNetworkError(context.Canceled) {
		t.Error("context cancellation should be a network error")
	}
	if isNetworkError(errors.New("boom")) {
		t.Error("plain error should not be a network error")
	}
	if isNetworkError(nil) {
		t.Error("nil should not be a network error")
	}
}

func TestHandledErrorUnwrapsToSentinel(t *testing.T) {
	err := &handledError{err: errors.New("boom"), exitCode: exitGeneric}
	if !errors.Is(err, errAlreadyHandled) {
		t.Error("handledError should unwrap to errAlreadyHandled")
	}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want boom", err.Error())
	}
}
