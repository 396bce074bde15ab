package api

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable classification for scripted callers.
type ErrorCode string

const (
	// ErrBadRequest indicates a malformed request (HTTP 400).
	ErrBadRequest ErrorCode = "bad_request"
	// ErrUnauthorized indicates the access token is missing or invalid (HTTP 401).
	ErrUnauthorized ErrorCode = "unauthorized"
	// ErrForbidden indicates the token lacks the required scope (HTTP 403).
	ErrForbidden ErrorCode = "forbidden"
	// ErrNotFound indicates the requested resource does not exist (HTTP 404).
	ErrNotFound ErrorCode = "not_found"
	// ErrValidation indicates the platform rejected the payload (HTTP 422).
	ErrValidation ErrorCode = "validation_failed"
	// ErrRateLimited indicates the call-limit bucket is exhausted (HTTP 429).
	ErrRateLimited ErrorCode = "rate_limited"
	// ErrServerError indicates a platform-side failure (HTTP 5xx).
	ErrServerError ErrorCode = "server_error"
	// ErrTimeout indicates the request or its retry budget was cut off
	// by a deadline.
	ErrTimeout ErrorCode = "timeout"
	// ErrTransport indicates a network-level failure below HTTP.
	ErrTransport ErrorCode = "transport"
	// ErrUnknown indicates an unclassified error.
	ErrUnknown ErrorCode = "unknown"
)

// IsRetryable returns true if errors with this code may succeed on retry.
func (c ErrorCode) IsRetryable() bool {
	switch c {
	case ErrRateLimited, ErrServerError, ErrTimeout, ErrTransport:
		return true
	default:
		return false
	}
}

// Suggestion returns a human-readable hint for resolving this error.
func (c ErrorCode) Suggestion() string {
	switch c {
	case ErrUnauthorized:
		return "Run 'shopctl auth login' to store a valid access token"
	case ErrForbidden:
		return "Check the token's API access scopes in the shop admin"
	case ErrNotFound:
		return "Verify the resource ID exists"
	case ErrValidation:
		return "Check the input values"
	case ErrRateLimited:
		return "Wait for the call-limit bucket to drain and retry"
	case ErrBadRequest:
		return "Check the request format and parameters"
	case ErrServerError:
		return "The platform encountered an error; try again later"
	case ErrTimeout:
		return "The request timed out; check network connectivity and retry"
	case ErrTransport:
		return "Check network connectivity and the shop domain"
	default:
		return ""
	}
}

// ErrorCodeFromStatus maps an HTTP status code to an ErrorCode.
func ErrorCodeFromStatus(statusCode int) ErrorCode {
	switch statusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 422:
		return ErrValidation
	case 429:
		return ErrRateLimited
	default:
		if statusCode >= 500 && statusCode < 600 {
			return ErrServerError
		}
		return ErrUnknown
	}
}

// Classify maps any error from this package into an ErrorCode.
func Classify(err error) ErrorCode {
	if err == nil {
		return ErrUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}
	if IsTransportError(err) {
		return ErrTransport
	}
	if status := ErrorStatus(err); status != 0 {
		return ErrorCodeFromStatus(status)
	}
	if IsRequestError(err) {
		return ErrBadRequest
	}
	return ErrUnknown
}

// StructuredError provides machine-readable error information for
// scripted callers and agents.
type StructuredError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	Suggestion string         `json:"suggestion,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
}

func (e *StructuredError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Structure converts any error from this package into a
// StructuredError carrying status and request-id context when known.
func Structure(err error) *StructuredError {
	code := Classify(err)
	structured := &StructuredError{
		Code:       code,
		Message:    err.Error(),
		Retryable:  code.IsRetryable(),
		Suggestion: code.Suggestion(),
	}
	ctx := map[string]any{}
	if status := ErrorStatus(err); status != 0 {
		ctx["status_code"] = status
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.RequestID != "" {
		ctx["request_id"] = respErr.RequestID
	}
	var retriesErr *MaxRetriesError
	if errors.As(err, &retriesErr) {
		ctx["tries"] = retriesErr.Tries
		if retriesErr.RequestID != "" {
			ctx["request_id"] = retriesErr.RequestID
		}
	}
	if len(ctx) > 0 {
		structured.Context = ctx
	}
	return structured
}
