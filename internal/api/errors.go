package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// RequestError reports an Outbound Request that violates an invariant.
// It is always returned before any network I/O and indicates a
// programming bug in the caller, not a runtime condition.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// ResponseError is a terminal non-2xx reply: either a status outside
// the retryable set, or a retryable status received when retries were
// never enabled (tries == 1).
type ResponseError struct {
	Code      int
	Summary   string
	RequestID string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Code, e.Summary)
}

// MaxRetriesError signals that a retryable status (429 or 500)
// persisted across the caller's full attempt budget. It is distinct
// from ResponseError so callers can tell configured-retry-failed apart
// from never-retried.
type MaxRetriesError struct {
	Code      int
	Tries     int
	Summary   string
	RequestID string
}

func (e *MaxRetriesError) Error() string {
	return fmt.Sprintf("API error (status %d) after %d attempts: %s", e.Code, e.Tries, e.Summary)
}

// PathError reports that no path template matched an operation and the
// identifiers the caller supplied. Always local, no I/O performed.
type PathError struct {
	Resource  string
	Operation Operation
	IDs       []string
}

func (e *PathError) Error() string {
	ids := append([]string(nil), e.IDs...)
	sort.Strings(ids)
	if len(ids) == 0 {
		return fmt.Sprintf("no %s path for operation %q without identifiers", e.Resource, e.Operation)
	}
	return fmt.Sprintf("no %s path for operation %q with identifiers [%s]", e.Resource, e.Operation, strings.Join(ids, ", "))
}

// TransportError wraps a failure below the HTTP semantics layer (DNS,
// connection, TLS). The retry loop never retries these; an outer
// policy, if any, is responsible.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRequestError checks if the error is a request validation error.
func IsRequestError(err error) bool {
	var e *RequestError
	return errors.As(err, &e)
}

// IsResponseError checks if the error is a terminal response error.
func IsResponseError(err error) bool {
	var e *ResponseError
	return errors.As(err, &e)
}

// IsMaxRetriesError checks if the error signals an exhausted retry budget.
func IsMaxRetriesError(err error) bool {
	var e *MaxRetriesError
	return errors.As(err, &e)
}

// IsTransportError checks if the error is a transport-level failure.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsNotFoundError checks if the error is a 404 response.
func IsNotFoundError(err error) bool {
	var e *ResponseError
	return errors.As(err, &e) && e.Code == 404
}

// ErrorStatus returns the HTTP status carried by a response or
// max-retries error, 0 otherwise.
func ErrorStatus(err error) int {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Code
	}
	var retriesErr *MaxRetriesError
	if errors.As(err, &retriesErr) {
		return retriesErr.Code
	}
	return 0
}

// errorReferenceFormat embeds the request id in every error summary so
// operators have something to quote at platform support.
const errorReferenceFormat = "If you report this error, please include this id: %s."

// responseSummary serializes the error-bearing parts of an envelope
// body into a stable, greppable JSON object. The summary carries the
// body's "errors" and "error" fields when present, "error_description"
// only alongside "error", and an "error_reference" built from the
// request id. Both terminal and retry-exhausted failures go through
// this one function so the two read identically in logs.
func responseSummary(resp *Response) string {
	summary := map[string]any{}
	if v, ok := resp.Body["errors"]; ok {
		summary["errors"] = v
	}
	if v, ok := resp.Body["error"]; ok {
		summary["error"] = v
		if desc, ok := resp.Body["error_description"]; ok {
			summary["error_description"] = desc
		}
	}
	if id := resp.RequestID(); id != "" {
		summary["error_reference"] = fmt.Sprintf(errorReferenceFormat, id)
	}
	encoded, err := json.Marshal(summary)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

// responseToError classifies a non-2xx envelope into the error family.
// exhausted is true when a retryable status survived a budget larger
// than one attempt.
func responseToError(resp *Response, tries int, exhausted bool) error {
	summary := responseSummary(resp)
	if exhausted {
		return &MaxRetriesError{
			Code:      resp.Code,
			Tries:     tries,
			Summary:   summary,
			RequestID: resp.RequestID(),
		}
	}
	return &ResponseError{
		Code:      resp.Code,
		Summary:   summary,
		RequestID: resp.RequestID(),
	}
}
