package api

import "context"

// Executor is the request surface the resource helpers depend on. It
// lets tests substitute a recording fake for the network client while
// production code passes *Client.
type Executor interface {
	// Execute validates and sends a request, looping on retryable
	// failure, and returns the normalized envelope.
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Compile-time interface implementation check
var _ Executor = (*Client)(nil)
