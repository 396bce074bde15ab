package api

import (
	"fmt"
	"net/http"
)

// BodyType tags the serialization of a request body.
type BodyType string

const (
	// BodyJSON serializes the body as application/json.
	BodyJSON BodyType = "application/json"
	// BodyGraphQL sends the body verbatim as a GraphQL document.
	BodyGraphQL BodyType = "application/graphql"
)

// Request describes one HTTP call against the Admin API. It is a value
// object: build it, validate it, execute it, discard it. The zero value
// is not usable; at minimum Method and Path must be set.
type Request struct {
	// Method is one of GET, POST, PUT, DELETE.
	Method string
	// Path is relative to the versioned base path, e.g. "/products.json".
	Path string
	// Body is any JSON-marshalable value (or a string/[]byte document
	// for BodyGraphQL). Requires BodyType when non-nil.
	Body any
	// BodyType tags how Body is serialized and which Content-Type is sent.
	BodyType BodyType
	// Query is appended as URL query parameters. Unordered;
	// last-write-wins on duplicate keys per map semantics.
	Query map[string]string
	// Headers is merged over the client defaults; the request wins on
	// conflict.
	Headers map[string]string
	// Tries is the total attempt budget. Zero means 1 (no retry).
	Tries int
}

// tries returns the effective attempt budget.
func (r *Request) tries() int {
	if r.Tries < 1 {
		return 1
	}
	return r.Tries
}

// Validate checks the request invariants. It is called by Execute before
// any network I/O; callers constructing requests by hand get the exact
// same checks as the resource helpers.
func (r *Request) Validate() error {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return &RequestError{Reason: fmt.Sprintf("unsupported HTTP method %q", r.Method)}
	}
	if r.Path == "" {
		return &RequestError{Reason: "request path is empty"}
	}
	if r.Body != nil && r.BodyType == "" {
		return &RequestError{Reason: "request has a body but no body type"}
	}
	if r.Body == nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		return &RequestError{Reason: fmt.Sprintf("%s request requires a body", r.Method)}
	}
	if r.Tries < 0 {
		return &RequestError{Reason: "tries must be positive"}
	}
	return nil
}
