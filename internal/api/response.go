package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Header names the platform gives semantic meaning to. All lookups go
// through the lower-cased header map, so these are spelled lower-case.
const (
	headerLink       = "link"
	headerCallLimit  = "x-shopify-shop-api-call-limit"
	headerRetryAfter = "retry-after"
	headerRequestID  = "x-request-id"
	headerDeprecated = "x-shopify-api-deprecated-reason"
)

// invalidJSONKey is the sentinel key under which an unparsable body on a
// server-error response is preserved verbatim.
const invalidJSONKey = "invalid_json"

// CallLimit is the shop's REST bucket state, parsed from the
// "<used>/<bucket>" call-limit header.
type CallLimit struct {
	Used   int
	Bucket int
}

// Response is a normalized view of one HTTP reply. Header names are
// lower-cased once at construction; derived fields (pagination cursors,
// call limit, retry-after) are computed once and never recomputed.
type Response struct {
	Code    int
	Headers map[string][]string
	Body    map[string]any

	// PrevPageInfo and NextPageInfo are the page_info cursors from the
	// Link header, empty when the relation is absent.
	PrevPageInfo string
	NextPageInfo string

	// Limit is the parsed call-limit header, nil when absent or malformed.
	Limit *CallLimit

	// RetryAfter is the parsed Retry-After value in seconds, nil when
	// absent or malformed.
	RetryAfter *float64
}

// NewResponse normalizes a raw status/headers/body triple into a
// Response. An empty body becomes an empty object. A body that is not
// valid JSON is preserved under the invalid_json key when the status is
// a server error, so 502/503 HTML pages from intermediaries are not
// silently discarded; on other statuses it is dropped the same way an
// empty body is.
func NewResponse(code int, headers http.Header, body []byte) *Response {
	resp := &Response{
		Code:    code,
		Headers: lowerHeaders(headers),
		Body:    parseBody(code, body),
	}
	resp.PrevPageInfo, resp.NextPageInfo = parseLinkHeader(resp.header(headerLink))
	resp.Limit = parseCallLimit(resp.header(headerCallLimit))
	resp.RetryAfter = parseRetryAfter(resp.header(headerRetryAfter))
	return resp
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.Code >= 200 && r.Code <= 299
}

// Header returns the first value for the given header name,
// case-insensitively. Consumers never need to normalize names.
func (r *Response) Header(name string) string {
	return r.header(strings.ToLower(name))
}

// HeaderValues returns all values for the given header name in arrival
// order, case-insensitively.
func (r *Response) HeaderValues(name string) []string {
	return r.Headers[strings.ToLower(name)]
}

// RequestID returns the platform request id, empty when absent.
func (r *Response) RequestID() string {
	return r.header(headerRequestID)
}

// Deprecated reports whether the reply carried a deprecation notice.
// Header presence alone is the truth value.
func (r *Response) Deprecated() bool {
	_, ok := r.Headers[headerDeprecated]
	return ok
}

// DeprecationReason returns the deprecation header value verbatim,
// empty when the call is not deprecated.
func (r *Response) DeprecationReason() string {
	return r.header(headerDeprecated)
}

// header looks up an already-lower-cased name.
func (r *Response) header(name string) string {
	values := r.Headers[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func lowerHeaders(headers http.Header) map[string][]string {
	lowered := make(map[string][]string, len(headers))
	for name, values := range headers {
		key := strings.ToLower(name)
		lowered[key] = append(lowered[key], values...)
	}
	return lowered
}

func parseBody(code int, body []byte) map[string]any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return map[string]any{}
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil && decoded != nil {
		return decoded
	}
	if code >= 500 {
		return map[string]any{invalidJSONKey: trimmed}
	}
	return map[string]any{}
}

// parseCallLimit parses "<used>/<bucket>". Both halves must be
// non-negative integers; anything else yields nil rather than an error,
// so a malformed header never fails the whole response.
func parseCallLimit(value string) *CallLimit {
	used, bucket, found := strings.Cut(value, "/")
	if !found {
		return nil
	}
	u, err := strconv.Atoi(used)
	if err != nil || u < 0 {
		return nil
	}
	b, err := strconv.Atoi(bucket)
	if err != nil || b < 0 {
		return nil
	}
	return &CallLimit{Used: u, Bucket: b}
}

// parseRetryAfter parses the Retry-After header as floating-point
// seconds. The platform sends fractional seconds, so http.ParseTime
// style dates are not expected here.
func parseRetryAfter(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || secs < 0 {
		return nil
	}
	return &secs
}

// parseLinkHeader extracts page_info cursors from a Link header of the
// form `<url>; rel="next", <url>; rel="previous"`. Unrecognized rel
// values are ignored.
func parseLinkHeader(value string) (prev, next string) {
	if value == "" {
		return "", ""
	}
	for _, segment := range strings.Split(value, ",") {
		target, rel := parseLinkSegment(segment)
		if target == "" || rel == "" {
			continue
		}
		info := pageInfoParam(target)
		if info == "" {
			continue
		}
		switch rel {
		case "previous":
			prev = info
		case "next":
			next = info
		}
	}
	return prev, next
}

func parseLinkSegment(segment string) (target, rel string) {
	for _, part := range strings.Split(segment, ";") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "<") && strings.HasSuffix(part, ">"):
			target = strings.Trim(part, "<>")
		case strings.HasPrefix(part, "rel="):
			rel = strings.Trim(strings.TrimPrefix(part, "rel="), `"`)
		}
	}
	return target, rel
}

func pageInfoParam(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("page_info")
}
