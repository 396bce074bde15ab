package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/shopctl/shopctl/internal/debug"
)

const (
	DefaultTimeout = 30 * time.Second

	// DefaultAPIVersion is the Admin API version used when the caller
	// does not pin one.
	DefaultAPIVersion = "2024-07"

	libraryName    = "shopctl"
	libraryVersion = "0.4.0"
)

// Client executes requests against one shop's Admin API. Its
// configuration is immutable after construction, so a single client is
// safe to share across goroutines; the engine itself holds no mutable
// state between calls.
type Client struct {
	// ShopDomain is the myshopify domain, e.g. "example.myshopify.com".
	ShopDomain string
	// AccessToken is the Admin API access token sent on every call.
	AccessToken string
	// APIVersion pins the versioned base path, e.g. "2024-07".
	APIVersion string
	// HostOverride routes requests through a proxy host. When set, the
	// request URL uses the override and a Host header carries the true
	// shop domain.
	HostOverride string
	// UserAgentPrefix is prepended to the library's User-Agent string.
	UserAgentPrefix string

	HTTP        *http.Client
	RetryConfig RetryConfig

	// scheme overrides https for tests against httptest servers.
	scheme string
}

// New creates a client for one shop.
func New(shopDomain, token string) *Client {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12

	return &Client{
		ShopDomain:  shopDomain,
		AccessToken: token,
		APIVersion:  DefaultAPIVersion,
		RetryConfig: DefaultRetryConfig(),
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
	}
}

// SetHostOverride routes requests through an alternate host. A scheme
// prefix is honored, so plain-HTTP targets work for local proxies.
func (c *Client) SetHostOverride(raw string) {
	if scheme, host, ok := strings.Cut(raw, "://"); ok {
		c.scheme = scheme
		c.HostOverride = host
		return
	}
	c.HostOverride = raw
}

// UserAgent returns the User-Agent string sent on every call, of the
// form "<prefix> | shopctl v<version> | Go/<goversion>".
func (c *Client) UserAgent() string {
	agent := fmt.Sprintf("%s v%s | %s", libraryName, libraryVersion, runtime.Version())
	if c.UserAgentPrefix != "" {
		agent = c.UserAgentPrefix + " | " + agent
	}
	return agent
}

// basePath returns the versioned Admin API prefix.
func (c *Client) basePath() string {
	version := c.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return "/admin/api/" + version
}

// requestURL composes scheme, host, base path, request path, and query
// parameters into the final URL.
func (c *Client) requestURL(req *Request) string {
	host := c.ShopDomain
	if c.HostOverride != "" {
		host = c.HostOverride
	}
	path := req.Path
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	scheme := c.scheme
	if scheme == "" {
		scheme = "https"
	}
	full := scheme + "://" + host + c.basePath() + path
	if len(req.Query) == 0 {
		return full
	}
	query := url.Values{}
	for key, value := range req.Query {
		query.Set(key, value)
	}
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return full + separator + query.Encode()
}

// mergedHeaders builds the final header set: client defaults first, a
// Content-Type derived from the body type when a body is present, and
// the request's extra headers last so the caller always wins.
func (c *Client) mergedHeaders(req *Request) http.Header {
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", c.UserAgent())
	if c.AccessToken != "" {
		headers.Set("X-Shopify-Access-Token", c.AccessToken)
	}
	if c.HostOverride != "" {
		headers.Set("Host", c.ShopDomain)
	}
	if req.Body != nil {
		headers.Set("Content-Type", string(req.BodyType))
	}
	for name, value := range req.Headers {
		headers.Set(name, value)
	}
	return headers
}

func serializeBody(req *Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	if req.BodyType == BodyGraphQL {
		switch doc := req.Body.(type) {
		case string:
			return []byte(doc), nil
		case []byte:
			return doc, nil
		default:
			return nil, &RequestError{Reason: "GraphQL body must be a string document"}
		}
	}
	encoded, err := json.Marshal(req.Body)
	if err != nil {
		return nil, &RequestError{Reason: fmt.Sprintf("body is not JSON-marshalable: %v", err)}
	}
	return encoded, nil
}

// Execute validates the request, sends it, and loops on retryable
// failure up to the request's attempt budget.
//
// Classification per attempt: transport failures propagate immediately
// and are never retried here; 2xx returns the envelope; 429 and 500
// are retryable; every other status is terminal on the spot regardless
// of remaining budget. A retryable status on the final attempt becomes
// a ResponseError when the budget was 1 and a MaxRetriesError
// otherwise. The inter-attempt sleep is the 429's Retry-After when
// present, else the configured fixed wait; ctx cancellation aborts the
// sleep and each in-flight attempt.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := serializeBody(req)
	if err != nil {
		return nil, err
	}

	reqURL := c.requestURL(req)
	headers := c.mergedHeaders(req)
	tries := req.tries()

	for attempt := 1; ; attempt++ {
		resp, err := c.send(ctx, req.Method, reqURL, headers, body)
		if err != nil {
			if debug.Enabled(ctx) {
				slog.Debug("request failed", "method", req.Method, "url", reqURL, "attempt", attempt, "error", err)
			}
			return nil, err
		}
		if debug.Enabled(ctx) {
			slog.Debug("request complete", "method", req.Method, "url", reqURL, "status", resp.Code, "attempt", attempt)
		}

		if resp.Success() {
			return resp, nil
		}
		if !retryable(resp.Code) {
			return nil, responseToError(resp, tries, false)
		}
		if attempt >= tries {
			return nil, responseToError(resp, tries, tries > 1)
		}

		delay := c.RetryConfig.retryDelay(resp)
		slog.Info("retrying request", "status", resp.Code, "delay", delay, "attempt", attempt)
		if err := sleepWithContext(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// send issues one HTTP attempt and normalizes the reply.
func (c *Client) send(ctx context.Context, method, reqURL string, headers http.Header, body []byte) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, &RequestError{Reason: fmt.Sprintf("failed to create request: %v", err)}
	}
	for name, values := range headers {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	// net/http takes the Host from the Host field, not the header map.
	if host := headers.Get("Host"); host != "" {
		httpReq.Host = host
	}

	httpResp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	respBody, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return NewResponse(httpResp.StatusCode, httpResp.Header, respBody), nil
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, result any) (*Response, error) {
	return c.doJSON(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, result)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, result any) (*Response, error) {
	return c.doJSON(ctx, &Request{Method: http.MethodPost, Path: path, Body: body, BodyType: BodyJSON}, result)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result any) (*Response, error) {
	return c.doJSON(ctx, &Request{Method: http.MethodPut, Path: path, Body: body, BodyType: BodyJSON}, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.doJSON(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}

// doJSON executes the request and, when result is non-nil, re-decodes
// the envelope body into it.
func (c *Client) doJSON(ctx context.Context, req *Request, result any) (*Response, error) {
	resp, err := c.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if result != nil && len(resp.Body) > 0 {
		if err := resp.Decode(result); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// Decode re-marshals the parsed body into a typed value. The body was
// already validated as JSON at envelope construction, so failures here
// mean the target type does not fit the payload.
func (r *Response) Decode(result any) error {
	encoded, err := json.Marshal(r.Body)
	if err != nil {
		return fmt.Errorf("unexpected API response format: %w", err)
	}
	if err := json.Unmarshal(encoded, result); err != nil {
		return fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
	}
	return nil
}
