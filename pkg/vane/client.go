package vane

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"
	"time"
)

var supportedMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"HEAD":    true,
	"OPTIONS": true,
}

// Client is the long-lived entry point that turns a Request into a
// Response or a typed error. It owns one frozen Config and one Transport
// handle and is safe for concurrent use once constructed.
type Client struct {
	config    Config
	transport Transport
	codec     Codec
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithTransport swaps the transport capability, e.g. for tests or host
// bindings that bring their own connection layer.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithCodec swaps the body codec used by WithJSONBody and ResponseJSON.
func WithCodec(codec Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// NewClient constructs a ready-to-use Client from a frozen Config. A
// malformed base URL is rejected here, before any request is made.
func NewClient(config Config, opts ...Option) (*Client, error) {
	if config.baseURL != "" {
		u, err := url.Parse(config.baseURL)
		if err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("invalid base URL %q", config.baseURL), Err: err}
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, &ConfigError{Message: fmt.Sprintf("base URL %q must be absolute", config.baseURL)}
		}
	}

	client := &Client{
		config:    config,
		transport: newNetTransport(),
		codec:     JSONCodec{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Config returns the client's frozen configuration snapshot.
func (c *Client) Config() Config {
	return c.config
}

// Execute resolves the request against the configuration and performs
// one blocking exchange. A non-2xx status is a normal Response here;
// only transport-level failures and invalid input produce errors.
func (c *Client) Execute(req Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if !supportedMethods[method] {
		return nil, &ConfigError{Message: fmt.Sprintf("unsupported method %q", req.Method)}
	}

	target, err := c.resolveURL(req.URL)
	if err != nil {
		return nil, err
	}
	target = appendQuery(target, req.QueryParams)

	headers := c.mergeHeaders(req.Headers)

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.config.timeout
	}

	follow := c.config.followRedirects
	if req.FollowRedirects != nil {
		follow = *req.FollowRedirects
	}

	raw, err := c.transport.Perform(method, target, headers, req.Body, timeout, follow)
	if err != nil {
		return nil, classifyTransportError(target, timeout, err)
	}

	return &Response{
		StatusCode: raw.StatusCode,
		Headers:    raw.Headers,
		Body:       raw.Body,
		URL:        raw.URL,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(url string) (*Response, error) {
	return c.Execute(Request{Method: "GET", URL: url})
}

// Post performs a POST request with a raw body.
func (c *Client) Post(url string, body []byte) (*Response, error) {
	return c.Execute(Request{Method: "POST", URL: url, Body: body})
}

// Put performs a PUT request with a raw body.
func (c *Client) Put(url string, body []byte) (*Response, error) {
	return c.Execute(Request{Method: "PUT", URL: url, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(url string) (*Response, error) {
	return c.Execute(Request{Method: "DELETE", URL: url})
}

// Patch performs a PATCH request with a raw body.
func (c *Client) Patch(url string, body []byte) (*Response, error) {
	return c.Execute(Request{Method: "PATCH", URL: url, Body: body})
}

// Head performs a HEAD request.
func (c *Client) Head(url string) (*Response, error) {
	return c.Execute(Request{Method: "HEAD", URL: url})
}

// resolveURL returns the request URL as-is when it is absolute, and
// otherwise joins it to the base URL with exactly one separator between
// them.
func (c *Client) resolveURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", &ConfigError{Message: fmt.Sprintf("invalid URL %q", raw), Err: err}
	}
	if u.IsAbs() {
		return raw, nil
	}
	if c.config.baseURL == "" {
		return "", &ConfigError{Message: fmt.Sprintf("relative URL %q requires a base URL", raw)}
	}
	if raw == "" {
		return c.config.baseURL, nil
	}
	return strings.TrimRight(c.config.baseURL, "/") + "/" + strings.TrimLeft(raw, "/"), nil
}

// mergeHeaders overlays request headers onto the configured defaults;
// the request wins on conflict. The user agent fills in only when
// neither side sets one.
func (c *Client) mergeHeaders(reqHeaders map[string]string) map[string]string {
	merged := make(map[string]string, len(c.config.defaultHeaders)+len(reqHeaders)+1)
	for k, v := range c.config.defaultHeaders {
		merged[k] = v
	}
	for k, v := range reqHeaders {
		merged[k] = v
	}
	if c.config.userAgent != "" && !hasHeader(merged, "User-Agent") {
		merged["User-Agent"] = c.config.userAgent
	}
	return merged
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// appendQuery percent-encodes params and appends them to target. An
// existing query string is preserved in place; new parameters follow it
// in sorted key order.
func appendQuery(target string, params map[string]string) string {
	if len(params) == 0 {
		return target
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}

	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + strings.Join(pairs, "&")
}

// classifyTransportError maps a transport failure into the error
// taxonomy. Typed errors from custom transports pass through untouched.
func classifyTransportError(target string, timeout time.Duration, err error) error {
	var (
		configErr  *ConfigError
		networkErr *NetworkError
		timeoutErr *TimeoutError
	)
	switch {
	case errors.As(err, &configErr), errors.As(err, &networkErr), errors.As(err, &timeoutErr):
		return err
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{URL: target, Timeout: timeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: target, Timeout: timeout, Err: err}
	}
	return &NetworkError{URL: target, Err: err}
}
