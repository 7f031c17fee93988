package vane

import (
	"fmt"
	"time"
)

// Request is a snapshot of one fully specified call. Once passed to
// Execute it is treated as immutable; the client never mutates it and a
// Request is not reused across executions.
type Request struct {
	// URL is absolute, or relative to the client's base URL.
	URL    string
	Method string

	Headers     map[string]string
	QueryParams map[string]string

	// Body is the raw request body; nil means no body.
	Body []byte

	// Timeout overrides the configured timeout when positive.
	Timeout time.Duration

	// FollowRedirects overrides the configured redirect policy when
	// non-nil.
	FollowRedirects *bool
}

// RequestBuilder accumulates the fields of one Request through chained
// calls and hands the snapshot to its client on a terminal call. A
// builder belongs to a single logical call site: it is not safe for
// concurrent mutation and yields exactly one Request.
type RequestBuilder struct {
	client  *Client
	method  string
	url     string
	headers map[string]string
	query   map[string]string
	body    []byte
	timeout time.Duration
	follow  *bool
	err     error
}

// NewRequest starts a builder for one request against this client.
func (c *Client) NewRequest(method, url string) *RequestBuilder {
	return &RequestBuilder{
		client:  c,
		method:  method,
		url:     url,
		headers: make(map[string]string),
		query:   make(map[string]string),
	}
}

// WithHeader upserts a single header.
func (b *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	b.headers[key] = value
	return b
}

// WithHeaders replaces the builder's header map wholesale.
func (b *RequestBuilder) WithHeaders(headers map[string]string) *RequestBuilder {
	b.headers = make(map[string]string, len(headers))
	for k, v := range headers {
		b.headers[k] = v
	}
	return b
}

// WithQueryParam upserts a single query parameter.
func (b *RequestBuilder) WithQueryParam(key, value string) *RequestBuilder {
	b.query[key] = value
	return b
}

// WithQueryParams replaces the builder's query parameter map wholesale.
func (b *RequestBuilder) WithQueryParams(params map[string]string) *RequestBuilder {
	b.query = make(map[string]string, len(params))
	for k, v := range params {
		b.query[k] = v
	}
	return b
}

// WithBody sets the raw request body.
func (b *RequestBuilder) WithBody(body []byte) *RequestBuilder {
	b.body = body
	return b
}

// WithJSONBody encodes value with the client's codec, sets it as the
// body, and overwrites the Content-Type header with application/json.
// An encode failure is recorded and surfaces as a SerializationError
// from the terminal call, before any network I/O.
func (b *RequestBuilder) WithJSONBody(value interface{}) *RequestBuilder {
	data, err := b.client.codec.Encode(value)
	if err != nil {
		b.fail(&SerializationError{Err: err})
		return b
	}
	b.body = data
	b.headers["Content-Type"] = "application/json"
	return b
}

// WithTimeout overrides the configured timeout for this request. A
// negative timeout is rejected and surfaces from the terminal call.
func (b *RequestBuilder) WithTimeout(timeout time.Duration) *RequestBuilder {
	if timeout < 0 {
		b.fail(&ConfigError{Message: fmt.Sprintf("negative timeout %v", timeout)})
		return b
	}
	b.timeout = timeout
	return b
}

// WithFollowRedirects overrides the configured redirect policy for this
// request.
func (b *RequestBuilder) WithFollowRedirects(follow bool) *RequestBuilder {
	b.follow = &follow
	return b
}

// fail records the first builder-level error; later calls keep it.
func (b *RequestBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// build freezes the accumulated fields into a Request snapshot.
func (b *RequestBuilder) build() Request {
	return Request{
		URL:             b.url,
		Method:          b.method,
		Headers:         b.headers,
		QueryParams:     b.query,
		Body:            b.body,
		Timeout:         b.timeout,
		FollowRedirects: b.follow,
	}
}

// Execute snapshots the request and runs it through the client. A
// non-2xx response is returned as a normal Response, not an error.
func (b *RequestBuilder) Execute() (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.client.Execute(b.build())
}

// ResponseJSON executes the request, requires a successful status, and
// decodes the body into v with the client's codec. A non-2xx status
// yields an HTTPError carrying the response; the body is not decoded in
// that case.
func (b *RequestBuilder) ResponseJSON(v interface{}) error {
	resp, err := b.Execute()
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &HTTPError{StatusCode: resp.StatusCode, Response: resp}
	}
	if err := b.client.codec.Decode(resp.Body, v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// ResponseString executes the request and returns the body as text,
// failing with a DecodeError when the body is not valid UTF-8.
func (b *RequestBuilder) ResponseString() (string, error) {
	resp, err := b.Execute()
	if err != nil {
		return "", err
	}
	return resp.String()
}
