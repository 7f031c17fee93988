package vane

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout applies when neither the configuration nor the request
// sets one.
const DefaultTimeout = 30 * time.Second

const maxRedirects = 10

// RawResponse is the transport-level result of one exchange: status,
// flattened headers, fully buffered body, and the final URL.
type RawResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	URL        string
}

// Transport performs one blocking network exchange given a fully
// resolved request. Implementations own their connection pooling and
// must be safe for concurrent use; the client does not re-specify
// either.
type Transport interface {
	Perform(method, url string, headers map[string]string, body []byte, timeout time.Duration, followRedirects bool) (*RawResponse, error)
}

// netTransport is the default Transport, backed by net/http. A single
// http.Transport carries the connection pool; a lightweight http.Client
// is assembled per call so the redirect policy can vary per request
// without touching shared state.
type netTransport struct {
	pool *http.Transport
}

func newNetTransport() *netTransport {
	return &netTransport{
		pool: &http.Transport{
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

func (t *netTransport) Perform(method, url string, headers map[string]string, body []byte, timeout time.Duration, followRedirects bool) (*RawResponse, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	// The context deadline both enforces the effective timeout and
	// aborts the in-flight exchange when it elapses.
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req = req.WithContext(ctx)

	client := &http.Client{
		Transport:     t.pool,
		CheckRedirect: redirectPolicy(followRedirects),
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Flatten multi-valued headers, keeping the first value.
	flat := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		flat[k] = resp.Header.Get(k)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    flat,
		Body:       raw,
		URL:        finalURL,
	}, nil
}

func redirectPolicy(follow bool) func(*http.Request, []*http.Request) error {
	if !follow {
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}
}
