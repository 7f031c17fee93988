package vane

import (
	"fmt"
	"time"
)

// ConfigError reports invalid caller input: a malformed base URL, an
// unsupported method, or a request that cannot be resolved against the
// configuration. It is returned before any network I/O happens.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NetworkError reports a transport-level failure: DNS resolution,
// connection refused or reset, TLS handshake. The underlying cause is
// always preserved.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that the effective timeout elapsed before the
// exchange completed. It is distinct from NetworkError so callers can
// retry on timeout specifically.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %v: %s", e.Timeout, e.URL)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// HTTPError reports that a request completed but a caller-level check
// rejected the response, e.g. ResponseJSON requiring a 2xx status. The
// full response is carried so callers can still inspect it.
type HTTPError struct {
	StatusCode int
	Response   *Response
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: unexpected status %d", e.StatusCode)
}

// SerializationError reports that a request body failed to encode.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// DecodeError reports that a response body failed to decode into the
// requested shape, or was not valid text.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
