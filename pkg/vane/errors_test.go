package vane

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrors_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")

	cases := []error{
		&ConfigError{Message: "bad base URL", Err: cause},
		&NetworkError{URL: "http://x", Err: cause},
		&TimeoutError{URL: "http://x", Timeout: time.Second, Err: cause},
		&SerializationError{Err: cause},
		&DecodeError{Err: cause},
	}

	for _, err := range cases {
		if !errors.Is(err, cause) {
			t.Errorf("%T: expected cause to be reachable via errors.Is", err)
		}
	}
}

func TestErrors_Messages(t *testing.T) {
	timeoutErr := &TimeoutError{URL: "http://x/slow", Timeout: 2 * time.Second}
	if msg := timeoutErr.Error(); msg != "timeout after 2s: http://x/slow" {
		t.Errorf("Unexpected TimeoutError message: %q", msg)
	}

	httpErr := &HTTPError{StatusCode: 404, Response: &Response{StatusCode: 404}}
	if msg := httpErr.Error(); msg != "http error: unexpected status 404" {
		t.Errorf("Unexpected HTTPError message: %q", msg)
	}
}

func TestErrors_KindsAreDistinct(t *testing.T) {
	var err error = &NetworkError{URL: "http://x", Err: fmt.Errorf("refused")}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		t.Error("NetworkError must not match TimeoutError")
	}
	var networkErr *NetworkError
	if !errors.As(err, &networkErr) {
		t.Error("NetworkError must match its own kind")
	}
}
