package vane

import (
	"encoding/json"
	"fmt"
	"net/textproto"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Response is an immutable result snapshot. The body is fully buffered
// at construction; there are no partial or streaming reads.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte

	// URL is the final URL of the exchange, after any redirects.
	URL string
}

// Header returns the value of the named header, matching
// case-insensitively per HTTP semantics.
func (r *Response) Header(key string) string {
	if v, ok := r.Headers[key]; ok {
		return v
	}
	canonical := textproto.CanonicalMIMEHeaderKey(key)
	for k, v := range r.Headers {
		if textproto.CanonicalMIMEHeaderKey(k) == canonical {
			return v
		}
	}
	return ""
}

// IsSuccess returns true if the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// JSON decodes the buffered body into v. It decodes regardless of the
// status code, so callers may inspect error bodies; a malformed body
// yields a DecodeError.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// String returns the body as text, failing with a DecodeError when the
// body is not valid UTF-8.
func (r *Response) String() (string, error) {
	if !utf8.Valid(r.Body) {
		return "", &DecodeError{Err: fmt.Errorf("response body is not valid UTF-8")}
	}
	return string(r.Body), nil
}

// PrettyJSON reformats a JSON body for display. It is a best-effort
// diagnostic: when the body is not valid JSON it reports ok=false
// instead of an error.
func (r *Response) PrettyJSON() (string, bool) {
	if !gjson.ValidBytes(r.Body) {
		return "", false
	}
	return string(pretty.Pretty(r.Body)), true
}
