package vane

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequestBuilder_HeadersUpsertAndReplace(t *testing.T) {
	client := newTestClient(t, NewConfig().Build())

	b := client.NewRequest("GET", "/").
		WithHeader("A", "1").
		WithHeader("A", "2").
		WithHeaders(map[string]string{"B": "3"}).
		WithHeader("C", "4")

	req := b.build()
	if _, ok := req.Headers["A"]; ok {
		t.Error("Expected WithHeaders to replace the map wholesale")
	}
	if req.Headers["B"] != "3" || req.Headers["C"] != "4" {
		t.Errorf("Expected headers B=3 C=4, got %v", req.Headers)
	}
}

func TestRequestBuilder_QueryParamsReplace(t *testing.T) {
	client := newTestClient(t, NewConfig().Build())

	req := client.NewRequest("GET", "/").
		WithQueryParam("a", "1").
		WithQueryParams(map[string]string{"b": "2"}).
		build()

	if _, ok := req.QueryParams["a"]; ok {
		t.Error("Expected WithQueryParams to replace the map wholesale")
	}
	if req.QueryParams["b"] != "2" {
		t.Errorf("Expected query b=2, got %v", req.QueryParams)
	}
}

func TestRequestBuilder_NegativeTimeoutRejected(t *testing.T) {
	client := newTestClient(t, NewConfig().Build())

	_, err := client.NewRequest("GET", "http://example.com").
		WithTimeout(-1 * time.Second).
		Execute()

	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("Expected ConfigError for negative timeout, got %v", err)
	}
}

func TestRequestBuilder_JSONBodySetsContentType(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(t, NewConfig().WithBaseURL(server.URL).Build())

	_, err := client.NewRequest("POST", "/users").
		WithHeader("Content-Type", "text/plain").
		WithJSONBody(map[string]string{"name": "ada"}).
		Execute()
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Expected WithJSONBody to overwrite Content-Type, got %q", gotContentType)
	}
	if string(gotBody) != `{"name":"ada"}` {
		t.Errorf("Expected encoded body, got %s", gotBody)
	}
}

func TestRequestBuilder_SerializationErrorBeforeIO(t *testing.T) {
	// No server at all: the encode failure must surface without any
	// network I/O being attempted.
	client := newTestClient(t, NewConfig().Build(),
		WithTransport(failingTransport{err: errors.New("transport must not be called")}))

	_, err := client.NewRequest("POST", "http://example.com").
		WithJSONBody(make(chan int)).
		Execute()

	var serErr *SerializationError
	if !errors.As(err, &serErr) {
		t.Fatalf("Expected SerializationError, got %v", err)
	}
}

func TestRequestBuilder_ResponseJSONRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		buf, _ := io.ReadAll(r.Body)
		w.Write(buf)
	}))
	defer server.Close()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	client := newTestClient(t, NewConfig().WithBaseURL(server.URL).Build())

	sent := payload{Name: "ada", Count: 3}
	var got payload
	err := client.NewRequest("POST", "/echo").
		WithJSONBody(sent).
		ResponseJSON(&got)
	if err != nil {
		t.Fatalf("ResponseJSON() failed: %v", err)
	}
	if got != sent {
		t.Errorf("Round-trip mismatch: sent %+v, got %+v", sent, got)
	}
}

func TestRequestBuilder_ResponseJSONRequiresSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		// Deliberately not JSON: a decode attempt would fail loudly.
		w.Write([]byte("<html>not found</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, NewConfig().WithBaseURL(server.URL).Build())

	var out map[string]interface{}
	err := client.NewRequest("GET", "/missing").ResponseJSON(&out)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 in HTTPError, got %d", httpErr.StatusCode)
	}
	if httpErr.Response == nil || httpErr.Response.StatusCode != http.StatusNotFound {
		t.Error("Expected HTTPError to carry the full response")
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		t.Error("Expected no decode attempt on a non-2xx response")
	}
}

func TestRequestBuilder_ResponseString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := newTestClient(t, NewConfig().WithBaseURL(server.URL).Build())

	body, err := client.NewRequest("GET", "/").ResponseString()
	if err != nil {
		t.Fatalf("ResponseString() failed: %v", err)
	}
	if body != "hello" {
		t.Errorf("Expected body hello, got %q", body)
	}
}

func TestRequestBuilder_CustomCodec(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ENCODED"))
	}))
	defer server.Close()

	client := newTestClient(t, NewConfig().WithBaseURL(server.URL).Build(),
		WithCodec(upperCodec{}))

	var got string
	err := client.NewRequest("GET", "/").ResponseJSON(&got)
	if err != nil {
		t.Fatalf("ResponseJSON() failed: %v", err)
	}
	if got != "encoded" {
		t.Errorf("Expected the custom codec to decode the body, got %q", got)
	}
}

// upperCodec is a stand-in codec proving the capability is pluggable:
// it upper-cases on encode and lower-cases on decode into *string.
type upperCodec struct{}

func (upperCodec) Encode(v interface{}) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errors.New("upperCodec encodes strings only")
	}
	return []byte(toUpper(s)), nil
}

func (upperCodec) Decode(data []byte, v interface{}) error {
	target, ok := v.(*string)
	if !ok {
		return errors.New("upperCodec decodes into *string only")
	}
	*target = toLower(string(data))
	return nil
}

func toUpper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 32
		}
	}
	return string(out)
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + 32
		}
	}
	return string(out)
}
