// Package vane provides a blocking HTTP client core with an immutable
// configuration snapshot, a fluent request builder, and a typed error
// taxonomy.
//
// The package is the shared core behind the vane CLI and any host-side
// bindings. A Client is constructed once from a frozen Config and is safe
// for concurrent use; every request goes through a single blocking
// Execute call. The transport and the body codec are capabilities that
// can be swapped at construction time.
//
// Basic usage:
//
//	cfg := vane.NewConfig().
//	    WithBaseURL("https://api.example.com").
//	    WithTimeout(10 * time.Second).
//	    Build()
//
//	client, err := vane.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var users []User
//	err = client.NewRequest("GET", "/users").
//	    WithQueryParam("limit", "10").
//	    ResponseJSON(&users)
//
// A non-2xx status is a normal Response from Execute; only the decode
// terminals (ResponseJSON, ResponseString) check the success flag first.
// Response.JSON decodes unconditionally so callers can inspect error
// bodies.
//
// Every failure is one of the typed errors in this package (ConfigError,
// NetworkError, TimeoutError, HTTPError, SerializationError, DecodeError)
// and can be matched with errors.As.
package vane
