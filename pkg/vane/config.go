package vane

import "time"

// Version is the library version, reported in the default User-Agent.
const Version = "0.1.0"

// DefaultUserAgent identifies the library when no user agent is
// configured.
const DefaultUserAgent = "vane/" + Version

// Config is an immutable snapshot of client-wide defaults. It is built
// once via ConfigBuilder and never mutated afterward; a Client holds it
// by value for its whole lifetime.
type Config struct {
	baseURL         string
	defaultHeaders  map[string]string
	timeout         time.Duration
	userAgent       string
	followRedirects bool
}

// BaseURL returns the configured base URL, or an empty string when
// requests must carry absolute URLs.
func (c Config) BaseURL() string {
	return c.baseURL
}

// DefaultHeaders returns a copy of the default header map.
func (c Config) DefaultHeaders() map[string]string {
	headers := make(map[string]string, len(c.defaultHeaders))
	for k, v := range c.defaultHeaders {
		headers[k] = v
	}
	return headers
}

// Timeout returns the default timeout and whether one is set. When unset
// the transport's own default applies.
func (c Config) Timeout() (time.Duration, bool) {
	return c.timeout, c.timeout > 0
}

// UserAgent returns the configured user agent.
func (c Config) UserAgent() string {
	return c.userAgent
}

// FollowRedirects reports whether the client follows redirects by
// default.
func (c Config) FollowRedirects() bool {
	return c.followRedirects
}

// ConfigBuilder accumulates configuration fields and freezes them into a
// Config. The zero builder is not usable; create one with NewConfig.
type ConfigBuilder struct {
	baseURL         string
	defaultHeaders  map[string]string
	timeout         time.Duration
	userAgent       string
	followRedirects bool
}

// NewConfig creates a ConfigBuilder with the documented defaults: no
// base URL, empty header map, no timeout, DefaultUserAgent, redirects
// followed.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{
		defaultHeaders:  make(map[string]string),
		userAgent:       DefaultUserAgent,
		followRedirects: true,
	}
}

// WithBaseURL sets the base URL that relative request URLs are resolved
// against.
func (b *ConfigBuilder) WithBaseURL(baseURL string) *ConfigBuilder {
	b.baseURL = baseURL
	return b
}

// WithDefaultHeaders replaces the whole default header map. Last call
// wins; this is not a merge.
func (b *ConfigBuilder) WithDefaultHeaders(headers map[string]string) *ConfigBuilder {
	b.defaultHeaders = make(map[string]string, len(headers))
	for k, v := range headers {
		b.defaultHeaders[k] = v
	}
	return b
}

// WithDefaultHeader upserts a single default header.
func (b *ConfigBuilder) WithDefaultHeader(key, value string) *ConfigBuilder {
	b.defaultHeaders[key] = value
	return b
}

// WithTimeout sets the default request timeout. Non-positive values
// clear it, leaving the transport default in effect.
func (b *ConfigBuilder) WithTimeout(timeout time.Duration) *ConfigBuilder {
	if timeout < 0 {
		timeout = 0
	}
	b.timeout = timeout
	return b
}

// WithUserAgent sets the user agent sent when no request overrides it.
func (b *ConfigBuilder) WithUserAgent(userAgent string) *ConfigBuilder {
	b.userAgent = userAgent
	return b
}

// WithFollowRedirects sets the default redirect policy.
func (b *ConfigBuilder) WithFollowRedirects(follow bool) *ConfigBuilder {
	b.followRedirects = follow
	return b
}

// Build freezes the accumulated fields into a Config. It never fails;
// unset fields keep their defaults. The builder's header map is copied
// so later mutation of the builder cannot leak into the snapshot.
func (b *ConfigBuilder) Build() Config {
	headers := make(map[string]string, len(b.defaultHeaders))
	for k, v := range b.defaultHeaders {
		headers[k] = v
	}
	return Config{
		baseURL:         b.baseURL,
		defaultHeaders:  headers,
		timeout:         b.timeout,
		userAgent:       b.userAgent,
		followRedirects: b.followRedirects,
	}
}
