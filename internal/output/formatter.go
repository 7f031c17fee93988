package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/pretty"

	"github.com/wesleyorama2/vane/pkg/vane"
)

// Formatter renders requests, responses, and errors for the terminal.
type Formatter struct {
	Verbose bool
	NoColor bool

	scheme *ColorScheme
}

// NewFormatter creates a formatter with the given options.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatRequest renders the outgoing request line, headers, and body.
func (f *Formatter) FormatRequest(method, url string, headers map[string]string, body []byte) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(method),
		f.scheme.URL.Sprint(url)))

	if f.Verbose && len(headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), headers[key]))
		}
	}

	if len(body) > 0 {
		buf.WriteString("  Body:\n")
		buf.WriteString(indent(formatBody(body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse renders the status line, headers, and body of a
// response, with the elapsed wall time of the exchange.
func (f *Formatter) FormatResponse(resp *vane.Response, elapsed time.Duration) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusError
	switch {
	case resp.IsSuccess():
		statusColor = f.scheme.StatusOK
	case resp.IsRedirect():
		statusColor = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		statusColor.Sprintf("%d", resp.StatusCode),
		elapsed.Milliseconds()))

	if f.Verbose {
		buf.WriteString(fmt.Sprintf("  URL: %s\n", resp.URL))
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(resp.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), resp.Headers[key]))
		}
	}

	if len(resp.Body) > 0 {
		buf.WriteString("  Body:\n")
		if rendered, ok := resp.PrettyJSON(); ok {
			buf.WriteString(indent(strings.TrimRight(rendered, "\n")))
		} else if text, err := resp.String(); err == nil {
			buf.WriteString(indent(text))
		} else {
			buf.WriteString(fmt.Sprintf("    <%d bytes of binary data>", len(resp.Body)))
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatError renders a typed client error with its kind spelled out so
// failures are distinguishable at a glance.
func (f *Formatter) FormatError(err error) string {
	icon := ErrorIcon(f.NoColor)

	var (
		configErr  *vane.ConfigError
		networkErr *vane.NetworkError
		timeoutErr *vane.TimeoutError
		httpErr    *vane.HTTPError
		serErr     *vane.SerializationError
		decodeErr  *vane.DecodeError
	)
	kind := "error"
	switch {
	case errors.As(err, &configErr):
		kind = "invalid configuration"
	case errors.As(err, &timeoutErr):
		kind = "timeout"
	case errors.As(err, &networkErr):
		kind = "network failure"
	case errors.As(err, &httpErr):
		kind = "unexpected status"
	case errors.As(err, &serErr):
		kind = "body encoding failure"
	case errors.As(err, &decodeErr):
		kind = "body decoding failure"
	}

	return fmt.Sprintf("%s %s: %s\n", icon, f.scheme.Error.Sprint(kind), err)
}

func formatBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return strings.TrimRight(string(pretty.Pretty(body)), "\n")
	}
	return string(body)
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
