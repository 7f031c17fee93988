package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract pulls a single value out of a JSON document. The path is a
// gjson path ("users.0.name"); the JSONPath dollar form
// ("$.users[0].name") is accepted and normalized for convenience.
func Extract(body []byte, path string) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return "", fmt.Errorf("empty path expression")
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("body is not valid JSON")
	}

	result := gjson.GetBytes(body, normalize(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// normalize converts JSONPath-style expressions to gjson syntax. Paths
// already in gjson form pass through unchanged.
func normalize(path string) string {
	if path == "$" || path == "$." {
		return "@this"
	}
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")

	// Bracket notation: ['name'], ["name"], [0].
	replacer := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	return strings.TrimPrefix(replacer.Replace(path), ".")
}
