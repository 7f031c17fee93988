package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Result holds the outcome of validating a JSON document against a
// schema. Errors is empty when Valid is true.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks a JSON document against a JSON Schema. A malformed
// schema or document is an error; a document that merely fails the
// schema yields Valid=false with the individual violations listed.
func Validate(document, schema []byte) (*Result, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		result := &Result{Valid: false}
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			result.Errors = flatten(validationErr)
		} else {
			result.Errors = []string{err.Error()}
		}
		return result, nil
	}
	return &Result{Valid: true}, nil
}

// flatten walks the validation error tree and collects the leaf
// messages with their instance locations.
func flatten(err *jsonschema.ValidationError) []string {
	var messages []string
	if err.Message != "" && !strings.HasPrefix(err.Message, "doesn't validate with") {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		messages = append(messages, fmt.Sprintf("%s: %s", location, err.Message))
	}
	for _, cause := range err.Causes {
		messages = append(messages, flatten(cause)...)
	}
	if len(messages) == 0 {
		messages = append(messages, err.Message)
	}
	return messages
}
