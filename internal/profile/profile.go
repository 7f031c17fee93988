// Package profile loads named client profiles from a YAML file and
// turns them into frozen vane configurations.
package profile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/vane/pkg/vane"
)

// File is the top-level structure of a profile file.
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile describes client-wide defaults for one environment.
type Profile struct {
	BaseURL         string            `yaml:"baseUrl"`
	Headers         map[string]string `yaml:"headers,omitempty"`
	Timeout         string            `yaml:"timeout,omitempty"`
	UserAgent       string            `yaml:"userAgent,omitempty"`
	FollowRedirects *bool             `yaml:"followRedirects,omitempty"`
	Vars            map[string]string `yaml:"variables,omitempty"`
}

// Load reads and parses a profile file.
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("profile file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading profile file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing profile file: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("profile file defines no profiles")
	}
	return &file, nil
}

// Config resolves the named profile into a frozen vane.Config,
// substituting {{var}} references in the base URL and header values.
func (f *File) Config(name string) (vane.Config, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return vane.Config{}, fmt.Errorf("unknown profile %q", name)
	}

	builder := vane.NewConfig().
		WithBaseURL(Substitute(p.BaseURL, p.Vars)).
		WithDefaultHeaders(SubstituteMap(p.Headers, p.Vars))

	if p.Timeout != "" {
		timeout, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return vane.Config{}, fmt.Errorf("profile %q: invalid timeout %q: %w", name, p.Timeout, err)
		}
		if timeout < 0 {
			return vane.Config{}, fmt.Errorf("profile %q: timeout cannot be negative", name)
		}
		builder.WithTimeout(timeout)
	}
	if p.UserAgent != "" {
		builder.WithUserAgent(p.UserAgent)
	}
	if p.FollowRedirects != nil {
		builder.WithFollowRedirects(*p.FollowRedirects)
	}

	return builder.Build(), nil
}

// Substitute replaces {{key}} references in input with values from vars.
func Substitute(input string, vars map[string]string) string {
	result := input
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// SubstituteMap applies Substitute to every value of a map.
func SubstituteMap(input, vars map[string]string) map[string]string {
	result := make(map[string]string, len(input))
	for key, value := range input {
		result[key] = Substitute(value, vars)
	}
	return result
}
