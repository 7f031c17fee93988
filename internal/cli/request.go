package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/vane/internal/output"
	"github.com/wesleyorama2/vane/internal/profile"
	"github.com/wesleyorama2/vane/pkg/jsonpath"
	"github.com/wesleyorama2/vane/pkg/jsonschema"
	"github.com/wesleyorama2/vane/pkg/vane"
)

// addRequestFlags registers the flags shared by every request command.
func addRequestFlags(cmd *cobra.Command, withBody bool) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().StringArrayP("query", "q", []string{}, "Query parameters as key=value (can be used multiple times)")
	cmd.Flags().DurationP("timeout", "t", 0, "Request timeout (overrides the profile default)")
	cmd.Flags().Bool("no-redirect", false, "Do not follow redirects")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("extract", "", "JSONPath to extract from the response body")
	cmd.Flags().String("schema", "", "JSON Schema file to validate the response body against")
	cmd.Flags().String("profile", "", "Profile file with client defaults")
	cmd.Flags().String("env", "default", "Profile name within the profile file")

	if withBody {
		cmd.Flags().StringP("data", "d", "", "Data to send in the request body")
		cmd.Flags().StringP("json", "j", "", "JSON data to send in the request body")
	}
}

// runRequest executes one request command end to end: config
// resolution, request building, execution, rendering, and the optional
// extract/validate steps. It exits the process on failure, matching
// curl-style behavior.
func runRequest(cmd *cobra.Command, method, rawURL string) {
	headers, _ := cmd.Flags().GetStringArray("header")
	queries, _ := cmd.Flags().GetStringArray("query")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noRedirect, _ := cmd.Flags().GetBool("no-redirect")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	extractPath, _ := cmd.Flags().GetString("extract")
	schemaPath, _ := cmd.Flags().GetString("schema")
	profilePath, _ := cmd.Flags().GetString("profile")
	profileName, _ := cmd.Flags().GetString("env")

	formatter := output.NewFormatter(verbose, noColor || !output.StdoutIsTerminal())

	cfg, err := resolveConfig(profilePath, profileName)
	if err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	if cfg.BaseURL() == "" {
		rawURL = ensureScheme(rawURL)
	}

	client, err := vane.NewClient(cfg)
	if err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	builder := client.NewRequest(method, rawURL)

	reqHeaders := make(map[string]string, len(headers))
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			key, value := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			reqHeaders[key] = value
			builder.WithHeader(key, value)
		}
	}
	for _, query := range queries {
		parts := strings.SplitN(query, "=", 2)
		if len(parts) == 2 {
			builder.WithQueryParam(parts[0], parts[1])
		}
	}

	var body []byte
	if cmd.Flags().Lookup("data") != nil {
		data, _ := cmd.Flags().GetString("data")
		jsonData, _ := cmd.Flags().GetString("json")
		if jsonData != "" {
			body = []byte(jsonData)
			builder.WithBody(body)
			builder.WithHeader("Content-Type", "application/json")
		} else if data != "" {
			body = []byte(data)
			builder.WithBody(body)
		}
	}

	if timeout > 0 {
		builder.WithTimeout(timeout)
	}
	if noRedirect {
		builder.WithFollowRedirects(false)
	}

	fmt.Print(formatter.FormatRequest(method, rawURL, reqHeaders, body))

	start := time.Now()
	resp, err := builder.Execute()
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		os.Exit(1)
	}

	fmt.Print(formatter.FormatResponse(resp, elapsed))

	if extractPath != "" {
		value, err := jsonpath.Extract(resp.Body, extractPath)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
		fmt.Printf("  Extract %s: %s\n", extractPath, value)
	}

	if schemaPath != "" {
		if err := validateAgainstSchema(resp, schemaPath, noColor); err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}
	}
}

// resolveConfig builds the client configuration from a profile file, or
// returns bare defaults when none is given.
func resolveConfig(profilePath, profileName string) (vane.Config, error) {
	if profilePath == "" {
		return vane.NewConfig().Build(), nil
	}
	file, err := profile.Load(profilePath)
	if err != nil {
		return vane.Config{}, err
	}
	return file.Config(profileName)
}

// ensureScheme prepends http:// when the URL has no scheme, so bare
// host names work from the command line.
func ensureScheme(rawURL string) string {
	if strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "http://" + rawURL
}

// validateAgainstSchema checks the response body against a JSON Schema
// file and reports each violation.
func validateAgainstSchema(resp *vane.Response, schemaPath string, noColor bool) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("error reading schema file: %w", err)
	}
	result, err := jsonschema.Validate(resp.Body, schema)
	if err != nil {
		return err
	}
	if !result.Valid {
		for _, violation := range result.Errors {
			fmt.Printf("  %s %s\n", output.ErrorIcon(noColor), violation)
		}
		return fmt.Errorf("response body failed schema validation")
	}
	fmt.Printf("  %s schema valid\n", output.SuccessIcon(noColor))
	return nil
}
