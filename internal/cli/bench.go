package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/vane/internal/bench"
	"github.com/wesleyorama2/vane/internal/output"
	"github.com/wesleyorama2/vane/pkg/vane"
)

var benchCmd = &cobra.Command{
	Use:   "bench URL",
	Short: "Run a fixed-concurrency latency benchmark against a URL",
	Long: `Bench sends the same GET request repeatedly through one shared client
and reports latency percentiles from an HDR histogram. It is a plain
fixed-concurrency loop, not a load-shaping tool.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		iterations, _ := cmd.Flags().GetInt("iterations")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		headers, _ := cmd.Flags().GetStringArray("header")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")
		profilePath, _ := cmd.Flags().GetString("profile")
		profileName, _ := cmd.Flags().GetString("env")

		formatter := output.NewFormatter(false, noColor || !output.StdoutIsTerminal())

		cfg, err := resolveConfig(profilePath, profileName)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}

		rawURL := args[0]
		if cfg.BaseURL() == "" {
			rawURL = ensureScheme(rawURL)
		}

		client, err := vane.NewClient(cfg)
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}

		req := vane.Request{
			Method:  "GET",
			URL:     rawURL,
			Headers: make(map[string]string),
			Timeout: timeout,
		}
		for _, header := range headers {
			parts := strings.SplitN(header, ":", 2)
			if len(parts) == 2 {
				req.Headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
			}
		}

		fmt.Printf("Benchmarking %s (%d requests, %d concurrent)\n", rawURL, iterations, concurrency)

		report, err := bench.Run(client, req, bench.Options{
			Iterations:  iterations,
			Concurrency: concurrency,
		})
		if err != nil {
			fmt.Fprint(os.Stderr, formatter.FormatError(err))
			os.Exit(1)
		}

		fmt.Print(report.Summary())
		if report.Failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	benchCmd.Flags().IntP("iterations", "n", 100, "Total number of requests to send")
	benchCmd.Flags().IntP("concurrency", "c", 10, "Number of concurrent workers")
	benchCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	benchCmd.Flags().DurationP("timeout", "t", 10*time.Second, "Per-request timeout")
	benchCmd.Flags().Bool("no-color", false, "Disable colored output")
	benchCmd.Flags().String("profile", "", "Profile file with client defaults")
	benchCmd.Flags().String("env", "default", "Profile name within the profile file")
}
