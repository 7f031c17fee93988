package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/vane/pkg/vane"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "vane",
	Short:   "A simple terminal-based HTTP client",
	Version: vane.Version,
	Long: `Vane is a terminal-based HTTP client built on a small blocking
client core. It supports per-profile defaults, JSON body handling,
JSONPath extraction, JSON Schema validation of responses, and a basic
latency benchmark.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(patchCmd)
	RootCmd.AddCommand(headCmd)
	RootCmd.AddCommand(benchCmd)
}
