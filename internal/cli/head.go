package cli

import (
	"github.com/spf13/cobra"
)

var headCmd = &cobra.Command{
	Use:   "head URL",
	Short: "Make a HEAD request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRequest(cmd, "HEAD", args[0])
	},
}

func init() {
	addRequestFlags(headCmd, false)
}
