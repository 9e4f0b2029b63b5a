package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "0.3.2"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of peerwatch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("peerwatch version:", Version)
	},
}
