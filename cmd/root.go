package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "peerwatch",
	Short: "PeerWatch storage network dashboard",
	Long:  `PeerWatch polls the storage network's bootstrap endpoints, aggregates peer telemetry and serves the result through a dashboard API.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: false,
		HiddenDefaultCmd:  true,
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	// CheckErr prints formatted error message, if there is any, and exits
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(peersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
