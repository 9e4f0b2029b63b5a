package cmd

import (
	"fmt"
	"os"

	"github.com/buger/jsonparser"
	"github.com/spf13/cobra"

	"github.com/xandnet/peerwatch/utils"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display network-wide stats from a running service",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		body, err := utils.ResponseBody(nil, "GET", "/api/v1/stats", nil)
		if err != nil {
			fmt.Println("Error getting network stats:", err)
			fmt.Println("\nIs the service running? See: peerwatch server")
			os.Exit(1)
		}

		total, _ := jsonparser.GetInt(body, "total_peers")
		online, _ := jsonparser.GetInt(body, "online_peers")
		degraded, _ := jsonparser.GetInt(body, "degraded_peers")
		offline, _ := jsonparser.GetInt(body, "offline_peers")
		unknown, _ := jsonparser.GetInt(body, "unknown_peers")
		health, _ := jsonparser.GetFloat(body, "network_health")
		storage, _ := jsonparser.GetString(body, "total_storage_human")
		errCount, _ := jsonparser.GetInt(body, "error_count")

		fmt.Printf("Peers:          %d (online %d, degraded %d, offline %d, unknown %d)\n",
			total, online, degraded, offline, unknown)
		fmt.Printf("Network health: %.1f%%\n", health)
		fmt.Printf("Total storage:  %s\n", storage)
		if errCount > 0 {
			fmt.Printf("Last collection reported %d errors\n", errCount)
		}
	},
}
