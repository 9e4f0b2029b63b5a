package cmd

import (
	"fmt"
	"os"

	"github.com/buger/jsonparser"
	"github.com/spf13/cobra"

	"github.com/xandnet/peerwatch/utils"
)

var flagStatus string

func init() {
	peersCmd.Flags().StringVarP(&flagStatus, "status", "s", "", "only show peers with this status (online, degraded, offline, unknown)")
}

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Display the peer set known to a running service",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		body, err := utils.ResponseBody(nil, "GET", "/api/v1/peers", nil)
		if err != nil {
			fmt.Println("Error getting peer list:", err)
			fmt.Println("\nIs the service running? See: peerwatch server")
			os.Exit(1)
		}

		if errMsg, err := jsonparser.GetString(body, "error"); err == nil {
			fmt.Println("Error:", errMsg)
			os.Exit(1)
		}

		count := 0
		_, err = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
			status, _ := jsonparser.GetString(value, "status")
			if flagStatus != "" && status != flagStatus {
				return
			}
			pubkey, _ := jsonparser.GetString(value, "pubkey")
			address, _ := jsonparser.GetString(value, "address")
			fmt.Printf("%-48s %-22s %s\n", pubkey, address, status)
			count++
		}, "peers")
		if err != nil {
			fmt.Println("Cannot iterate over peer list:", err)
			os.Exit(1)
		}

		fmt.Printf("\n%d peers\n", count)
	},
}
