package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/xandnet/peerwatch/collector"
	"github.com/xandnet/peerwatch/internal/config"
	"github.com/xandnet/peerwatch/internal/logger"
)

var (
	flagJSON    bool
	flagNoStats bool
)

func init() {
	collectCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "print the raw snapshot as JSON")
	collectCmd.Flags().BoolVar(&flagNoStats, "no-stats", false, "skip the telemetry enrichment phase")
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one collection cycle and print the result",
	Long:  `Polls every bootstrap source once, merges and enriches the peer set, and prints it without starting the service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		cfg := config.GetConfig()
		logger.SetDebug(cfg.General.Debug)

		collectorCfg := collectorConfig(cfg)
		if flagNoStats {
			collectorCfg.FetchStats = false
		}

		snap := collector.New(collectorCfg).Collect(context.Background())

		if flagJSON {
			encoded, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Pubkey", "Address", "Version", "Status", "CPU %", "Uptime", "Credits"})
		table.SetBorder(false)

		for _, p := range snap.Peers {
			cpu, uptime, credits := "-", "-", "-"
			if p.Telemetry != nil {
				cpu = strconv.FormatFloat(p.Telemetry.CPUPercent, 'f', 1, 64)
				uptime = p.UptimeHum
			}
			if p.Credits != nil {
				credits = strconv.FormatInt(*p.Credits, 10)
			}
			table.Append([]string{
				shortKey(p.Pubkey), p.Address, p.Version, string(p.Status), cpu, uptime, credits,
			})
		}
		table.Render()

		fmt.Printf("\n%d peers discovered, %d with telemetry, %d errors, took %s\n",
			snap.TotalDiscovered, snap.TotalWithTelemetry, len(snap.Errors),
			time.Duration(snap.DurationMS)*time.Millisecond)

		for _, e := range snap.Errors {
			fmt.Printf("  [%s] %s: %s\n", e.Kind, e.Target, e.Message)
		}

		return nil
	},
}

func shortKey(pubkey string) string {
	if len(pubkey) <= 16 {
		return pubkey
	}
	return pubkey[:8] + "..." + pubkey[len(pubkey)-4:]
}
