package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/netpulse-dev/netpulse/internal/config"
	"github.com/netpulse-dev/netpulse/internal/history"
	"github.com/netpulse-dev/netpulse/internal/speedtest"
	"github.com/netpulse-dev/netpulse/internal/store"
	"github.com/netpulse-dev/netpulse/internal/utils"
)

// runOnce performs a single measurement without the TUI, printing the result
// to stdout. With save enabled the sample lands in the store as a one-sample
// session.
func runOnce(save bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := speedtest.NewClient(cfg.Timeout())
	fmt.Fprintln(os.Stderr, "Selecting server...")
	if err := client.Init(context.Background(), cfg.Speedtest.ServerID); err != nil {
		return err
	}
	name, host := client.Server()
	fmt.Fprintf(os.Stderr, "Testing against %s (%s)\n", name, host)

	res, err := client.Measure(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Download: %s Mbps  Upload: %s Mbps  Ping: %s\n",
		utils.FormatMbps(res.DownloadMbps), utils.FormatMbps(res.UploadMbps),
		utils.FormatLatency(res.LatencyMs))

	if !save {
		return nil
	}
	if err := config.EnsureDirs(); err != nil {
		return err
	}
	st, err := store.Open(config.GetStoreDir())
	if err != nil {
		return err
	}
	defer st.Close()

	sessionID := uuid.New().String()
	if err := st.BeginSession(sessionID, time.Now()); err != nil {
		return err
	}
	return st.AppendSample(sessionID, history.Sample{
		Timestamp:    res.Timestamp,
		DownloadMbps: res.DownloadMbps,
		UploadMbps:   res.UploadMbps,
	})
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single speed test and print the result",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		save, _ := cmd.Flags().GetBool("save")
		if err := runOnce(save); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	onceCmd.Flags().Bool("save", false, "persist the result to the history store")
	rootCmd.AddCommand(onceCmd)
}
