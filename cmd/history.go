package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/netpulse-dev/netpulse/internal/config"
	"github.com/netpulse-dev/netpulse/internal/store"
	"github.com/netpulse-dev/netpulse/internal/utils"
)

const historyListLimit = 20

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent monitoring sessions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runHistory() error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	st, err := store.OpenReadOnly(config.GetStoreDir())
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.Sessions(historyListLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet. Run netpulse or netpulse once --save first.")
		return nil
	}

	fmt.Printf("%-10s  %-16s  %8s  %12s  %12s\n", "SESSION", "STARTED", "SAMPLES", "AVG DOWN", "AVG UP")
	for _, s := range sessions {
		fmt.Printf("%-10s  %-16s  %8d  %9s dl  %9s ul\n",
			s.ID[:8],
			humanize.Time(s.StartedAt),
			s.Samples,
			utils.FormatMbps(s.AvgDownload),
			utils.FormatMbps(s.AvgUpload))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
