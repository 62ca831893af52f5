package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netpulse-dev/netpulse/internal/config"
	"github.com/netpulse-dev/netpulse/internal/history"
	"github.com/netpulse-dev/netpulse/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored session to CSV",
	Long: `Export writes a stored session as CSV with the header
Date,Time,Download (Mbps),Upload (Mbps), one row per sample. Without --session
the most recent session is exported.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sessionID, _ := cmd.Flags().GetString("session")
		outDir, _ := cmd.Flags().GetString("out")
		if err := runExport(sessionID, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runExport(sessionID, outDir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = cfg.ExportDir
	}

	st, err := store.OpenReadOnly(config.GetStoreDir())
	if err != nil {
		return err
	}
	defer st.Close()

	if sessionID == "" {
		sessionID, err = st.LatestSessionID()
		if err != nil {
			return err
		}
		if sessionID == "" {
			return errors.New("no sessions recorded yet")
		}
	} else {
		sessionID, err = st.ResolveSession(sessionID)
		if err != nil {
			return err
		}
	}

	samples, err := st.SessionSamples(sessionID)
	if err != nil {
		return err
	}
	path, err := history.ExportFile(outDir, samples)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d samples to %s\n", len(samples), path)
	return nil
}

func init() {
	exportCmd.Flags().String("session", "", "session ID to export (default: latest)")
	exportCmd.Flags().StringP("out", "o", "", "output directory (default: export_dir from config)")
	rootCmd.AddCommand(exportCmd)
}
