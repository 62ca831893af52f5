package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/netpulse-dev/netpulse/internal/config"
	"github.com/netpulse-dev/netpulse/internal/speedtest"
	"github.com/netpulse-dev/netpulse/internal/store"
	"github.com/netpulse-dev/netpulse/internal/tui"
	"github.com/netpulse-dev/netpulse/internal/utils"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "netpulse",
	Short: "Terminal internet speed monitor",
	Long: `Netpulse measures internet download/upload throughput on a fixed
interval, draws a scrolling smoothed waveform of both series, and exports the
measurement history to CSV.

Running netpulse without a subcommand opens the interactive monitor.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
}

// loadConfig reads the config file and applies the log-level override.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	utils.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.EnsureDirs(); err != nil {
		return fmt.Errorf("create data dirs: %w", err)
	}

	// The TUI owns the terminal; logs go to a file.
	logFile, err := utils.LogToFile(filepath.Join(config.GetLogsDir(), "netpulse.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	st, err := store.Open(config.GetStoreDir())
	if errors.Is(err, store.ErrLocked) {
		return errors.New("another netpulse instance is already writing history; close it first")
	}
	if err != nil {
		return err
	}
	defer st.Close()

	client := speedtest.NewClient(cfg.Timeout())
	program := tea.NewProgram(tui.NewRootModel(cfg, client, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
