package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/netpulse-dev/netpulse/internal/config"
	"github.com/netpulse-dev/netpulse/internal/history"
	"github.com/netpulse-dev/netpulse/internal/speedtest"
	"github.com/netpulse-dev/netpulse/internal/store"
	"github.com/netpulse-dev/netpulse/internal/utils"
)

var cronCmd = &cobra.Command{
	Use:   "cron [schedule]",
	Short: "Run scheduled measurements until interrupted",
	Long: `Cron runs a speed test on a cron schedule, appending every result to
the history store. The schedule comes from the argument or, when omitted, from
the cron field in the config file.

  netpulse cron "*/30 * * * *"`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		schedule := ""
		if len(args) == 1 {
			schedule = args[0]
		}
		if err := runCron(schedule); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runCron(schedule string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if schedule == "" {
		schedule = cfg.Cron
	}
	if schedule == "" {
		return errors.New("no schedule given and no cron field in config")
	}
	if err := config.EnsureDirs(); err != nil {
		return err
	}

	st, err := store.Open(config.GetStoreDir())
	if errors.Is(err, store.ErrLocked) {
		return errors.New("another netpulse instance is already writing history; close it first")
	}
	if err != nil {
		return err
	}
	defer st.Close()

	client := speedtest.NewClient(cfg.Timeout())
	if err := client.Init(context.Background(), cfg.Speedtest.ServerID); err != nil {
		return err
	}
	name, host := client.Server()
	utils.Info("scheduled measurements against %s (%s): %s", name, host, schedule)

	sessionID := uuid.New().String()
	if err := st.BeginSession(sessionID, time.Now()); err != nil {
		return err
	}

	c := cron.New()
	_, err = c.AddFunc(schedule, func() {
		res, err := client.Measure(context.Background())
		if err != nil {
			utils.Error("measurement failed: %v", err)
			return
		}
		utils.Info("download %s Mbps, upload %s Mbps, latency %s",
			utils.FormatMbps(res.DownloadMbps), utils.FormatMbps(res.UploadMbps),
			utils.FormatLatency(res.LatencyMs))
		if err := st.AppendSample(sessionID, history.Sample{
			Timestamp:    res.Timestamp,
			DownloadMbps: res.DownloadMbps,
			UploadMbps:   res.UploadMbps,
		}); err != nil {
			utils.Error("sample not persisted: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	defer c.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	utils.Info("shutting down")
	return nil
}

func init() {
	rootCmd.AddCommand(cronCmd)
}
