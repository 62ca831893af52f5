package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interval() != DefaultIntervalSeconds*time.Second {
		t.Errorf("Interval = %v, want %ds", cfg.Interval(), DefaultIntervalSeconds)
	}
	if cfg.HistoryPoints != DefaultHistoryPoints {
		t.Errorf("HistoryPoints = %d, want %d", cfg.HistoryPoints, DefaultHistoryPoints)
	}
	if cfg.Timeout() != DefaultTimeoutSeconds*time.Second {
		t.Errorf("Timeout = %v, want %ds", cfg.Timeout(), DefaultTimeoutSeconds)
	}
	if cfg.ExportDir == "" {
		t.Error("ExportDir default should not be empty")
	}
}

func TestLoadParsesFields(t *testing.T) {
	path := writeConfig(t, `
interval_seconds: 30
history_points: 50
cron: "*/15 * * * *"
log_level: debug
speedtest:
  server_id: 1234
  timeout_seconds: 20
notifications:
  enabled: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interval() != 30*time.Second {
		t.Errorf("Interval = %v", cfg.Interval())
	}
	if cfg.HistoryPoints != 50 {
		t.Errorf("HistoryPoints = %d", cfg.HistoryPoints)
	}
	if cfg.Cron != "*/15 * * * *" {
		t.Errorf("Cron = %q", cfg.Cron)
	}
	if cfg.Speedtest.ServerID != 1234 || cfg.Timeout() != 20*time.Second {
		t.Errorf("Speedtest = %+v", cfg.Speedtest)
	}
	if !cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled should be true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("NETPULSE_TEST_EXPORT", "/tmp/netpulse-exports")
	path := writeConfig(t, "export_dir: ${NETPULSE_TEST_EXPORT}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ExportDir != "/tmp/netpulse-exports" {
		t.Errorf("ExportDir = %q, env not expanded", cfg.ExportDir)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "interval_seconds: [oops\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
