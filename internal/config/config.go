package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Defaults applied when the config file is missing or leaves fields unset.
const (
	DefaultIntervalSeconds = 10
	DefaultTimeoutSeconds  = 15
	DefaultHistoryPoints   = 300
)

type SpeedtestConfig struct {
	// ServerID pins measurements to one speedtest.net server. 0 picks the
	// best server by latency.
	ServerID       int `yaml:"server_id"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the whole application configuration.
type Config struct {
	IntervalSeconds int                 `yaml:"interval_seconds"`
	HistoryPoints   int                 `yaml:"history_points"`
	ExportDir       string              `yaml:"export_dir"`
	Cron            string              `yaml:"cron"`
	LogLevel        string              `yaml:"log_level"`
	Speedtest       SpeedtestConfig     `yaml:"speedtest"`
	Notifications   NotificationsConfig `yaml:"notifications"`
}

// Interval returns the pause between measurement cycles.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Timeout returns the per-measurement timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Speedtest.TimeoutSeconds) * time.Second
}

// Load reads and parses the config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	b, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine; run on defaults.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.ExportDir = os.ExpandEnv(cfg.ExportDir)
	cfg.Cron = os.ExpandEnv(cfg.Cron)
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = DefaultIntervalSeconds
	}
	if c.HistoryPoints <= 0 {
		c.HistoryPoints = DefaultHistoryPoints
	}
	if c.Speedtest.TimeoutSeconds <= 0 {
		c.Speedtest.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.ExportDir == "" {
		if wd, err := os.Getwd(); err == nil {
			c.ExportDir = wd
		} else {
			c.ExportDir = "."
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
