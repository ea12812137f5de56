package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Thresholds, URLs and the alert
// cooldown all live here and are handed to the orchestrators at construction;
// there are no process-wide mutable settings.
type Config struct {
	Scan struct {
		MinDividendYield float64 `yaml:"min_dividend_yield"` // percent, inclusive lower bound
		OutputFile       string  `yaml:"output_file"`
		Cron             string  `yaml:"cron"`
	} `yaml:"scan"`
	Monitor struct {
		Cron          string `yaml:"cron"`
		Cooldown      string `yaml:"cooldown"` // Go duration string, e.g. "1h"
		LedgerFile    string `yaml:"ledger_file"`
		NotifyBaseURL string `yaml:"notify_base_url"`
	} `yaml:"monitor"`
	Window struct {
		Timezone string `yaml:"timezone"`
		Open     string `yaml:"open"`  // "HH:MM"
		Close    string `yaml:"close"` // "HH:MM"
	} `yaml:"trading_window"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MIN_DIVIDEND_YIELD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.MinDividendYield = f
		}
	}
	if v := os.Getenv("SCAN_OUTPUT_FILE"); v != "" {
		cfg.Scan.OutputFile = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Scan.Cron = v
	}
	if v := os.Getenv("CRON_MONITOR"); v != "" {
		cfg.Monitor.Cron = v
	}
	if v := os.Getenv("ALERT_COOLDOWN"); v != "" {
		cfg.Monitor.Cooldown = v
	}
	if v := os.Getenv("ALERT_LEDGER_FILE"); v != "" {
		cfg.Monitor.LedgerFile = v
	}
	if v := os.Getenv("NOTIFY_BASE_URL"); v != "" {
		cfg.Monitor.NotifyBaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Scan.MinDividendYield == 0 {
		cfg.Scan.MinDividendYield = 3.0
	}
	if cfg.Scan.OutputFile == "" {
		cfg.Scan.OutputFile = "data/scan_result.txt"
	}
	if cfg.Scan.Cron == "" {
		cfg.Scan.Cron = "0 0 9 5 * *" // 5th of each month, 09:00
	}
	if cfg.Monitor.Cron == "" {
		cfg.Monitor.Cron = "0 */5 9-13 * * 1-5" // every 5 min during session hours
	}
	if cfg.Monitor.Cooldown == "" {
		cfg.Monitor.Cooldown = "1h"
	}
	if cfg.Monitor.LedgerFile == "" {
		cfg.Monitor.LedgerFile = "data/alert_ledger.json"
	}
	if cfg.Window.Timezone == "" {
		cfg.Window.Timezone = "Asia/Taipei"
	}
	if cfg.Window.Open == "" {
		cfg.Window.Open = "09:00"
	}
	if cfg.Window.Close == "" {
		cfg.Window.Close = "13:30"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stock_sentinel.db"
	}

	return cfg, nil
}

// CooldownDuration parses the configured alert cooldown.
func (c *Config) CooldownDuration() (time.Duration, error) {
	return time.ParseDuration(c.Monitor.Cooldown)
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.Scan.MinDividendYield < 0 {
		return fmt.Errorf("scan.min_dividend_yield must not be negative")
	}
	if c.Monitor.NotifyBaseURL == "" {
		return fmt.Errorf("monitor.notify_base_url is required")
	}
	if _, err := c.CooldownDuration(); err != nil {
		return fmt.Errorf("monitor.cooldown: %w", err)
	}
	if _, err := time.LoadLocation(c.Window.Timezone); err != nil {
		return fmt.Errorf("trading_window.timezone: %w", err)
	}
	return nil
}
