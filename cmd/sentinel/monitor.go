package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockSentinel/internal/alert"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/monitor"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/report"
)

func newMonitorCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Check live prices against monthly lows and fire breach alerts",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rec := newRecorder(cfg)
			defer rec.Close()
			return runMonitor(cfg, rec, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "run even outside the trading window")
	return cmd
}

func runMonitor(cfg *config.Config, rec recorder.Recorder, force bool) error {
	window, err := monitor.NewWindow(cfg.Window.Timezone, cfg.Window.Open, cfg.Window.Close)
	if err != nil {
		return fmt.Errorf("trading window: %w", err)
	}
	if !force && !window.Contains(time.Now()) {
		log.Info().
			Str("open", cfg.Window.Open).
			Str("close", cfg.Window.Close).
			Msg("outside trading window, skipping run")
		return nil
	}

	stocks, err := report.ParseFile(cfg.Scan.OutputFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Expected before the first scan of the month has run.
			log.Info().Str("path", cfg.Scan.OutputFile).Msg("no scan report yet, nothing to monitor")
			return nil
		}
		return fmt.Errorf("parse report: %w", err)
	}
	log.Info().Int("stocks", len(stocks)).Msg("monitor starting")

	cooldown, err := cfg.CooldownDuration()
	if err != nil {
		return err
	}
	m := monitor.New(
		collector.NewYahooFetcher(cfg.Proxy),
		alert.Gate{Cooldown: cooldown},
		alert.NewTriggerNotifier(cfg.Monitor.NotifyBaseURL, cfg.Proxy),
		cfg.Monitor.LedgerFile,
	)

	summary, results, err := m.Run(stocks)
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}

	for _, res := range results {
		switch res.Status {
		case monitor.StatusNotified, monitor.StatusSuppressed, monitor.StatusNotifyFailed:
			if err := rec.RecordAlert(&recorder.AlertEvent{
				Code:       res.Stock.Code,
				Name:       res.Stock.Name,
				LivePrice:  res.LivePrice,
				MonthlyLow: res.Stock.MonthlyLow,
				Status:     string(res.Status),
			}); err != nil {
				log.Error().Err(err).Msg("record alert event")
			}
		}
	}
	if err := rec.RecordMonitorRun(&recorder.MonitorRunEvent{
		Checked:    summary.Checked,
		Breached:   summary.Breached,
		Notified:   summary.Notified,
		Suppressed: summary.Suppressed,
		Skipped:    summary.Skipped,
	}); err != nil {
		log.Error().Err(err).Msg("record monitor run")
	}
	return nil
}
