package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/report"
	"StockSentinel/internal/screener"
	"StockSentinel/internal/universe"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Screen the full universe and write the scan report",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rec := newRecorder(cfg)
			defer rec.Close()
			return runScan(cfg, rec)
		},
	}
}

func runScan(cfg *config.Config, rec recorder.Recorder) error {
	log.Info().Float64("min_yield_pct", cfg.Scan.MinDividendYield).Msg("scan starting")

	lister := universe.NewTwseISINLister(cfg.Proxy)
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	s := screener.New(lister, fetcher, cfg.Scan.MinDividendYield)

	results, _, summary, err := s.Run()
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if err := report.WriteFile(cfg.Scan.OutputFile, results, cfg.Scan.MinDividendYield, time.Now()); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Scan.OutputFile).Int("rows", len(results)).Msg("report written")

	if err := rec.RecordScanRun(&recorder.ScanRunEvent{
		Total:       summary.Total,
		Qualified:   summary.Qualified,
		NoSignal:    summary.NoSignal,
		NotEligible: summary.NotEligible,
		Skipped:     summary.Skipped,
		Results:     results,
	}); err != nil {
		log.Error().Err(err).Msg("record scan run")
	}
	return nil
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return rec
}
