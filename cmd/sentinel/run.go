package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockSentinel/internal/scheduler"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run as a daemon, scheduling scan and monitor with cron",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rec := newRecorder(cfg)
			defer rec.Close()

			sched := scheduler.NewScheduler()
			err = sched.RegisterAll(cfg.Scan.Cron, cfg.Monitor.Cron,
				func() {
					if err := runScan(cfg, rec); err != nil {
						log.Error().Err(err).Msg("scheduled scan failed")
					}
				},
				func() {
					if err := runMonitor(cfg, rec, false); err != nil {
						log.Error().Err(err).Msg("scheduled monitor failed")
					}
				},
			)
			if err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("RUN_ON_START enabled, executing scan now")
				go func() {
					if err := runScan(cfg, rec); err != nil {
						log.Error().Err(err).Msg("startup scan failed")
					}
				}()
			}

			log.Info().
				Str("scan_cron", cfg.Scan.Cron).
				Str("monitor_cron", cfg.Monitor.Cron).
				Msg("sentinel is running, press Ctrl+C to stop")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info().Msg("shutdown signal received, stopping")
			return nil
		},
	}
}
