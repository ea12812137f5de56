package monitor

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"StockSentinel/internal/alert"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
)

// Status classifies the outcome of checking one monitored security.
type Status string

const (
	StatusOK           Status = "ok"            // trading at or above the monthly low
	StatusNotified     Status = "notified"      // breached, notification delivered
	StatusSuppressed   Status = "suppressed"    // breached, still cooling down
	StatusNotifyFailed Status = "notify_failed" // breached, outbound call failed
	StatusNoQuote      Status = "no_quote"      // live price unavailable
)

// CheckResult records one security's check during a monitor run.
type CheckResult struct {
	Stock     model.MonitoredStock
	Status    Status
	LivePrice float64
	SinceLast time.Duration // set for suppressed results
}

// Summary aggregates a monitor run.
type Summary struct {
	Checked    int
	Breached   int
	Notified   int
	Suppressed int
	Skipped    int
}

// Monitor polls live prices for the report's securities and fires throttled
// breach notifications.
type Monitor struct {
	fetcher    collector.Fetcher
	gate       alert.Gate
	notifier   alert.Notifier
	ledgerPath string
	now        func() time.Time
}

// New creates a Monitor.
func New(fetcher collector.Fetcher, gate alert.Gate, notifier alert.Notifier, ledgerPath string) *Monitor {
	return &Monitor{
		fetcher:    fetcher,
		gate:       gate,
		notifier:   notifier,
		ledgerPath: ledgerPath,
		now:        time.Now,
	}
}

// Run checks every monitored security once. Per-security failures are
// recorded and skipped; the run always completes. The alert ledger is loaded
// once, mutated only after successful notifications, and written back at the
// end only if something changed.
func (m *Monitor) Run(stocks []model.MonitoredStock) (Summary, []CheckResult, error) {
	summary := Summary{}
	if len(stocks) == 0 {
		log.Info().Msg("nothing to monitor")
		return summary, nil, nil
	}

	ledger, err := alert.LoadLedger(m.ledgerPath)
	if err != nil {
		return summary, nil, fmt.Errorf("load ledger: %w", err)
	}

	results := make([]CheckResult, 0, len(stocks))
	for _, stock := range stocks {
		res := m.checkOne(stock, ledger)
		results = append(results, res)
		summary.Checked++
		switch res.Status {
		case StatusNotified:
			summary.Breached++
			summary.Notified++
		case StatusSuppressed:
			summary.Breached++
			summary.Suppressed++
		case StatusNotifyFailed:
			summary.Breached++
		case StatusNoQuote:
			summary.Skipped++
		}
	}

	if ledger.Dirty() {
		if err := ledger.Save(); err != nil {
			return summary, results, fmt.Errorf("save ledger: %w", err)
		}
	}

	log.Info().
		Int("checked", summary.Checked).
		Int("breached", summary.Breached).
		Int("notified", summary.Notified).
		Int("suppressed", summary.Suppressed).
		Int("skipped", summary.Skipped).
		Msg("monitor run finished")
	return summary, results, nil
}

func (m *Monitor) checkOne(stock model.MonitoredStock, ledger *alert.Ledger) CheckResult {
	sec := model.Security{Code: stock.Code, Name: stock.Name, Market: stock.Market}
	price, err := m.fetcher.FetchLivePrice(sec)
	if err != nil {
		log.Warn().Str("code", stock.Code).Str("name", stock.Name).Err(err).Msg("no live quote")
		return CheckResult{Stock: stock, Status: StatusNoQuote}
	}

	if price >= stock.MonthlyLow {
		log.Debug().
			Str("code", stock.Code).
			Float64("live", price).
			Float64("monthly_low", stock.MonthlyLow).
			Msg("ok")
		return CheckResult{Stock: stock, Status: StatusOK, LivePrice: price}
	}

	// Breaching: live price strictly below the recorded monthly low.
	now := m.now()
	if !m.gate.ShouldNotify(ledger, stock.Code, now) {
		elapsed, _ := m.gate.SinceLast(ledger, stock.Code, now)
		log.Info().
			Str("code", stock.Code).
			Str("name", stock.Name).
			Float64("live", price).
			Float64("monthly_low", stock.MonthlyLow).
			Dur("since_last_alert", elapsed).
			Msg("breach suppressed, cooling down")
		return CheckResult{Stock: stock, Status: StatusSuppressed, LivePrice: price, SinceLast: elapsed}
	}

	if err := m.notifier.Notify(stock.Code); err != nil {
		// Ledger stays untouched so the very next eligible run retries.
		log.Error().Str("code", stock.Code).Str("name", stock.Name).Err(err).Msg("notification failed")
		return CheckResult{Stock: stock, Status: StatusNotifyFailed, LivePrice: price}
	}
	ledger.Record(stock.Code, now)
	log.Info().
		Str("code", stock.Code).
		Str("name", stock.Name).
		Float64("live", price).
		Float64("monthly_low", stock.MonthlyLow).
		Msg("breach notified")
	return CheckResult{Stock: stock, Status: StatusNotified, LivePrice: price}
}
