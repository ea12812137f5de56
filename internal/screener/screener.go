package screener

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
	"StockSentinel/internal/universe"
)

// Status classifies the outcome of screening one security.
type Status string

const (
	StatusQualified   Status = "qualified"
	StatusNoSignal    Status = "no_signal"
	StatusNotEligible Status = "not_eligible"
	StatusSkipped     Status = "skipped" // fetch failure or insufficient history
)

// Outcome records what happened to a single security during a scan. Failures
// become skip outcomes instead of errors so one bad security never aborts the
// run, while every skip stays countable.
type Outcome struct {
	Security model.Security
	Status   Status
	Reason   string
}

// Summary aggregates a scan run.
type Summary struct {
	Total       int
	Qualified   int
	NoSignal    int
	NotEligible int
	Skipped     int
}

// Screener screens the security universe for the first-positive-MACD-bar
// signal combined with the dividend-yield filter.
type Screener struct {
	universe    universe.Lister
	fetcher     collector.Fetcher
	minYieldPct float64
	now         func() time.Time
}

// New creates a Screener.
func New(lister universe.Lister, fetcher collector.Fetcher, minYieldPct float64) *Screener {
	return &Screener{
		universe:    lister,
		fetcher:     fetcher,
		minYieldPct: minYieldPct,
		now:         time.Now,
	}
}

// Run screens the whole universe and returns the qualifying rows sorted
// descending by trailing yield (ties keep universe order), together with
// per-security outcomes and an aggregate summary.
func (s *Screener) Run() ([]model.ScanResult, []Outcome, Summary, error) {
	secs, err := s.universe.List()
	if err != nil {
		return nil, nil, Summary{}, fmt.Errorf("list universe: %w", err)
	}

	results := make([]model.ScanResult, 0)
	outcomes := make([]Outcome, 0, len(secs))
	summary := Summary{Total: len(secs)}

	for i, sec := range secs {
		log.Debug().
			Int("progress", i+1).
			Int("total", len(secs)).
			Str("code", sec.Code).
			Str("name", sec.Name).
			Msg("screening")

		outcome, row := s.screenOne(sec)
		outcomes = append(outcomes, outcome)
		if row != nil {
			results = append(results, *row)
		}
		switch outcome.Status {
		case StatusQualified:
			summary.Qualified++
		case StatusNoSignal:
			summary.NoSignal++
		case StatusNotEligible:
			summary.NotEligible++
		case StatusSkipped:
			summary.Skipped++
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].YieldPct > results[j].YieldPct
	})

	log.Info().
		Int("total", summary.Total).
		Int("qualified", summary.Qualified).
		Int("no_signal", summary.NoSignal).
		Int("not_eligible", summary.NotEligible).
		Int("skipped", summary.Skipped).
		Msg("scan finished")

	return results, outcomes, summary, nil
}

func (s *Screener) screenOne(sec model.Security) (Outcome, *model.ScanResult) {
	bars, err := s.fetcher.FetchMonthlyBars(sec)
	if err != nil {
		return Outcome{Security: sec, Status: StatusSkipped, Reason: fmt.Sprintf("monthly bars: %v", err)}, nil
	}
	if len(bars) < calculator.MinMonthlyBars {
		return Outcome{Security: sec, Status: StatusSkipped, Reason: "insufficient history"}, nil
	}

	series, err := calculator.CalculateMACD(calculator.ExtractCloses(bars),
		calculator.DefaultFastSpan, calculator.DefaultSlowSpan, calculator.DefaultSignalSpan)
	if err != nil {
		return Outcome{Security: sec, Status: StatusSkipped, Reason: fmt.Sprintf("macd: %v", err)}, nil
	}
	evt := calculator.DetectFirstPositiveBar(series)
	if !evt.Fired {
		return Outcome{Security: sec, Status: StatusNoSignal}, nil
	}

	divs, err := s.fetcher.FetchDividends(sec)
	if err != nil {
		return Outcome{Security: sec, Status: StatusSkipped, Reason: fmt.Sprintf("dividends: %v", err)}, nil
	}
	recentClose, err := s.fetcher.FetchRecentClose(sec)
	if err != nil {
		return Outcome{Security: sec, Status: StatusSkipped, Reason: fmt.Sprintf("recent close: %v", err)}, nil
	}

	profile := BuildDividendProfile(sec.Code, divs, recentClose, s.now())
	if !Qualifies(profile, s.minYieldPct) {
		return Outcome{Security: sec, Status: StatusNotEligible}, nil
	}

	last := bars[len(bars)-1]
	row := &model.ScanResult{
		Code:          sec.Code,
		Name:          sec.Name,
		Market:        sec.Market,
		CurrentPrice:  last.Close,
		MonthlyLow:    last.Low,
		TrailingDiv:   profile.TrailingTotal,
		YieldPct:      profile.YieldPct,
		Regime:        evt.Regime,
		CurrHistogram: evt.CurrHistogram,
		PrevHistogram: evt.PrevHistogram,
	}
	log.Info().
		Str("code", sec.Code).
		Str("name", sec.Name).
		Float64("yield_pct", profile.YieldPct).
		Str("regime", string(evt.Regime)).
		Msg("qualified")
	return Outcome{Security: sec, Status: StatusQualified}, row
}
