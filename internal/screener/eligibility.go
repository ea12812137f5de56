package screener

import (
	"time"

	"github.com/rs/zerolog/log"

	"StockSentinel/internal/model"
)

// YieldCeilingPct is the sanity ceiling on a computed trailing yield. Values
// above it come from corrupt source data (e.g. mispriced closes) and are
// forced to 0, which disqualifies the security.
const YieldCeilingPct = 20.0

// trailingWindow is the dividend lookback, a rolling 365 days rather than a
// calendar year.
const trailingWindow = 365 * 24 * time.Hour

// BuildDividendProfile derives a dividend profile from raw dividend events and
// a recent closing price. Events sharing a timestamp are deduplicated keeping
// the last occurrence. A missing close (<= 0) produces a zero yield.
func BuildDividendProfile(code string, events []model.DividendEvent, recentClose float64, now time.Time) model.DividendProfile {
	byTime := make(map[time.Time]float64, len(events))
	order := make([]time.Time, 0, len(events))
	for _, ev := range events {
		if _, seen := byTime[ev.Time]; !seen {
			order = append(order, ev.Time)
		}
		byTime[ev.Time] = ev.Amount
	}

	cutoff := now.Add(-trailingWindow)
	var total float64
	for _, ts := range order {
		if !ts.Before(cutoff) {
			total += byTime[ts]
		}
	}

	profile := model.DividendProfile{
		HasDividend:   total > 0,
		TrailingTotal: total,
	}
	if recentClose > 0 {
		profile.YieldPct = total / recentClose * 100
	}
	if profile.YieldPct > YieldCeilingPct {
		log.Warn().
			Str("code", code).
			Float64("yield_pct", profile.YieldPct).
			Msg("implausible yield clamped to 0")
		profile.YieldPct = 0
	}
	return profile
}

// Qualifies reports whether a dividend profile passes the yield filter.
// The threshold is inclusive.
func Qualifies(p model.DividendProfile, minYieldPct float64) bool {
	return p.HasDividend && p.YieldPct >= minYieldPct
}
