package collector

import "StockSentinel/internal/model"

// Fetcher defines the interface for fetching market data for one security.
type Fetcher interface {
	// FetchMonthlyBars returns up to two years of monthly bars, ascending.
	FetchMonthlyBars(sec model.Security) ([]model.OHLCV, error)
	// FetchDividends returns historical cash dividend events, ascending.
	FetchDividends(sec model.Security) ([]model.DividendEvent, error)
	// FetchRecentClose returns the latest daily close within the last few sessions.
	FetchRecentClose(sec model.Security) (float64, error)
	// FetchLivePrice returns the most recent intraday (delayed) quote.
	FetchLivePrice(sec model.Security) (float64, error)
	Name() string
}
