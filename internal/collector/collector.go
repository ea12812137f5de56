package collector

import (
	"fmt"
	"time"

	"StockSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// A security with no entry in a map behaves like a failed fetch.
type MockFetcher struct {
	MonthlyBars  map[string][]model.OHLCV
	Dividends    map[string][]model.DividendEvent
	RecentCloses map[string]float64
	LivePrices   map[string]float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMonthlyBars(sec model.Security) ([]model.OHLCV, error) {
	bars, ok := m.MonthlyBars[sec.Code]
	if !ok {
		return nil, fmt.Errorf("mock: no monthly bars for %s", sec.Code)
	}
	return bars, nil
}

func (m *MockFetcher) FetchDividends(sec model.Security) ([]model.DividendEvent, error) {
	divs, ok := m.Dividends[sec.Code]
	if !ok {
		return nil, fmt.Errorf("mock: no dividends for %s", sec.Code)
	}
	return divs, nil
}

func (m *MockFetcher) FetchRecentClose(sec model.Security) (float64, error) {
	price, ok := m.RecentCloses[sec.Code]
	if !ok {
		return 0, fmt.Errorf("mock: no recent close for %s", sec.Code)
	}
	return price, nil
}

func (m *MockFetcher) FetchLivePrice(sec model.Security) (float64, error) {
	price, ok := m.LivePrices[sec.Code]
	if !ok {
		return 0, fmt.Errorf("mock: no live quote for %s", sec.Code)
	}
	return price, nil
}

// GenerateMonthlyBars produces count synthetic monthly bars ending at the
// current month, with the given closes.
func GenerateMonthlyBars(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, -(len(closes) - 1 - i), 0),
			Open:   c * 0.99,
			High:   c * 1.02,
			Low:    c * 0.97,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}
