package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/model"
)

func sampleResults() []model.ScanResult {
	return []model.ScanResult{
		{Code: "2330", Name: "台積電", Market: model.MarketListed, CurrentPrice: 580.00, MonthlyLow: 550.00,
			TrailingDiv: 11.00, YieldPct: 1.9, Regime: model.RegimeBullish, CurrHistogram: 0.1234, PrevHistogram: -0.5678},
		{Code: "2371", Name: "大同", Market: model.MarketListed, CurrentPrice: 52.30, MonthlyLow: 50.00,
			TrailingDiv: 2.00, YieldPct: 3.8, Regime: model.RegimeBearish, CurrHistogram: 0.0123, PrevHistogram: -0.0456},
		{Code: "6510", Name: "精測", Market: model.MarketOTC, CurrentPrice: 712.00, MonthlyLow: 690.50,
			TrailingDiv: 26.00, YieldPct: 3.6, Regime: model.RegimeBullish, CurrHistogram: 1.2000, PrevHistogram: 0.0000},
	}
}

func TestFormat_Layout(t *testing.T) {
	now := time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC)
	out := Format(sampleResults(), 3.0, now)

	assert.Contains(t, out, "台股月MACD第一根紅柱掃描結果")
	assert.Contains(t, out, "執行時間：2026-08-05 09:00")
	assert.Contains(t, out, "共找到 3 檔")
	assert.Contains(t, out, "2330")
	assert.Contains(t, out, strings.Repeat("=", 60))
	assert.Contains(t, out, strings.Repeat("-", 80))
}

func TestFormat_Empty(t *testing.T) {
	out := Format(nil, 3.0, time.Now())
	assert.Contains(t, out, "共找到 0 檔")
	assert.Contains(t, out, "本月無符合條件的股票")
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan_result.txt")
	now := time.Date(2026, 8, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, WriteFile(path, sampleResults(), 3.0, now))

	stocks, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, stocks, 3)

	// Original report order is preserved.
	assert.Equal(t, "2330", stocks[0].Code)
	assert.Equal(t, "台積電", stocks[0].Name)
	assert.Equal(t, model.MarketListed, stocks[0].Market)
	assert.InDelta(t, 550.00, stocks[0].MonthlyLow, 1e-9)

	assert.Equal(t, "2371", stocks[1].Code)
	assert.InDelta(t, 50.00, stocks[1].MonthlyLow, 1e-9)

	assert.Equal(t, "6510", stocks[2].Code)
	assert.Equal(t, model.MarketOTC, stocks[2].Market)
	assert.InDelta(t, 690.50, stocks[2].MonthlyLow, 1e-9)
}

func TestParse_SyntheticReportWithNoise(t *testing.T) {
	text := strings.Join([]string{
		strings.Repeat("=", 60),
		"台股月MACD第一根紅柱掃描結果",
		"執行時間：2026-08-05 09:00",
		"代號     名稱       市場   現價  當月最低價",
		strings.Repeat("-", 80),
		"2330O   台積電      上市   580.00     550.00   11.00",
		"",
		"23O71   大同        上市    52.30      50.00    2.00",
		"6510    精測        上櫃   712.00     690.50   26.00",
		"共找到 3 檔",
		strings.Repeat("=", 60),
	}, "\n")

	stocks, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, stocks, 3)

	// Every literal 'O' is stripped from codes, wherever it sits.
	assert.Equal(t, "2330", stocks[0].Code)
	assert.Equal(t, "2371", stocks[1].Code)
	assert.Equal(t, "6510", stocks[2].Code)
}

func TestParse_MalformedRowSkipped(t *testing.T) {
	text := "2330   台積電   上市   580.00   not-a-number   11.00\n" +
		"2371   大同     上市    52.30      50.00    2.00\n"
	stocks, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "2371", stocks[0].Code)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.True(t, os.IsNotExist(err))
}
