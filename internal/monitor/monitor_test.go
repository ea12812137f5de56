package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/alert"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
)

type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) Notify(code string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, code)
	return nil
}

func newTestMonitor(t *testing.T, live map[string]float64, notifier alert.Notifier) (*Monitor, string) {
	t.Helper()
	ledgerPath := filepath.Join(t.TempDir(), "ledger.json")
	fetcher := &collector.MockFetcher{LivePrices: live}
	m := New(fetcher, alert.Gate{Cooldown: time.Hour}, notifier, ledgerPath)
	return m, ledgerPath
}

func monitored(code string, low float64) model.MonitoredStock {
	return model.MonitoredStock{Code: code, Name: "測試", Market: model.MarketListed, MonthlyLow: low}
}

func TestRun_BreachCooldownRealert(t *testing.T) {
	notifier := &fakeNotifier{}
	m, ledgerPath := newTestMonitor(t, map[string]float64{"2371": 45.0}, notifier)
	stocks := []model.MonitoredStock{monitored("2371", 50.0)}

	start := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)

	// First run: never alerted, breaching → notification fires.
	m.now = func() time.Time { return start }
	summary, results, err := m.Run(stocks)
	require.NoError(t, err)
	assert.Equal(t, Summary{Checked: 1, Breached: 1, Notified: 1}, summary)
	assert.Equal(t, StatusNotified, results[0].Status)
	assert.Equal(t, []string{"2371"}, notifier.calls)

	ledger, err := alert.LoadLedger(ledgerPath)
	require.NoError(t, err)
	last, ok := ledger.LastAlert("2371")
	require.True(t, ok)
	assert.True(t, last.Equal(start))

	// Second run 10 minutes later: still breaching → suppressed.
	m.now = func() time.Time { return start.Add(10 * time.Minute) }
	summary, results, err = m.Run(stocks)
	require.NoError(t, err)
	assert.Equal(t, Summary{Checked: 1, Breached: 1, Suppressed: 1}, summary)
	assert.Equal(t, StatusSuppressed, results[0].Status)
	assert.Equal(t, 10*time.Minute, results[0].SinceLast)
	assert.Len(t, notifier.calls, 1)

	// Third run 61 minutes after the first: cooldown elapsed → fires again.
	m.now = func() time.Time { return start.Add(61 * time.Minute) }
	summary, _, err = m.Run(stocks)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Notified)
	assert.Equal(t, []string{"2371", "2371"}, notifier.calls)
}

func TestRun_NoBreachLeavesLedgerUntouched(t *testing.T) {
	notifier := &fakeNotifier{}
	m, ledgerPath := newTestMonitor(t, map[string]float64{"1234": 51.0}, notifier)

	summary, results, err := m.Run([]model.MonitoredStock{monitored("1234", 50.0)})
	require.NoError(t, err)
	assert.Equal(t, Summary{Checked: 1}, summary)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Empty(t, notifier.calls)

	// No breach, no dirty ledger, no file written.
	_, err = os.Stat(ledgerPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_FailedNotificationLeavesLedgerUnchanged(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("connection refused")}
	m, ledgerPath := newTestMonitor(t, map[string]float64{"2371": 45.0}, notifier)

	summary, results, err := m.Run([]model.MonitoredStock{monitored("2371", 50.0)})
	require.NoError(t, err)
	assert.Equal(t, StatusNotifyFailed, results[0].Status)
	assert.Equal(t, 1, summary.Breached)
	assert.Equal(t, 0, summary.Notified)

	// Nothing recorded, so the next run retries unconditionally.
	_, err = os.Stat(ledgerPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_FailedNotificationKeepsLedgerBytes(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("timeout")}
	m, ledgerPath := newTestMonitor(t, map[string]float64{"2371": 45.0}, notifier)

	seed := []byte(`{"1101": "2026-08-30T10:00:00+08:00"}`)
	require.NoError(t, os.WriteFile(ledgerPath, seed, 0644))

	_, _, err := m.Run([]model.MonitoredStock{monitored("2371", 50.0)})
	require.NoError(t, err)

	after, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)
	assert.Equal(t, seed, after)
}

func TestRun_QuoteUnavailableSkips(t *testing.T) {
	notifier := &fakeNotifier{}
	m, _ := newTestMonitor(t, map[string]float64{}, notifier)

	summary, results, err := m.Run([]model.MonitoredStock{monitored("2371", 50.0)})
	require.NoError(t, err)
	assert.Equal(t, StatusNoQuote, results[0].Status)
	assert.Equal(t, Summary{Checked: 1, Skipped: 1}, summary)
	assert.Empty(t, notifier.calls)
}

func TestRun_ExactLowIsNotABreach(t *testing.T) {
	notifier := &fakeNotifier{}
	m, _ := newTestMonitor(t, map[string]float64{"2371": 50.0}, notifier)

	_, results, err := m.Run([]model.MonitoredStock{monitored("2371", 50.0)})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, results[0].Status)
}

func TestRun_EmptyList(t *testing.T) {
	notifier := &fakeNotifier{}
	m, _ := newTestMonitor(t, nil, notifier)
	summary, results, err := m.Run(nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Empty(t, results)
}

func TestWindow_TradingHours(t *testing.T) {
	w, err := NewWindow("Asia/Taipei", "09:00", "13:30")
	require.NoError(t, err)

	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"monday mid-session", time.Date(2026, 8, 31, 10, 0, 0, 0, taipei), true},
		{"open boundary", time.Date(2026, 8, 31, 9, 0, 0, 0, taipei), true},
		{"close boundary", time.Date(2026, 8, 31, 13, 30, 0, 0, taipei), true},
		{"before open", time.Date(2026, 8, 31, 8, 59, 0, 0, taipei), false},
		{"after close", time.Date(2026, 8, 31, 13, 31, 0, 0, taipei), false},
		{"saturday", time.Date(2026, 9, 5, 10, 0, 0, 0, taipei), false},
		{"sunday", time.Date(2026, 9, 6, 10, 0, 0, 0, taipei), false},
		{"utc time inside window", time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC), true}, // 10:00 Taipei
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.t))
		})
	}
}

func TestNewWindow_Invalid(t *testing.T) {
	_, err := NewWindow("Not/AZone", "09:00", "13:30")
	assert.Error(t, err)
	_, err = NewWindow("Asia/Taipei", "9am", "13:30")
	assert.Error(t, err)
	_, err = NewWindow("Asia/Taipei", "14:00", "13:30")
	assert.Error(t, err)
}
