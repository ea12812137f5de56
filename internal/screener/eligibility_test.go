package screener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockSentinel/internal/model"
)

func TestBuildDividendProfile_TrailingWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	events := []model.DividendEvent{
		{Time: now.AddDate(-2, 0, 0), Amount: 5.0}, // outside 365d
		{Time: now.AddDate(0, -10, 0), Amount: 1.5},
		{Time: now.AddDate(0, -2, 0), Amount: 1.5},
	}
	p := BuildDividendProfile("2330", events, 100, now)
	assert.True(t, p.HasDividend)
	assert.InDelta(t, 3.0, p.TrailingTotal, 1e-12)
	assert.InDelta(t, 3.0, p.YieldPct, 1e-12)
}

func TestBuildDividendProfile_DuplicateTimestampsKeepLast(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ts := now.AddDate(0, -1, 0)
	events := []model.DividendEvent{
		{Time: ts, Amount: 2.0},
		{Time: ts, Amount: 3.0}, // revision of the same payment
	}
	p := BuildDividendProfile("2330", events, 100, now)
	assert.InDelta(t, 3.0, p.TrailingTotal, 1e-12)
}

func TestBuildDividendProfile_NoClose(t *testing.T) {
	now := time.Now()
	events := []model.DividendEvent{{Time: now.AddDate(0, -1, 0), Amount: 2.0}}
	p := BuildDividendProfile("2330", events, 0, now)
	assert.True(t, p.HasDividend)
	assert.Equal(t, 0.0, p.YieldPct)
	assert.False(t, Qualifies(p, 3.0))
}

func TestBuildDividendProfile_YieldCeiling(t *testing.T) {
	now := time.Now()
	events := []model.DividendEvent{{Time: now.AddDate(0, -1, 0), Amount: 25.0}}
	p := BuildDividendProfile("9999", events, 100, now)
	// 25% yield is treated as a data artifact and forced to 0.
	assert.True(t, p.HasDividend)
	assert.Equal(t, 0.0, p.YieldPct)
	assert.False(t, Qualifies(p, 3.0))
}

func TestQualifies_Boundary(t *testing.T) {
	at := model.DividendProfile{HasDividend: true, TrailingTotal: 3.0, YieldPct: 3.00}
	below := model.DividendProfile{HasDividend: true, TrailingTotal: 2.999, YieldPct: 2.999}
	assert.True(t, Qualifies(at, 3.0))
	assert.False(t, Qualifies(below, 3.0))
}

func TestQualifies_NoDividend(t *testing.T) {
	p := model.DividendProfile{HasDividend: false, YieldPct: 5.0}
	assert.False(t, Qualifies(p, 3.0))
}
