package model

// Regime classifies the MACD line position at the latest bar.
type Regime string

const (
	RegimeBullish Regime = "多頭"
	RegimeBearish Regime = "空頭"
)

// MacdSeries holds the three parallel MACD sequences, indexed like the
// closing-price series they were derived from.
type MacdSeries struct {
	Macd      []float64
	Signal    []float64
	Histogram []float64
}

// Len returns the number of computed points.
func (s *MacdSeries) Len() int { return len(s.Histogram) }

// SignalEvent is the result of the first-positive-histogram-bar check on a
// single security. It only exists transiently during a scan pass.
type SignalEvent struct {
	Fired         bool
	CurrHistogram float64
	PrevHistogram float64
	Regime        Regime
}

// DividendProfile summarizes trailing-year dividend data for one security.
type DividendProfile struct {
	HasDividend   bool
	TrailingTotal float64 // sum of dividends over the trailing 365 days
	YieldPct      float64 // TrailingTotal / recent close * 100, clamped
}
