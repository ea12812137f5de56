package model

// ScanResult is one qualifying row of a scan report. Rows are never mutated
// after the scan pass that created them.
type ScanResult struct {
	Code          string
	Name          string
	Market        Market
	CurrentPrice  float64
	MonthlyLow    float64
	TrailingDiv   float64
	YieldPct      float64
	Regime        Regime
	CurrHistogram float64
	PrevHistogram float64
}

// MonitoredStock is the subset of a ScanResult the monitor needs, as
// reconstructed by parsing the hand-off report.
type MonitoredStock struct {
	Code       string
	Name       string
	Market     Market
	MonthlyLow float64
}
