package recorder

import "StockSentinel/internal/model"

// ScanRunEvent holds the outcome of one full scan pass, qualifying rows
// included.
type ScanRunEvent struct {
	Total       int
	Qualified   int
	NoSignal    int
	NotEligible int
	Skipped     int
	Results     []model.ScanResult
}

// MonitorRunEvent holds the aggregate counts of one monitor pass.
type MonitorRunEvent struct {
	Checked    int
	Breached   int
	Notified   int
	Suppressed int
	Skipped    int
}

// AlertEvent records a single breach decision.
type AlertEvent struct {
	Code       string
	Name       string
	LivePrice  float64
	MonthlyLow float64
	Status     string // "notified", "suppressed", "notify_failed"
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordScanRun(evt *ScanRunEvent) error
	RecordMonitorRun(evt *MonitorRunEvent) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
