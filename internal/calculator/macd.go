package calculator

import (
	"errors"

	"StockSentinel/internal/model"
)

// MinMonthlyBars is the least history needed before the slow EMA is
// considered meaningful.
const MinMonthlyBars = 12

// Default MACD smoothing spans.
const (
	DefaultFastSpan   = 12
	DefaultSlowSpan   = 26
	DefaultSignalSpan = 9
)

// CalculateMACD computes the MACD line, signal line and histogram for the
// given closing prices. All three slices are indexed like closes.
func CalculateMACD(closes []float64, fast, slow, signal int) (*model.MacdSeries, error) {
	if len(closes) == 0 {
		return nil, errors.New("no closes provided")
	}
	emaFast, err := CalculateEMA(closes, fast)
	if err != nil {
		return nil, err
	}
	emaSlow, err := CalculateEMA(closes, slow)
	if err != nil {
		return nil, err
	}
	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signalLine, err := CalculateEMA(macd, signal)
	if err != nil {
		return nil, err
	}
	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = macd[i] - signalLine[i]
	}
	return &model.MacdSeries{Macd: macd, Signal: signalLine, Histogram: hist}, nil
}

// DetectFirstPositiveBar checks whether the latest histogram bar is the first
// positive one, i.e. h[last] > 0 while h[last-1] <= 0. A previous bar of
// exactly 0 still counts as "not yet positive", so a 0→positive transition
// fires. Only the latest two bars are examined.
//
// Series with fewer than two points report no signal rather than an error.
func DetectFirstPositiveBar(series *model.MacdSeries) model.SignalEvent {
	n := series.Len()
	if n < 2 {
		return model.SignalEvent{}
	}
	curr := series.Histogram[n-1]
	prev := series.Histogram[n-2]
	if !(curr > 0 && prev <= 0) {
		return model.SignalEvent{}
	}
	regime := model.RegimeBearish
	if series.Macd[n-1] > 0 {
		regime = model.RegimeBullish
	}
	return model.SignalEvent{
		Fired:         true,
		CurrHistogram: curr,
		PrevHistogram: prev,
		Regime:        regime,
	}
}

// ExtractCloses pulls the closing prices out of a bar series.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
