package calculator

import "errors"

// CalculateEMA computes the exponential moving average of values with the
// given smoothing span. The recursion is seeded with the first value
// (pandas ewm adjust=false semantics):
//
//	ema[0] = values[0]
//	ema[i] = ema[i-1] + 2/(span+1) * (values[i] - ema[i-1])
func CalculateEMA(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(values) == 0 {
		return nil, errors.New("no values provided")
	}
	alpha := 2.0 / float64(span+1)
	ema := make([]float64, len(values))
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = ema[i-1] + alpha*(values[i]-ema[i-1])
	}
	return ema, nil
}
