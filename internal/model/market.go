package model

import "time"

// Market identifies which Taiwan exchange board a security trades on.
type Market string

const (
	MarketListed Market = "上市" // TWSE main board
	MarketOTC    Market = "上櫃" // TPEX over-the-counter
)

// YahooSuffix returns the ticker suffix Yahoo Finance uses for this board.
func (m Market) YahooSuffix() string {
	if m == MarketOTC {
		return ".TWO"
	}
	return ".TW"
}

// Security is one entry of the tradable universe.
type Security struct {
	Code   string
	Name   string
	Market Market
}

// Ticker returns the Yahoo Finance symbol for the security.
func (s Security) Ticker() string {
	return s.Code + s.Market.YahooSuffix()
}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// DividendEvent is a single cash dividend payment.
type DividendEvent struct {
	Time   time.Time
	Amount float64
}
