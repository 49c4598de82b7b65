package models

import "time"

// Candle represents one OHLCV bar. Slices of candles are ordered oldest to newest.
type Candle struct {
	Bucket time.Time `json:"t"`
	Open   float64   `json:"o"`
	High   float64   `json:"h"`
	Low    float64   `json:"l"`
	Close  float64   `json:"c"`
	Volume float64   `json:"v"`
}

// Closes extracts close prices in order.
func Closes(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Close
	}
	return out
}

// PricePoint is a single observation on a realized price path.
type PricePoint struct {
	Time  time.Time `json:"t"`
	Price float64   `json:"p"`
}

// PricePath is ordered by time, oldest first.
type PricePath []PricePoint
