package model

import "time"

// Stats holds cross-sectional summary statistics for one snapshot.
// TopGainer and TopLoser are nil when the snapshot is empty.
type Stats struct {
	TotalVolume float64     `json:"total_volume"`
	AvgChange   float64     `json:"avg_change"`
	TopGainer   *AssetQuote `json:"top_gainer"`
	TopLoser    *AssetQuote `json:"top_loser"`
	Count       int         `json:"count"`
	LastUpdated time.Time   `json:"last_updated"`
}

// BandPoint carries the rolling mean/volatility envelope for one sample.
type BandPoint struct {
	Time   time.Time `json:"time"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"stddev"`
	Upper  float64   `json:"upper"`
	Lower  float64   `json:"lower"`
}

// ExtremumKind marks a flagged turning point in a price series.
type ExtremumKind string

const (
	ExtremumPeak   ExtremumKind = "peak"
	ExtremumValley ExtremumKind = "valley"
)

// Extremum flags one series index as a local peak or valley.
type Extremum struct {
	Index int          `json:"index"`
	Time  time.Time    `json:"time"`
	Price float64      `json:"price"`
	Kind  ExtremumKind `json:"kind"`
}

// OHLC is one resampled candlestick bucket.
type OHLC struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
