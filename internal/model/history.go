package model

import "time"

// HistoryRecord is one row of the append-only snapshot log. Every quote in a
// merged snapshot is logged once, all rows sharing the snapshot timestamp.
type HistoryRecord struct {
	Time       time.Time
	Name       string
	Symbol     string
	Price      float64
	Change24h  float64
	Volume     float64
	Provenance Provenance
}

// SeriesPoint is one sample of a per-symbol derived series.
type SeriesPoint struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Volume float64   `json:"volume"`
	Change float64   `json:"change"`
}
