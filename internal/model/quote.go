package model

import "time"

// Provenance identifies where a quote row came from.
type Provenance string

const (
	ProvenanceAPI  Provenance = "api"
	ProvenanceUser Provenance = "user"
	ProvenanceDemo Provenance = "demo"
)

// AssetQuote is one asset's market snapshot at a point in time.
// Symbol is uppercased at ingestion and never re-cased downstream.
type AssetQuote struct {
	Name       string     `json:"name"`
	Symbol     string     `json:"symbol"`
	Price      float64    `json:"price"`
	Change24h  float64    `json:"change"`
	Volume     float64    `json:"volume"`
	Provenance Provenance `json:"source"`
	ProviderID string     `json:"provider_id,omitempty"`
}

// PricePoint is one sample of a provider's historical series.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
