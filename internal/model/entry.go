package model

// UserEntry is a persisted user-submitted row. Entries are append-only:
// no edit or delete operation exists.
type UserEntry struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
	Volume float64 `json:"volume"`
}

// Quote materializes the entry as an AssetQuote with user provenance.
func (e UserEntry) Quote() AssetQuote {
	return AssetQuote{
		Name:       e.Name,
		Symbol:     e.Symbol,
		Price:      e.Price,
		Change24h:  e.Change,
		Volume:     e.Volume,
		Provenance: ProvenanceUser,
	}
}
