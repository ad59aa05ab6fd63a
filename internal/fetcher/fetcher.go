package fetcher

import (
	"time"

	"CryptoRadar/internal/model"
)

// DefaultLimit is the number of quotes requested when the caller passes none.
const DefaultLimit = 5

// Fetcher defines the interface for fetching market data from one provider.
type Fetcher interface {
	// FetchQuotes returns up to limit quotes ranked by descending market cap.
	FetchQuotes(limit int) ([]model.AssetQuote, error)
	// FetchHistory returns the ordered historical series for one asset,
	// keyed by the provider's own asset identifier.
	FetchHistory(providerID string, start, end time.Time) ([]model.PricePoint, error)
	Name() string
}
