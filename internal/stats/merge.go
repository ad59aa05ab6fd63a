package stats

import "CryptoRadar/internal/model"

// Merge unions API-fetched quotes and user-submitted entries into one
// snapshot: API rows first, then user rows, each keeping its own provenance.
// Rows are never deduplicated by symbol; a user row shadowing an API symbol
// stays a distinct row distinguished by its provenance tag.
func Merge(apiQuotes []model.AssetQuote, entries []model.UserEntry) []model.AssetQuote {
	merged := make([]model.AssetQuote, 0, len(apiQuotes)+len(entries))
	merged = append(merged, apiQuotes...)
	for _, e := range entries {
		merged = append(merged, e.Quote())
	}
	return merged
}
