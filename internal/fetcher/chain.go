package fetcher

import (
	"log"
	"time"

	"CryptoRadar/internal/model"
)

// Chain queries fetchers in order and returns the first successful result.
// A provider failure is a normal outcome, not an error: it is logged at WARN
// and the next source is tried. With a DemoFetcher as the final element the
// chain never comes back empty.
type Chain struct {
	Fetchers []Fetcher
}

// NewChain creates a fallback chain over the given fetchers.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{Fetchers: fetchers}
}

func (c *Chain) Name() string { return "chain" }

// Fetch returns up to limit quotes from the first fetcher that succeeds with
// a non-empty result. Returns an empty slice when every source fails.
func (c *Chain) Fetch(limit int) []model.AssetQuote {
	for _, f := range c.Fetchers {
		quotes, err := f.FetchQuotes(limit)
		if err != nil {
			log.Printf("[WARN] fetch quotes via %s: %v", f.Name(), err)
			continue
		}
		if len(quotes) == 0 {
			log.Printf("[WARN] fetch quotes via %s: empty result", f.Name())
			continue
		}
		return quotes
	}
	return []model.AssetQuote{}
}

// FetchHistory returns the historical series from the first fetcher that
// succeeds. Returns an empty slice when every source fails.
func (c *Chain) FetchHistory(providerID string, start, end time.Time) []model.PricePoint {
	for _, f := range c.Fetchers {
		points, err := f.FetchHistory(providerID, start, end)
		if err != nil {
			log.Printf("[WARN] fetch history via %s: %v", f.Name(), err)
			continue
		}
		if len(points) == 0 {
			log.Printf("[WARN] fetch history via %s: empty result", f.Name())
			continue
		}
		return points
	}
	return []model.PricePoint{}
}
