package fetcher

import (
	"time"

	"CryptoRadar/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quotes  []model.AssetQuote
	History []model.PricePoint
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuotes(limit int) ([]model.AssetQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && len(m.Quotes) > limit {
		return m.Quotes[:limit], nil
	}
	return m.Quotes, nil
}

func (m *MockFetcher) FetchHistory(_ string, _, _ time.Time) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.History, nil
}
