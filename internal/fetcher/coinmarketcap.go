package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"CryptoRadar/internal/model"
)

// CoinMarketCapFetcher implements Fetcher using the CoinMarketCap Pro API.
// Requests fail without an API key; callers should only put this fetcher in
// the chain when a key is configured.
type CoinMarketCapFetcher struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

// NewCoinMarketCapFetcher creates a new CoinMarketCap fetcher.
func NewCoinMarketCapFetcher(baseURL, apiKey, proxyURL string) *CoinMarketCapFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinMarketCapFetcher{
		Client: &http.Client{
			Timeout:   25 * time.Second,
			Transport: transport,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
	}
}

func (f *CoinMarketCapFetcher) Name() string { return "coinmarketcap" }

// cmcListings is the /cryptocurrency/listings/latest response.
type cmcListings struct {
	Data []struct {
		ID     json.Number `json:"id"`
		Name   string      `json:"name"`
		Symbol string      `json:"symbol"`
		Quote  struct {
			USD struct {
				Price       interface{} `json:"price"`
				Change24h   interface{} `json:"percent_change_24h"`
				Volume24h   interface{} `json:"volume_24h"`
			} `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}

// cmcOHLCV is the /cryptocurrency/ohlcv/historical response.
type cmcOHLCV struct {
	Data struct {
		Quotes []struct {
			TimeOpen time.Time `json:"time_open"`
			Quote    struct {
				USD struct {
					Close  interface{} `json:"close"`
					Volume interface{} `json:"volume"`
				} `json:"USD"`
			} `json:"quote"`
		} `json:"quotes"`
	} `json:"data"`
}

func (f *CoinMarketCapFetcher) get(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", f.APIKey)

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("coinmarketcap fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("coinmarketcap read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coinmarketcap: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("coinmarketcap decode: %w", err)
	}
	return nil
}

// FetchQuotes returns the top market-cap assets as AssetQuotes with api provenance.
func (f *CoinMarketCapFetcher) FetchQuotes(limit int) ([]model.AssetQuote, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("coinmarketcap: api key not configured")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	u := fmt.Sprintf("%s/cryptocurrency/listings/latest?convert=USD&sort=market_cap&limit=%d",
		f.BaseURL, limit)

	var listings cmcListings
	if err := f.get(u, &listings); err != nil {
		return nil, err
	}

	quotes := make([]model.AssetQuote, 0, len(listings.Data))
	for _, d := range listings.Data {
		quotes = append(quotes, model.AssetQuote{
			Name:       d.Name,
			Symbol:     strings.ToUpper(d.Symbol),
			Price:      toFloat(d.Quote.USD.Price),
			Change24h:  toFloat(d.Quote.USD.Change24h),
			Volume:     toFloat(d.Quote.USD.Volume24h),
			Provenance: model.ProvenanceAPI,
			ProviderID: d.ID.String(),
		})
	}
	if len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes, nil
}

// FetchHistory returns daily close/volume samples for one asset within [start, end].
func (f *CoinMarketCapFetcher) FetchHistory(providerID string, start, end time.Time) ([]model.PricePoint, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("coinmarketcap: api key not configured")
	}
	if providerID == "" {
		return nil, fmt.Errorf("coinmarketcap: provider id required for history")
	}
	u := fmt.Sprintf("%s/cryptocurrency/ohlcv/historical?id=%s&convert=USD&time_start=%s&time_end=%s",
		f.BaseURL, url.QueryEscape(providerID),
		url.QueryEscape(start.UTC().Format(time.RFC3339)),
		url.QueryEscape(end.UTC().Format(time.RFC3339)))

	var hist cmcOHLCV
	if err := f.get(u, &hist); err != nil {
		return nil, err
	}
	if len(hist.Data.Quotes) == 0 {
		return nil, fmt.Errorf("coinmarketcap: no history returned for %s", providerID)
	}

	points := make([]model.PricePoint, 0, len(hist.Data.Quotes))
	for _, q := range hist.Data.Quotes {
		points = append(points, model.PricePoint{
			Time:   q.TimeOpen,
			Close:  toFloat(q.Quote.USD.Close),
			Volume: toFloat(q.Quote.USD.Volume),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}
