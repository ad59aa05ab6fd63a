package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"CryptoRadar/internal/model"
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko public API.
type CoinGeckoFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewCoinGeckoFetcher creates a new CoinGecko fetcher.
func NewCoinGeckoFetcher(baseURL, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		Client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// geckoMarket is one element of the /coins/markets response.
type geckoMarket struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Symbol        string      `json:"symbol"`
	CurrentPrice  interface{} `json:"current_price"`
	Change24hPct  interface{} `json:"price_change_percentage_24h"`
	TotalVolume   interface{} `json:"total_volume"`
}

// geckoChart is the /coins/{id}/market_chart response.
type geckoChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *CoinGeckoFetcher) get(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("coingecko decode: %w", err)
	}
	return nil
}

// FetchQuotes returns the top market-cap assets as AssetQuotes with api provenance.
func (f *CoinGeckoFetcher) FetchQuotes(limit int) ([]model.AssetQuote, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	u := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false",
		f.BaseURL, limit)

	var markets []geckoMarket
	if err := f.get(u, &markets); err != nil {
		return nil, err
	}

	quotes := make([]model.AssetQuote, 0, len(markets))
	for _, m := range markets {
		quotes = append(quotes, model.AssetQuote{
			Name:       m.Name,
			Symbol:     strings.ToUpper(m.Symbol),
			Price:      toFloat(m.CurrentPrice),
			Change24h:  toFloat(m.Change24hPct),
			Volume:     toFloat(m.TotalVolume),
			Provenance: model.ProvenanceAPI,
			ProviderID: m.ID,
		})
	}
	if len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes, nil
}

// FetchHistory returns hourly close/volume samples for one asset within [start, end].
func (f *CoinGeckoFetcher) FetchHistory(providerID string, start, end time.Time) ([]model.PricePoint, error) {
	if providerID == "" {
		return nil, fmt.Errorf("coingecko: provider id required for history")
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	u := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=hourly",
		f.BaseURL, url.PathEscape(providerID), days)

	var chart geckoChart
	if err := f.get(u, &chart); err != nil {
		return nil, err
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: no history returned for %s", providerID)
	}

	// Volumes arrive as a parallel array keyed by the same epoch timestamps.
	volumes := make(map[int64]float64, len(chart.TotalVolumes))
	for _, v := range chart.TotalVolumes {
		volumes[int64(v[0])] = v[1]
	}

	points := make([]model.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		ts := time.UnixMilli(int64(p[0]))
		if ts.Before(start) || ts.After(end) {
			continue
		}
		points = append(points, model.PricePoint{
			Time:   ts,
			Close:  p[1],
			Volume: volumes[int64(p[0])],
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}
