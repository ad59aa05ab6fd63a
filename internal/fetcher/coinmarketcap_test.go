package fetcher

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const cmcListingsBody = `{"data":[
	{"id":1,"name":"Bitcoin","symbol":"btc","quote":{"USD":{"price":64000.5,"percent_change_24h":2.5,"volume_24h":32000000000}}},
	{"id":1027,"name":"Ethereum","symbol":"ETH","quote":{"USD":{"price":3100,"percent_change_24h":null,"volume_24h":16000000000}}}
]}`

func TestCoinMarketCapFetcher_FetchQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cryptocurrency/listings/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-CMC_PRO_API_KEY") != "test-key" {
			t.Error("expected api key header")
		}
		w.Write([]byte(cmcListingsBody))
	}))
	defer srv.Close()

	quotes, err := NewCoinMarketCapFetcher(srv.URL, "test-key", "").FetchQuotes(2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Symbol != "BTC" || quotes[0].ProviderID != "1" {
		t.Errorf("btc row mismatch: %+v", quotes[0])
	}
	if quotes[1].Change24h != 0 {
		t.Errorf("null change must coerce to 0, got %f", quotes[1].Change24h)
	}
}

func TestCoinMarketCapFetcher_NoKey(t *testing.T) {
	f := NewCoinMarketCapFetcher("http://unused", "", "")
	if _, err := f.FetchQuotes(5); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := f.FetchHistory("1", time.Now().Add(-time.Hour), time.Now()); err == nil {
		t.Error("expected history error without api key")
	}
}

func TestCoinMarketCapFetcher_FetchHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cryptocurrency/ohlcv/historical" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("id") != "1" || q.Get("convert") != "USD" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"data":{"quotes":[
			{"time_open":"2026-08-27T00:00:00Z","quote":{"USD":{"close":64000,"volume":100}}},
			{"time_open":"2026-08-26T00:00:00Z","quote":{"USD":{"close":63000,"volume":90}}}
		]}}`))
	}))
	defer srv.Close()

	f := NewCoinMarketCapFetcher(srv.URL, "test-key", "")
	points, err := f.FetchHistory("1", time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch history: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !points[0].Time.Before(points[1].Time) {
		t.Error("points must be time-ordered")
	}
	if points[1].Close != 64000 {
		t.Errorf("close mismatch: %+v", points[1])
	}
}
