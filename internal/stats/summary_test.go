package stats

import (
	"math"
	"testing"
	"time"

	"CryptoRadar/internal/model"
)

func TestSummarize_Empty(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	s := Summarize(nil, now)
	if s.TotalVolume != 0 {
		t.Errorf("expected zero total volume, got %f", s.TotalVolume)
	}
	if s.AvgChange != 0 {
		t.Errorf("expected zero avg change, got %f", s.AvgChange)
	}
	if s.TopGainer != nil || s.TopLoser != nil {
		t.Error("expected nil gainer and loser for empty snapshot")
	}
	if s.Count != 0 {
		t.Errorf("expected zero count, got %d", s.Count)
	}
	if !s.LastUpdated.Equal(now) {
		t.Errorf("expected last updated %v, got %v", now, s.LastUpdated)
	}
}

func TestSummarize_EndToEnd(t *testing.T) {
	snapshot := []model.AssetQuote{
		{Name: "Bitcoin", Symbol: "BTC", Change24h: 5, Volume: 100, Provenance: model.ProvenanceAPI},
		{Name: "Ethereum", Symbol: "ETH", Change24h: -3, Volume: 50, Provenance: model.ProvenanceAPI},
		{Name: "userCoin", Symbol: "UC", Change24h: 10, Volume: 25, Provenance: model.ProvenanceUser},
	}
	s := Summarize(snapshot, time.Now())

	if s.TopGainer == nil || s.TopGainer.Name != "userCoin" || s.TopGainer.Change24h != 10 {
		t.Errorf("expected top gainer userCoin (10), got %+v", s.TopGainer)
	}
	if s.TopLoser == nil || s.TopLoser.Symbol != "ETH" || s.TopLoser.Change24h != -3 {
		t.Errorf("expected top loser ETH (-3), got %+v", s.TopLoser)
	}
	if math.Abs(s.AvgChange-4.0) > 1e-9 {
		t.Errorf("expected avg change 4.0, got %f", s.AvgChange)
	}
	if s.Count != 3 {
		t.Errorf("expected count 3, got %d", s.Count)
	}
	if s.TotalVolume != 175 {
		t.Errorf("expected total volume 175, got %f", s.TotalVolume)
	}
}

func TestSummarize_Bounds(t *testing.T) {
	snapshot := []model.AssetQuote{
		{Symbol: "A", Change24h: 1.5, Volume: 10},
		{Symbol: "B", Change24h: -8.2, Volume: 20},
		{Symbol: "C", Change24h: 3.3, Volume: 30},
		{Symbol: "D", Change24h: 0, Volume: 40},
	}
	s := Summarize(snapshot, time.Now())

	var sum float64
	for _, q := range snapshot {
		sum += q.Volume
		if s.TopGainer.Change24h < q.Change24h {
			t.Errorf("top gainer %f below row %s (%f)", s.TopGainer.Change24h, q.Symbol, q.Change24h)
		}
		if s.TopLoser.Change24h > q.Change24h {
			t.Errorf("top loser %f above row %s (%f)", s.TopLoser.Change24h, q.Symbol, q.Change24h)
		}
	}
	if s.TotalVolume != sum {
		t.Errorf("expected total volume %f, got %f", sum, s.TotalVolume)
	}
}

func TestSummarize_TiesResolveToFirst(t *testing.T) {
	snapshot := []model.AssetQuote{
		{Symbol: "FIRST", Change24h: 7},
		{Symbol: "SECOND", Change24h: 7},
		{Symbol: "THIRDLOW", Change24h: -7},
		{Symbol: "FOURTHLOW", Change24h: -7},
	}
	s := Summarize(snapshot, time.Now())
	if s.TopGainer.Symbol != "FIRST" {
		t.Errorf("gainer tie should resolve to first row, got %s", s.TopGainer.Symbol)
	}
	if s.TopLoser.Symbol != "THIRDLOW" {
		t.Errorf("loser tie should resolve to first row, got %s", s.TopLoser.Symbol)
	}
}
