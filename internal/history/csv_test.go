package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CryptoRadar/internal/model"
)

func testSnapshot() []model.AssetQuote {
	return []model.AssetQuote{
		{Name: "Bitcoin", Symbol: "BTC", Price: 64000, Change24h: 2.5, Volume: 3.2e10, Provenance: model.ProvenanceAPI},
		{Name: "My Coin", Symbol: "MYC", Price: 1.5, Change24h: -1, Volume: 100, Provenance: model.ProvenanceUser},
	}
}

func TestCSVRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	rec := NewCSVRecorder(path)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	if err := rec.Append(testSnapshot(), now); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := rec.Append(testSnapshot(), now.Add(time.Minute)); err != nil {
		t.Fatalf("second append: %v", err)
	}

	records, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	first := records[0]
	if first.Symbol != "BTC" || first.Price != 64000 || first.Provenance != model.ProvenanceAPI {
		t.Errorf("first record mismatch: %+v", first)
	}
	if !first.Time.Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, first.Time)
	}
	if records[1].Provenance != model.ProvenanceUser {
		t.Errorf("user row provenance lost: %+v", records[1])
	}
}

func TestCSVRecorder_HeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	rec := NewCSVRecorder(path)

	now := time.Now()
	for i := 0; i < 3; i++ {
		if err := rec.Append(testSnapshot(), now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "time,name,symbol"); got != 1 {
		t.Errorf("expected exactly one header row, found %d", got)
	}
}

func TestCSVRecorder_SkipsDemoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	rec := NewCSVRecorder(path)

	snapshot := []model.AssetQuote{
		{Name: "Bitcoin", Symbol: "BTC", Price: 64000, Provenance: model.ProvenanceDemo},
		{Name: "Ethereum", Symbol: "ETH", Price: 3100, Provenance: model.ProvenanceDemo},
	}
	if err := rec.Append(snapshot, time.Now()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("all-demo snapshot must not create the log file")
	}

	mixed := append(snapshot, model.AssetQuote{Name: "Real", Symbol: "RL", Price: 1, Provenance: model.ProvenanceAPI})
	if err := rec.Append(mixed, time.Now()); err != nil {
		t.Fatalf("append mixed: %v", err)
	}
	records, err := rec.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Symbol != "RL" {
		t.Errorf("expected only the real row logged, got %+v", records)
	}
}

func TestCSVRecorder_MissingFileLoadsEmpty(t *testing.T) {
	rec := NewCSVRecorder(filepath.Join(t.TempDir(), "nope.csv"))
	records, err := rec.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty log, got %d records", len(records))
	}
}

func TestCSVRecorder_SkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := "time,name,symbol,price,change,volume,source\n" +
		"2026-08-28 12:00:00,Bitcoin,BTC,64000,2.5,32000000000,api\n" +
		"not-a-time,Bad,BAD,1,1,1,api\n" +
		"2026-08-28 12:00:00,Short,SHRT\n" +
		"2026-08-28 12:01:00,Ethereum,ETH,3100,-1.2,16000000000,api\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := NewCSVRecorder(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 parseable records, got %d", len(records))
	}
	if records[0].Symbol != "BTC" || records[1].Symbol != "ETH" {
		t.Errorf("unexpected records: %+v", records)
	}
}
