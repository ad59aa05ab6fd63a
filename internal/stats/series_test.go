package stats

import (
	"math"
	"testing"
	"time"

	"CryptoRadar/internal/model"
)

func seriesOf(prices ...float64) []model.SeriesPoint {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.SeriesPoint, len(prices))
	for i, p := range prices {
		points[i] = model.SeriesPoint{Time: base.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return points
}

func TestDerive_FiltersAndOrders(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	records := []model.HistoryRecord{
		{Time: base.Add(2 * time.Hour), Symbol: "BTC", Price: 3},
		{Time: base, Symbol: "BTC", Price: 1},
		{Time: base.Add(time.Hour), Symbol: "ETH", Price: 99},
		{Time: base.Add(time.Hour), Symbol: "BTC", Price: 2},
	}

	points := Derive(records, "btc", 0)
	if len(points) != 3 {
		t.Fatalf("expected 3 BTC points, got %d", len(points))
	}
	for i, want := range []float64{1, 2, 3} {
		if points[i].Price != want {
			t.Errorf("point %d: expected price %f, got %f", i, want, points[i].Price)
		}
	}
}

func TestDerive_Window(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	records := []model.HistoryRecord{
		{Time: base, Symbol: "BTC", Price: 1},
		{Time: base.Add(1 * time.Hour), Symbol: "BTC", Price: 2},
		{Time: base.Add(5 * time.Hour), Symbol: "BTC", Price: 3},
	}
	points := Derive(records, "BTC", 2*time.Hour)
	if len(points) != 1 || points[0].Price != 3 {
		t.Fatalf("expected only the newest point inside the window, got %+v", points)
	}
}

func TestRollingBands_PartialWindows(t *testing.T) {
	points := seriesOf(10, 20, 30)
	bands := RollingBands(points, 5, 2.5)
	if len(bands) != 3 {
		t.Fatalf("expected 3 band points, got %d", len(bands))
	}

	// First point: single-sample window, no dispersion.
	if bands[0].Mean != 10 || bands[0].StdDev != 0 {
		t.Errorf("first band: expected mean 10 stddev 0, got %+v", bands[0])
	}
	if bands[0].Upper != 10 || bands[0].Lower != 10 {
		t.Errorf("first band envelope should collapse to the mean, got %+v", bands[0])
	}

	// Second point: mean of {10,20}, sample stddev sqrt(50).
	if bands[1].Mean != 15 {
		t.Errorf("second band: expected mean 15, got %f", bands[1].Mean)
	}
	if math.Abs(bands[1].StdDev-math.Sqrt(50)) > 1e-9 {
		t.Errorf("second band: expected stddev sqrt(50), got %f", bands[1].StdDev)
	}
	wantUpper := 15 + 2.5*math.Sqrt(50)
	if math.Abs(bands[1].Upper-wantUpper) > 1e-9 {
		t.Errorf("second band: expected upper %f, got %f", wantUpper, bands[1].Upper)
	}
}

func TestRollingBands_WindowCaps(t *testing.T) {
	points := seriesOf(1, 2, 3, 4, 5, 6, 7)
	bands := RollingBands(points, 3, 1)
	// Window of 3 ending at index 6: {5,6,7}.
	if bands[6].Mean != 6 {
		t.Errorf("expected trailing mean 6, got %f", bands[6].Mean)
	}
}

func TestFlagExtrema_Unimodal(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		kind   model.ExtremumKind
		index  int
	}{
		{"peak", []float64{1, 2, 5, 2, 1, 0.5}, model.ExtremumPeak, 2},
		{"valley", []float64{5, 4, 1, 4, 5, 6}, model.ExtremumValley, 2},
		{"peak mid", []float64{1, 2, 3, 9, 3, 2, 1}, model.ExtremumPeak, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := FlagExtrema(seriesOf(tt.prices...))
			if len(flags) != 1 {
				t.Fatalf("expected exactly one flag, got %d", len(flags))
			}
			if flags[0].Kind != tt.kind || flags[0].Index != tt.index {
				t.Errorf("expected %s at %d, got %s at %d", tt.kind, tt.index, flags[0].Kind, flags[0].Index)
			}
		})
	}
}

func TestFlagExtrema_EdgesNeverFlagged(t *testing.T) {
	// Global max at index 1 and global min at the second-to-last index:
	// both sit in the protected edge zones.
	flags := FlagExtrema(seriesOf(5, 100, 4, 3, 2, 0.1, 1))
	for _, f := range flags {
		if f.Index < 2 || f.Index > 4 {
			t.Errorf("flag at protected edge index %d", f.Index)
		}
	}
}

func TestFlagExtrema_ShortSeries(t *testing.T) {
	if flags := FlagExtrema(seriesOf(1, 5, 1, 0.5)); len(flags) != 0 {
		t.Errorf("series shorter than 5 should yield no flags, got %+v", flags)
	}
	if flags := FlagExtrema(nil); len(flags) != 0 {
		t.Errorf("empty series should yield no flags, got %+v", flags)
	}
}

func TestFlagExtrema_MonotonicSeriesHasNone(t *testing.T) {
	if flags := FlagExtrema(seriesOf(1, 2, 3, 4, 5, 6, 7, 8)); len(flags) != 0 {
		t.Errorf("monotonic series should yield no flags, got %+v", flags)
	}
}
