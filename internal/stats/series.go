package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"CryptoRadar/internal/model"
)

// Default rolling-band parameters.
const (
	DefaultBandWindow = 5
	DefaultBandWidth  = 2.5
)

// Derive filters the history log to one symbol's time-ordered series. A
// non-zero window keeps only samples within that duration of the newest
// matching record.
func Derive(records []model.HistoryRecord, symbol string, window time.Duration) []model.SeriesPoint {
	symbol = strings.ToUpper(symbol)

	var points []model.SeriesPoint
	for _, r := range records {
		if r.Symbol != symbol {
			continue
		}
		points = append(points, model.SeriesPoint{
			Time:   r.Time,
			Price:  r.Price,
			Volume: r.Volume,
			Change: r.Change24h,
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	if window > 0 && len(points) > 0 {
		cutoff := points[len(points)-1].Time.Add(-window)
		i := sort.Search(len(points), func(i int) bool { return !points[i].Time.Before(cutoff) })
		points = points[i:]
	}
	return points
}

// RollingBands computes a rolling mean and volatility envelope per point.
// Each window holds at most w samples ending at the point itself; partial
// windows at the start of the series are allowed. The standard deviation is
// the sample deviation, 0 when the window holds a single point.
func RollingBands(points []model.SeriesPoint, w int, k float64) []model.BandPoint {
	if w <= 0 {
		w = DefaultBandWindow
	}
	if k <= 0 {
		k = DefaultBandWidth
	}

	bands := make([]model.BandPoint, len(points))
	for i := range points {
		start := i - w + 1
		if start < 0 {
			start = 0
		}
		window := points[start : i+1]

		var sum float64
		for _, p := range window {
			sum += p.Price
		}
		mean := sum / float64(len(window))

		var stddev float64
		if len(window) >= 2 {
			var sq float64
			for _, p := range window {
				d := p.Price - mean
				sq += d * d
			}
			stddev = math.Sqrt(sq / float64(len(window)-1))
		}

		bands[i] = model.BandPoint{
			Time:   points[i].Time,
			Mean:   mean,
			StdDev: stddev,
			Upper:  mean + k*stddev,
			Lower:  mean - k*stddev,
		}
	}
	return bands
}

// FlagExtrema flags local peaks and valleys in a price series. A point is a
// peak when its price exceeds both of the two preceding points and every
// following point up to three; valleys are symmetric with minima. The first
// two and last two indices are never flagged.
func FlagExtrema(points []model.SeriesPoint) []model.Extremum {
	n := len(points)
	var flags []model.Extremum
	for i := 2; i <= n-3; i++ {
		end := i + 3
		if end > n-1 {
			end = n - 1
		}

		prevMax, prevMin := points[i-1].Price, points[i-1].Price
		if points[i-2].Price > prevMax {
			prevMax = points[i-2].Price
		}
		if points[i-2].Price < prevMin {
			prevMin = points[i-2].Price
		}

		nextMax, nextMin := points[i+1].Price, points[i+1].Price
		for j := i + 2; j <= end; j++ {
			if points[j].Price > nextMax {
				nextMax = points[j].Price
			}
			if points[j].Price < nextMin {
				nextMin = points[j].Price
			}
		}

		p := points[i].Price
		switch {
		case p > prevMax && p > nextMax:
			flags = append(flags, model.Extremum{
				Index: i, Time: points[i].Time, Price: p, Kind: model.ExtremumPeak,
			})
		case p < prevMin && p < nextMin:
			flags = append(flags, model.Extremum{
				Index: i, Time: points[i].Time, Price: p, Kind: model.ExtremumValley,
			})
		}
	}
	return flags
}
