package stats

import (
	"time"

	"CryptoRadar/internal/model"
)

// BucketWidth picks the OHLC bucket width from the sample count: denser
// series get wider buckets.
func BucketWidth(samples int) time.Duration {
	switch {
	case samples > 1000:
		return time.Hour
	case samples > 200:
		return 30 * time.Minute
	default:
		return 10 * time.Minute
	}
}

// ResampleOHLC partitions a series into fixed-width time buckets and
// aggregates each into an open/high/low/close bar with summed volume.
// Buckets with no samples are dropped, never interpolated. The input must be
// time-ordered, as Derive produces.
func ResampleOHLC(points []model.SeriesPoint) []model.OHLC {
	if len(points) == 0 {
		return nil
	}
	width := BucketWidth(len(points))

	var bars []model.OHLC
	for _, p := range points {
		bucket := p.Time.Truncate(width)
		if len(bars) == 0 || !bars[len(bars)-1].Time.Equal(bucket) {
			bars = append(bars, model.OHLC{
				Time: bucket,
				Open: p.Price, High: p.Price, Low: p.Price, Close: p.Price,
				Volume: p.Volume,
			})
			continue
		}
		bar := &bars[len(bars)-1]
		if p.Price > bar.High {
			bar.High = p.Price
		}
		if p.Price < bar.Low {
			bar.Low = p.Price
		}
		bar.Close = p.Price
		bar.Volume += p.Volume
	}
	return bars
}
