package stats

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"CryptoRadar/internal/model"
)

// ErrInsufficientData is returned when fewer than 2 aligned return samples
// exist; correlation is undefined there and is never reported as a numeric
// placeholder.
var ErrInsufficientData = errors.New("insufficient aligned data for correlation")

// CorrelationMatrix holds pairwise Pearson correlations over aligned returns.
type CorrelationMatrix struct {
	Symbols []string    `json:"symbols"`
	Values  [][]float64 `json:"values"`
	// Aligned is the number of return samples shared by every symbol.
	Aligned int `json:"aligned"`
}

// Returns computes simple period-over-period percentage returns keyed by
// bucket time from a resampled close series. Buckets following a zero close
// are skipped.
func Returns(bars []model.OHLC) map[time.Time]float64 {
	rets := make(map[time.Time]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		rets[bars[i].Time] = (bars[i].Close - prev) / prev * 100
	}
	return rets
}

// Correlate computes the pairwise Pearson correlation of the selected
// symbols' returns over the history log. Returns are aligned with an inner
// join on bucket time: only time points carrying a return for every symbol
// participate.
func Correlate(records []model.HistoryRecord, symbols []string) (*CorrelationMatrix, error) {
	if len(symbols) < 2 {
		return nil, ErrInsufficientData
	}

	upper := make([]string, len(symbols))
	returns := make([]map[time.Time]float64, len(symbols))
	for i, s := range symbols {
		upper[i] = strings.ToUpper(s)
		series := Derive(records, upper[i], 0)
		returns[i] = Returns(ResampleOHLC(series))
	}

	// Inner join on bucket time across every symbol.
	var aligned []time.Time
	for t := range returns[0] {
		shared := true
		for _, r := range returns[1:] {
			if _, ok := r[t]; !ok {
				shared = false
				break
			}
		}
		if shared {
			aligned = append(aligned, t)
		}
	}
	if len(aligned) < 2 {
		return nil, ErrInsufficientData
	}
	sort.Slice(aligned, func(i, j int) bool { return aligned[i].Before(aligned[j]) })

	vectors := make([][]float64, len(symbols))
	for i, r := range returns {
		vec := make([]float64, len(aligned))
		for j, t := range aligned {
			vec[j] = r[t]
		}
		vectors[i] = vec
	}

	values := make([][]float64, len(symbols))
	for i := range values {
		values[i] = make([]float64, len(symbols))
		values[i][i] = 1
	}
	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			r := pearson(vectors[i], vectors[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{Symbols: upper, Values: values, Aligned: len(aligned)}, nil
}

// pearson computes the Pearson correlation coefficient of two equal-length
// vectors. Returns NaN when either vector has zero variance.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
