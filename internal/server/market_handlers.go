package server

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"CryptoRadar/internal/model"
	"CryptoRadar/internal/stats"
)

// quoteView augments a quote with display strings for the table.
type quoteView struct {
	model.AssetQuote
	PriceDisplay  string `json:"price_display"`
	VolumeDisplay string `json:"volume_display"`
}

func viewOf(q model.AssetQuote) quoteView {
	return quoteView{
		AssetQuote:    q,
		PriceDisplay:  "$" + humanize.CommafWithDigits(q.Price, 2),
		VolumeDisplay: humanize.CommafWithDigits(q.Volume, 0),
	}
}

// handleSnapshot fetches live quotes, merges them with user entries, computes
// summary statistics, and appends the snapshot to the history log. A provider
// or log failure never fails the request.
func (s *Server) handleSnapshot(c *gin.Context) {
	limit := s.cfg.Snapshot.Limit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	now := s.now()
	apiQuotes := s.chain.Fetch(limit)
	merged := stats.Merge(apiQuotes, s.entries.Load())
	summary := stats.Summarize(merged, now)

	if err := s.recorder.Append(merged, now); err != nil {
		log.Printf("[WARN] append history: %v", err)
	}

	rows := make([]quoteView, 0, len(merged))
	for _, q := range merged {
		rows = append(rows, viewOf(q))
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"stats": summary,
		"total_volume_display": humanize.CommafWithDigits(summary.TotalVolume, 0),
	})
}

func (s *Server) seriesParams(c *gin.Context) (symbol string, window time.Duration, ok bool) {
	symbol = c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return "", 0, false
	}
	if v := c.Query("window"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window, use a duration like 24h"})
			return "", 0, false
		}
		window = d
	}
	return symbol, window, true
}

// handleSeries returns the derived per-symbol series with rolling bands and
// peak/valley flags.
func (s *Server) handleSeries(c *gin.Context) {
	symbol, window, ok := s.seriesParams(c)
	if !ok {
		return
	}
	w := stats.DefaultBandWindow
	if v := c.Query("w"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			w = n
		}
	}
	k := stats.DefaultBandWidth
	if v := c.Query("k"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			k = f
		}
	}

	records, err := s.recorder.Load()
	if err != nil {
		log.Printf("[WARN] load history: %v", err)
		records = nil
	}
	series := stats.Derive(records, symbol, window)
	c.JSON(http.StatusOK, gin.H{
		"symbol":  symbol,
		"series":  series,
		"bands":   stats.RollingBands(series, w, k),
		"extrema": stats.FlagExtrema(series),
	})
}

// handleOHLC returns the resampled candlestick view of one symbol's history.
func (s *Server) handleOHLC(c *gin.Context) {
	symbol, window, ok := s.seriesParams(c)
	if !ok {
		return
	}
	records, err := s.recorder.Load()
	if err != nil {
		log.Printf("[WARN] load history: %v", err)
		records = nil
	}
	series := stats.Derive(records, symbol, window)
	c.JSON(http.StatusOK, gin.H{
		"symbol":  symbol,
		"buckets": stats.ResampleOHLC(series),
	})
}

// handleCorrelation returns the pairwise correlation matrix over aligned
// returns, or an insufficient-data marker when fewer than 2 aligned samples
// exist.
func (s *Server) handleCorrelation(c *gin.Context) {
	symbols := c.QueryArray("symbols")
	if len(symbols) == 1 {
		symbols = splitComma(symbols[0])
	}
	if len(symbols) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least two symbols are required"})
		return
	}

	records, err := s.recorder.Load()
	if err != nil {
		log.Printf("[WARN] load history: %v", err)
		records = nil
	}
	matrix, err := stats.Correlate(records, symbols)
	if errors.Is(err, stats.ErrInsufficientData) {
		c.JSON(http.StatusOK, gin.H{"insufficient_data": true})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "correlation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbols": matrix.Symbols,
		"values":  sanitizeMatrix(matrix.Values),
		"aligned": matrix.Aligned,
	})
}

// sanitizeMatrix replaces NaN cells (zero-variance pairs) with null so the
// matrix stays JSON-encodable.
func sanitizeMatrix(values [][]float64) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, row := range values {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				out[i][j] = nil
			} else {
				out[i][j] = v
			}
		}
	}
	return out
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// handleProviderHistory proxies a historical series request to the provider
// chain, keyed by the upstream provider identifier.
func (s *Server) handleProviderHistory(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	end := s.now()
	start := end.AddDate(0, 0, -7)
	if v := c.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start, use RFC3339"})
			return
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end, use RFC3339"})
			return
		}
		end = t
	}

	points := s.chain.FetchHistory(id, start, end)
	c.JSON(http.StatusOK, gin.H{"id": id, "points": points})
}
