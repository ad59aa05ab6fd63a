package stats

import (
	"time"

	"CryptoRadar/internal/model"
)

// Summarize computes cross-sectional statistics over one snapshot.
// Ties for top gainer/loser resolve to the first-occurring row; both are nil
// when the snapshot is empty.
func Summarize(snapshot []model.AssetQuote, now time.Time) model.Stats {
	stats := model.Stats{
		Count:       len(snapshot),
		LastUpdated: now.Truncate(time.Second),
	}
	if len(snapshot) == 0 {
		return stats
	}

	var totalChange float64
	gainer, loser := 0, 0
	for i, q := range snapshot {
		stats.TotalVolume += q.Volume
		totalChange += q.Change24h
		if q.Change24h > snapshot[gainer].Change24h {
			gainer = i
		}
		if q.Change24h < snapshot[loser].Change24h {
			loser = i
		}
	}
	stats.AvgChange = totalChange / float64(len(snapshot))

	g := snapshot[gainer]
	l := snapshot[loser]
	stats.TopGainer = &g
	stats.TopLoser = &l
	return stats
}
