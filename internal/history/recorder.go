package history

import (
	"time"

	"CryptoRadar/internal/model"
)

// TimeLayout is the timestamp format used in the durable log.
const TimeLayout = "2006-01-02 15:04:05"

// Recorder persists merged snapshots and reads back the full log for
// time-series analytics. The log is append-only: records are never updated
// or deleted, and no retention policy exists.
type Recorder interface {
	// Append logs one record per quote, all sharing timestamp now.
	// Demo-provenance rows are never persisted.
	Append(snapshot []model.AssetQuote, now time.Time) error
	// Load returns every record in the log, oldest first.
	Load() ([]model.HistoryRecord, error)
	Close() error
}

// loggable filters out synthetic placeholder rows so demo data can never
// masquerade as real history.
func loggable(snapshot []model.AssetQuote) []model.AssetQuote {
	out := make([]model.AssetQuote, 0, len(snapshot))
	for _, q := range snapshot {
		if q.Provenance == model.ProvenanceDemo {
			continue
		}
		out = append(out, q)
	}
	return out
}
