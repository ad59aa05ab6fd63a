package history

import (
	"time"

	"CryptoRadar/internal/model"
)

// NoopRecorder is a no-op implementation used when history logging is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Append(_ []model.AssetQuote, _ time.Time) error { return nil }
func (n *NoopRecorder) Load() ([]model.HistoryRecord, error)           { return []model.HistoryRecord{}, nil }
func (n *NoopRecorder) Close() error                                   { return nil }
