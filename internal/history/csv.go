package history

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"CryptoRadar/internal/model"
)

var csvHeader = []string{"time", "name", "symbol", "price", "change", "volume", "source"}

// CSVRecorder appends snapshots to a flat delimited log file. The header row
// is written once on first write; the schema is fixed and never migrated.
// The file is not locked: concurrent writers race and the last writer wins.
type CSVRecorder struct {
	filePath string
}

// NewCSVRecorder creates a recorder backed by the given file path.
func NewCSVRecorder(filePath string) *CSVRecorder {
	return &CSVRecorder{filePath: filePath}
}

func (r *CSVRecorder) Append(snapshot []model.AssetQuote, now time.Time) error {
	rows := loggable(snapshot)
	if len(rows) == 0 {
		return nil
	}

	writeHeader := false
	if info, err := os.Stat(r.filePath); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(r.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	ts := now.Format(TimeLayout)
	for _, q := range rows {
		record := []string{
			ts,
			q.Name,
			q.Symbol,
			strconv.FormatFloat(q.Price, 'f', -1, 64),
			strconv.FormatFloat(q.Change24h, 'f', -1, 64),
			strconv.FormatFloat(q.Volume, 'f', -1, 64),
			string(q.Provenance),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Load reads back the full log. Malformed lines are skipped with a WARN so a
// partially corrupt log still yields its readable depth.
func (r *CSVRecorder) Load() ([]model.HistoryRecord, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.HistoryRecord{}, nil
		}
		return nil, fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var records []model.HistoryRecord
	first := true
	for {
		row, err := reader.Read()
		if err != nil {
			break
		}
		if first {
			first = false
			if len(row) > 0 && row[0] == "time" {
				continue
			}
		}
		rec, ok := parseRow(row)
		if !ok {
			log.Printf("[WARN] skipping malformed history row: %v", row)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (model.HistoryRecord, bool) {
	if len(row) < 7 {
		return model.HistoryRecord{}, false
	}
	ts, err := time.ParseInLocation(TimeLayout, row[0], time.Local)
	if err != nil {
		return model.HistoryRecord{}, false
	}
	price, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return model.HistoryRecord{}, false
	}
	change, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return model.HistoryRecord{}, false
	}
	volume, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return model.HistoryRecord{}, false
	}
	return model.HistoryRecord{
		Time:       ts,
		Name:       row[1],
		Symbol:     row[2],
		Price:      price,
		Change24h:  change,
		Volume:     volume,
		Provenance: model.Provenance(row[6]),
	}, true
}

func (r *CSVRecorder) Close() error { return nil }
