package history

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CryptoRadar/internal/model"
)

// SQLiteRecorder persists the snapshot log to a SQLite database. This is the
// strengthened history backend: unlike the flat CSV file, concurrent writers
// go through the database instead of racing on the whole file.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite history recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			name      TEXT,
			symbol    TEXT,
			price     REAL,
			change    REAL,
			volume    REAL,
			source    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON history(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_history_symbol ON history(symbol)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Append(snapshot []model.AssetQuote, now time.Time) error {
	rows := loggable(snapshot)
	if len(rows) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO history
		(timestamp, name, symbol, price, change, volume, source)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	ts := now.Unix()
	for _, q := range rows {
		if _, err := stmt.Exec(ts, q.Name, q.Symbol, q.Price, q.Change24h, q.Volume, string(q.Provenance)); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Load() ([]model.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, name, symbol, price, change, volume, source
		FROM history ORDER BY timestamp, id`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []model.HistoryRecord
	for rows.Next() {
		var ts int64
		var rec model.HistoryRecord
		var source string
		if err := rows.Scan(&ts, &rec.Name, &rec.Symbol, &rec.Price, &rec.Change24h, &rec.Volume, &source); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Time = time.Unix(ts, 0)
		rec.Provenance = model.Provenance(source)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite history recorder")
	return r.db.Close()
}
