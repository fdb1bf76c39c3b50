package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the cycle journal to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
	now    func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			pair        TEXT NOT NULL,
			outcome     TEXT NOT NULL,
			status_code INTEGER,
			error       TEXT,
			window_len  INTEGER,
			latency_ms  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON cycles(timestamp)`,

		`CREATE TABLE IF NOT EXISTS selection_changes (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			from_pair TEXT,
			to_pair   TEXT NOT NULL,
			dropped   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_selection_ts ON selection_changes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			n := len(s)
			if n > 40 {
				n = 40
			}
			return fmt.Errorf("exec %q: %w", s[:n], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(evt *CycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO cycles
		(timestamp, pair, outcome, status_code, error, window_len, latency_ms)
		VALUES (?,?,?,?,?,?,?)`,
		r.now().Unix(), evt.Pair, evt.Outcome, evt.StatusCode,
		evt.Error, evt.WindowLen, evt.LatencyMS,
	)
	return err
}

func (r *SQLiteRecorder) RecordSelectionChange(evt *SelectionChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO selection_changes
		(timestamp, from_pair, to_pair, dropped)
		VALUES (?,?,?,?)`,
		r.now().Unix(), evt.From, evt.To, evt.Dropped,
	)
	return err
}

// CycleCounts returns the number of journaled cycles per outcome.
func (r *SQLiteRecorder) CycleCounts() (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT outcome, COUNT(*) FROM cycles GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("query cycle counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan cycle counts: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
