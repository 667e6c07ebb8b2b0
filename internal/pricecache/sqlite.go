package pricecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SignalScope/internal/model"
)

// SQLiteStore persists price history to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the CLI read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] price cache opened: %s", dbPath)
	return s, nil
}

// schemaVersion is bumped whenever the cache layout changes. Older caches
// are dropped and refilled from upstream.
const schemaVersion = 2

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	var stmts []string
	if version < schemaVersion {
		stmts = append(stmts,
			`DROP TABLE IF EXISTS bars`,
			`DROP TABLE IF EXISTS fetch_log`,
		)
	}
	stmts = append(stmts,
		`CREATE TABLE IF NOT EXISTS bars (
			source TEXT    NOT NULL,
			symbol TEXT    NOT NULL,
			date   TEXT    NOT NULL,
			open   REAL    NOT NULL,
			high   REAL    NOT NULL,
			low    REAL    NOT NULL,
			close  REAL    NOT NULL,
			volume INTEGER NOT NULL,
			PRIMARY KEY (source, symbol, date)
		)`,
		`CREATE TABLE IF NOT EXISTS fetch_log (
			source     TEXT    NOT NULL,
			symbol     TEXT    NOT NULL,
			period     TEXT    NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (source, symbol, period)
		)`,
		fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion),
	)

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}

func (s *SQLiteStore) LoadBars(ctx context.Context, key Key, from time.Time) ([]model.Bar, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, open, high, low, close, volume
		FROM bars WHERE source = ? AND symbol = ? AND date >= ? ORDER BY date`,
		key.Source, key.Symbol, from.Format(model.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var (
			date string
			b    model.Bar
		)
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		if b.Date, err = time.Parse(model.DateLayout, date); err != nil {
			return nil, fmt.Errorf("parse bar date %q: %w", date, err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *SQLiteStore) SaveBars(ctx context.Context, key Key, bars []model.Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bars (source, symbol, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(source, symbol, date) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, key.Source, key.Symbol, b.Date.Format(model.DateLayout),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert bar %s: %w", b.Date.Format(model.DateLayout), err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LastFetch(ctx context.Context, key Key, period model.Period) (time.Time, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx, `SELECT fetched_at FROM fetch_log
		WHERE source = ? AND symbol = ? AND period = ?`,
		key.Source, key.Symbol, string(period)).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query fetch log: %w", err)
	}
	return time.Unix(ts, 0), nil
}

func (s *SQLiteStore) MarkFetched(ctx context.Context, key Key, period model.Period, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO fetch_log (source, symbol, period, fetched_at) VALUES (?,?,?,?)
		ON CONFLICT(source, symbol, period) DO UPDATE SET fetched_at = excluded.fetched_at`,
		key.Source, key.Symbol, string(period), at.Unix())
	return err
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing price cache")
	return s.db.Close()
}
