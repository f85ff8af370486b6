// Package store provides a SQLite-backed history of dashboard snapshots.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// takenAtLayout is fixed-width so taken_at sorts as text.
const takenAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// History records one summary row per dashboard poll.
type History struct {
	db *sql.DB
}

// DefaultPath is history.db under the paydash cache dir.
func DefaultPath() string {
	return filepath.Join(config.CacheDir(), "history.db")
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores one snapshot summary. A zero At is stamped with the current time.
func (h *History) Record(s model.Summary) error {
	at := s.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := h.db.Exec(`INSERT INTO snapshots
		(taken_at, cardholders, transactions, failed, merchants, volume)
		VALUES (?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(takenAtLayout),
		s.Cardholders, s.Transactions, s.Failed, s.Merchants, s.Volume,
	)
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}

// Recent returns up to limit snapshots, newest first.
func (h *History) Recent(limit int) ([]model.Summary, error) {
	if limit <= 0 {
		return []model.Summary{}, nil
	}

	rows, err := h.db.Query(`SELECT taken_at, cardholders, transactions, failed, merchants, volume
		FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make([]model.Summary, 0, limit)
	for rows.Next() {
		var s model.Summary
		var takenAt string
		if err := rows.Scan(&takenAt, &s.Cardholders, &s.Transactions, &s.Failed, &s.Merchants, &s.Volume); err != nil {
			return nil, err
		}
		if t, err := time.Parse(takenAtLayout, takenAt); err == nil {
			s.At = t
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Count returns the number of stored snapshots.
func (h *History) Count() (int, error) {
	var n int
	err := h.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n)
	return n, err
}

// Prune deletes all but the newest keep snapshots and returns how many were removed.
func (h *History) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := h.db.Exec(`DELETE FROM snapshots WHERE id NOT IN (
		SELECT id FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return res.RowsAffected()
}
