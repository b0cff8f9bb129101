package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
)

// Storage provides SQLite database access for snapshots and run history.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveSnapshot stores the original records for a window. The snapshot is
// serialized as a single JSON object keyed by transaction id so the stored
// bytes round-trip the fetched records exactly.
func (s *Storage) SaveSnapshot(windowKey string, snap ledger.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO snapshots (window_key, created_at, transaction_count, data)
	VALUES (?, ?, ?, ?)
	`

	_, err = s.db.Exec(query, windowKey, now(), len(snap), string(data))
	return err
}

// LoadSnapshot retrieves the snapshot for a window
func (s *Storage) LoadSnapshot(windowKey string) (ledger.Snapshot, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE window_key = ?`, windowKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	var snap ledger.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot %s: %w", windowKey, err)
	}

	return snap, nil
}

// ListSnapshots returns recently saved snapshots, newest first
func (s *Storage) ListSnapshots(limit int) ([]SnapshotRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
	SELECT window_key, created_at, transaction_count
	FROM snapshots ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		if err := rows.Scan(&rec.WindowKey, &rec.CreatedAt, &rec.TransactionCount); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// StartRun records the start of a run and returns its id
func (s *Storage) StartRun(kind, windowKey string) (string, error) {
	runID := uuid.NewString()

	query := `
	INSERT INTO runs (id, kind, window_key, started_at, status)
	VALUES (?, ?, ?, ?, ?)
	`

	if _, err := s.db.Exec(query, runID, kind, windowKey, now(), RunStatusStarted); err != nil {
		return "", err
	}

	return runID, nil
}

// CompleteRun records the outcome of a run
func (s *Storage) CompleteRun(runID string, found, matched, updated, failed int, status string) error {
	query := `
	UPDATE runs
	SET completed_at = ?, transactions_found = ?, transactions_matched = ?,
	    transactions_updated = ?, transactions_failed = ?, status = ?
	WHERE id = ?
	`

	_, err := s.db.Exec(query, now(), found, matched, updated, failed, status, runID)
	return err
}

// ListRuns returns recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
	SELECT id, kind, window_key, started_at, completed_at,
	       transactions_found, transactions_matched, transactions_updated,
	       transactions_failed, status
	FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetRun retrieves a run by id
func (s *Storage) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
	SELECT id, kind, window_key, started_at, completed_at,
	       transactions_found, transactions_matched, transactions_updated,
	       transactions_failed, status
	FROM runs WHERE id = ?
	`, runID)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// scanRun reads one run row via the given Scan function
func scanRun(scan func(dest ...any) error) (*Run, error) {
	run := &Run{}
	var completedAt sql.NullString

	err := scan(
		&run.ID,
		&run.Kind,
		&run.WindowKey,
		&run.StartedAt,
		&completedAt,
		&run.Found,
		&run.Matched,
		&run.Updated,
		&run.Failed,
		&run.Status,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		run.CompletedAt = completedAt.String
	}

	return run, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
