package storage

import (
	"errors"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a window.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	SnapshotRepository
	RunRepository
	Close() error
}

// SnapshotRepository persists pre-change snapshots keyed by processing window
type SnapshotRepository interface {
	// SaveSnapshot stores the original records for a window, replacing any
	// previous snapshot under the same key
	SaveSnapshot(windowKey string, snap ledger.Snapshot) error

	// LoadSnapshot retrieves the snapshot for a window.
	// Returns ErrSnapshotNotFound if none was ever saved.
	LoadSnapshot(windowKey string) (ledger.Snapshot, error)

	// ListSnapshots returns recently saved snapshots, newest first
	ListSnapshots(limit int) ([]SnapshotRecord, error)
}

// RunRepository tracks reconcile and rollback runs
type RunRepository interface {
	// StartRun records the start of a run and returns its id
	StartRun(kind, windowKey string) (string, error)

	// CompleteRun records the outcome of a run
	CompleteRun(runID string, found, matched, updated, failed int, status string) error

	// ListRuns returns recent runs, newest first
	ListRuns(limit int) ([]Run, error)

	// GetRun retrieves a run by id
	GetRun(runID string) (*Run, error)
}
