package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps, making tests fast and isolated.
type MockRepository struct {
	snapshots map[string]ledger.Snapshot
	runs      map[string]*Run
	nextRunID int

	// Hooks for test assertions
	SaveSnapshotCalled bool
	LastSavedKey       string
	LastSavedSnapshot  ledger.Snapshot
	LoadSnapshotCalled bool
	StartRunCalled     bool
	CompleteRunCalled  bool
	LastCompletedRun   *Run

	// Error injection for testing error paths
	SaveSnapshotErr error
	LoadSnapshotErr error
	StartRunErr     error
	CompleteRunErr  error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		snapshots: make(map[string]ledger.Snapshot),
		runs:      make(map[string]*Run),
		nextRunID: 1,
	}
}

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// SaveSnapshot stores a snapshot in the in-memory map
func (m *MockRepository) SaveSnapshot(windowKey string, snap ledger.Snapshot) error {
	m.SaveSnapshotCalled = true
	m.LastSavedKey = windowKey
	if m.SaveSnapshotErr != nil {
		return m.SaveSnapshotErr
	}

	// Copy to avoid test mutations
	copied := make(ledger.Snapshot, len(snap))
	for id, tx := range snap {
		copied[id] = tx
	}
	m.snapshots[windowKey] = copied
	m.LastSavedSnapshot = copied
	return nil
}

// LoadSnapshot retrieves a snapshot from the in-memory map
func (m *MockRepository) LoadSnapshot(windowKey string) (ledger.Snapshot, error) {
	m.LoadSnapshotCalled = true
	if m.LoadSnapshotErr != nil {
		return nil, m.LoadSnapshotErr
	}

	snap, ok := m.snapshots[windowKey]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

// ListSnapshots returns stored snapshots sorted by window key
func (m *MockRepository) ListSnapshots(limit int) ([]SnapshotRecord, error) {
	var records []SnapshotRecord
	for key, snap := range m.snapshots {
		records = append(records, SnapshotRecord{
			WindowKey:        key,
			CreatedAt:        time.Now().UTC().Format(time.RFC3339),
			TransactionCount: len(snap),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].WindowKey < records[j].WindowKey
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// StartRun records a run start
func (m *MockRepository) StartRun(kind, windowKey string) (string, error) {
	m.StartRunCalled = true
	if m.StartRunErr != nil {
		return "", m.StartRunErr
	}

	runID := fmt.Sprintf("run-%d", m.nextRunID)
	m.nextRunID++
	m.runs[runID] = &Run{
		ID:        runID,
		Kind:      kind,
		WindowKey: windowKey,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		Status:    RunStatusStarted,
	}
	return runID, nil
}

// CompleteRun records a run outcome
func (m *MockRepository) CompleteRun(runID string, found, matched, updated, failed int, status string) error {
	m.CompleteRunCalled = true
	if m.CompleteRunErr != nil {
		return m.CompleteRunErr
	}

	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	run.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	run.Found = found
	run.Matched = matched
	run.Updated = updated
	run.Failed = failed
	run.Status = status
	m.LastCompletedRun = run
	return nil
}

// ListRuns returns recorded runs sorted by id
func (m *MockRepository) ListRuns(limit int) ([]Run, error) {
	var runs []Run
	for _, run := range m.runs {
		runs = append(runs, *run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetRun retrieves a run by id
func (m *MockRepository) GetRun(runID string) (*Run, error) {
	run, ok := m.runs[runID]
	if !ok {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	return run, nil
}
