package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/matcher"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/patch"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

// DefaultPageDays is the fetch slice length used when none is configured.
const DefaultPageDays = 30

// Gateway is the remote ledger the orchestrator reads from and writes to.
type Gateway interface {
	GetTransactions(ctx context.Context, start, end ledger.Date) ([]ledger.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, fields ledger.UpdateFields) error
}

// Confirmer is the approval gate invoked before any write. Implementations
// present the pending changes and block until the caller approves or
// declines; a pre-approved implementation satisfies non-interactive use.
type Confirmer interface {
	Confirm(p patch.Patch, originals ledger.Snapshot) (bool, error)
}

// Window is the inclusive date range processed in one run.
type Window struct {
	Start ledger.Date
	End   ledger.Date
}

// Key returns the identifier snapshots are persisted under.
func (w Window) Key() string {
	return fmt.Sprintf("%s_%s", w.Start, w.End)
}

// Options holds run configuration
type Options struct {
	DryRun   bool
	PageDays int // Fetch slice length in days (0 = DefaultPageDays)
}

// Result holds the outcome of a reconcile run
type Result struct {
	Found   int // Transactions fetched into the index
	Matched int // Transactions covered by the patch
	Updated int // Updates successfully issued
	Failed  int // Updates left unissued after a fail-fast stop
	Applied bool
	Aborted bool
	DryRun  bool
}

// RollbackResult holds the outcome of a rollback run
type RollbackResult struct {
	Restored  int
	FailedIDs []int64
	Aborted   bool
}

// Orchestrator drives fetch -> index -> match -> patch -> confirm -> apply,
// and the reverse path from a persisted snapshot.
type Orchestrator struct {
	gateway   Gateway
	store     storage.Repository
	confirmer Confirmer
	matcher   *matcher.Matcher
	logger    *slog.Logger
}

// NewOrchestrator creates a new reconcile orchestrator
func NewOrchestrator(
	gateway Gateway,
	store storage.Repository,
	confirmer Confirmer,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		gateway:   gateway,
		store:     store,
		confirmer: confirmer,
		matcher:   matcher.NewMatcher(matcher.DefaultConfig()),
		logger:    logger,
	}
}
