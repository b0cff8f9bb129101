// Package reconcile orchestrates refund reconciliation against the remote
// ledger: fetch a date window, index it, pair refunds with charges, build
// the metadata patch, and apply it behind an explicit confirmation gate.
// Rollback replays a persisted pre-change snapshot.
//
// The derivation steps (fetch through patch) are pure and re-runnable; the
// only side effects are the snapshot save and the per-id updates, and the
// snapshot is always persisted before the first update is issued.
package reconcile

import (
	"context"
	"fmt"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/indexer"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/patch"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

// Run executes one reconcile pass over the window.
//
// Fatal setup failures (index build, snapshot persistence, run bookkeeping)
// return an error; update failures do not. An update failure stops the
// apply sequence immediately and is reflected in the Result, because the
// persisted snapshot already covers the entire patch and rollback remains
// well-defined for the ids that were never written.
func (o *Orchestrator) Run(ctx context.Context, window Window, opts Options) (*Result, error) {
	o.logger.Info("Starting reconcile run",
		"window", window.Key(),
		"dry_run", opts.DryRun,
	)

	transactions := o.gatherTransactions(ctx, window, opts.PageDays)

	idx, err := indexer.Build(transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction index: %w", err)
	}

	pairs := o.matcher.Match(idx)
	o.logger.Info("Matched charge/refund pairs",
		"transactions", idx.Len(),
		"pairs", len(pairs),
	)

	p, err := patch.Build(pairs, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to build patch: %w", err)
	}
	originals, err := patch.Originals(p, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to capture originals: %w", err)
	}

	result := &Result{
		Found:   idx.Len(),
		Matched: len(p),
		DryRun:  opts.DryRun,
	}

	if len(p) == 0 {
		o.logger.Info("No qualifying pairs found, nothing to update")
		return result, nil
	}

	approved, err := o.confirmer.Confirm(p, originals)
	if err != nil {
		return nil, fmt.Errorf("confirmation failed: %w", err)
	}
	if !approved {
		o.logger.Info("Update declined, discarding patch")
		result.Aborted = true
		return result, nil
	}

	if opts.DryRun {
		o.logger.Info("Dry run, skipping updates", "would_update", len(p))
		return result, nil
	}

	return result, o.apply(ctx, window, p, originals, result)
}

// apply persists the snapshot and issues one update per id, in ascending
// id order, stopping at the first failure.
func (o *Orchestrator) apply(ctx context.Context, window Window, p patch.Patch, originals ledger.Snapshot, result *Result) error {
	runID, err := o.store.StartRun(storage.RunKindReconcile, window.Key())
	if err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}

	// The snapshot must cover the whole patch before the first write, so a
	// rollback after a partial failure restores every id, written or not.
	if err := o.store.SaveSnapshot(window.Key(), originals); err != nil {
		o.completeRun(runID, result, storage.RunStatusFailed)
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	o.logger.Info("Saved original snapshot",
		"window", window.Key(),
		"transactions", len(originals),
	)

	status := storage.RunStatusCompleted
	for _, id := range p.IDs() {
		if err := o.gateway.UpdateTransaction(ctx, id, p[id]); err != nil {
			o.logger.Error("Failed to update transaction, stopping apply",
				"transaction_id", id,
				"error", err.Error(),
			)
			status = storage.RunStatusPartial
			break
		}
		o.logger.Info("Transaction updated",
			"transaction_id", id,
			"payee", p[id].Payee,
			"date", p[id].Date.String(),
		)
		result.Updated++
	}

	result.Failed = result.Matched - result.Updated
	result.Applied = true
	o.completeRun(runID, result, status)

	return nil
}

// completeRun records the run outcome; bookkeeping failures are logged,
// never propagated.
func (o *Orchestrator) completeRun(runID string, result *Result, status string) {
	if err := o.store.CompleteRun(runID, result.Found, result.Matched, result.Updated, result.Failed, status); err != nil {
		o.logger.Error("Failed to record run completion",
			"run_id", runID,
			"error", err.Error(),
		)
	}
}
