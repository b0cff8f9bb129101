package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/patch"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

// Rollback restores every transaction in the window's persisted snapshot
// to its original payee and date.
//
// Unlike apply, rollback is best-effort: each id is attempted
// independently and failures are reported rather than stopping the
// sequence, since the point of rollback is maximal restoration. Restoring
// a record that was never changed is a harmless no-op, which is what makes
// rollback after a partial apply complete.
func (o *Orchestrator) Rollback(ctx context.Context, window Window) (*RollbackResult, error) {
	snap, err := o.store.LoadSnapshot(window.Key())
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			o.logger.Error("No snapshot saved for window, rollback aborted",
				"window", window.Key(),
			)
			return nil, fmt.Errorf("rollback aborted: %w", err)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	o.logger.Info("Loaded snapshot for rollback",
		"window", window.Key(),
		"transactions", len(snap),
	)

	// The restore set is presented through the same gate as an apply: the
	// "patch" here is simply the original field values.
	restore := make(patch.Patch, len(snap))
	for id, tx := range snap {
		restore[id] = ledger.UpdateFields{Payee: tx.Payee, Date: tx.Date}
	}

	approved, err := o.confirmer.Confirm(restore, snap)
	if err != nil {
		return nil, fmt.Errorf("confirmation failed: %w", err)
	}
	if !approved {
		o.logger.Info("Rollback declined, no writes performed")
		return &RollbackResult{Aborted: true}, nil
	}

	runID, err := o.store.StartRun(storage.RunKindRollback, window.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	result := &RollbackResult{}
	for _, id := range restore.IDs() {
		if err := o.gateway.UpdateTransaction(ctx, id, restore[id]); err != nil {
			o.logger.Error("Failed to revert transaction, continuing",
				"transaction_id", id,
				"error", err.Error(),
			)
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		o.logger.Info("Transaction reverted", "transaction_id", id)
		result.Restored++
	}

	status := storage.RunStatusCompleted
	if len(result.FailedIDs) > 0 {
		status = storage.RunStatusPartial
	}
	if err := o.store.CompleteRun(runID, len(snap), len(restore), result.Restored, len(result.FailedIDs), status); err != nil {
		o.logger.Error("Failed to record run completion",
			"run_id", runID,
			"error", err.Error(),
		)
	}

	return result, nil
}
