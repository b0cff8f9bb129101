package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/application/reconcile"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/patch"
)

// PrintPreview prints every pending change with its original values
func PrintPreview(w io.Writer, p patch.Patch, originals ledger.Snapshot) {
	fmt.Fprintln(w, "The following transactions will be updated:")

	for _, id := range p.IDs() {
		fields := p[id]
		fmt.Fprintf(w, "\nTransaction ID: %d\n", id)
		if original, ok := originals[id]; ok {
			fmt.Fprintf(w, "  Original Payee: %s, Date: %s\n", original.Payee, original.Date)
		}
		fmt.Fprintf(w, "  Updated Payee:  %s, Date: %s\n", fields.Payee, fields.Date)
	}
	fmt.Fprintln(w)
}

// PrintReconcileSummary prints the reconcile result summary
func PrintReconcileSummary(w io.Writer, result *reconcile.Result) {
	fmt.Fprintln(w, strings.Repeat("-", 60))

	switch {
	case result.Aborted:
		fmt.Fprintln(w, "Update process aborted. No changes were made.")
	case result.DryRun:
		fmt.Fprintf(w, "Dry run: %d transaction(s) would be updated.\n", result.Matched)
	case result.Matched == 0:
		fmt.Fprintf(w, "No refund pairs found in %d transaction(s).\n", result.Found)
	default:
		fmt.Fprintf(w, "Summary: Fetched=%d Matched=%d Updated=%d Failed=%d\n",
			result.Found, result.Matched, result.Updated, result.Failed)
	}
}

// PrintRollbackSummary prints the rollback result summary
func PrintRollbackSummary(w io.Writer, result *reconcile.RollbackResult) {
	fmt.Fprintln(w, strings.Repeat("-", 60))

	if result.Aborted {
		fmt.Fprintln(w, "Rollback aborted. No changes were made.")
		return
	}

	fmt.Fprintf(w, "Rollback summary: Restored=%d Failed=%d\n", result.Restored, len(result.FailedIDs))
	for _, id := range result.FailedIDs {
		fmt.Fprintf(w, "  - failed to revert transaction %d\n", id)
	}
}
