package reconcile

import (
	"context"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
)

// gatherTransactions walks the window backwards in pageDays-sized slices,
// issuing serial fetches and folding every page into one result set.
//
// A failed page is logged and treated as empty rather than aborting the
// run; matching completeness degrades but the run stays usable. Boundary
// dates may appear in two adjacent slices, which is harmless because the
// index overwrites by id.
func (o *Orchestrator) gatherTransactions(ctx context.Context, w Window, pageDays int) []ledger.Transaction {
	if pageDays <= 0 {
		pageDays = DefaultPageDays
	}

	var all []ledger.Transaction
	currentEnd := w.End

	for currentEnd.After(w.Start) {
		currentStart := currentEnd.AddDays(-pageDays)
		if currentStart.Before(w.Start) {
			currentStart = w.Start
		}

		o.logger.Debug("Fetching transactions page",
			"start_date", currentStart.String(),
			"end_date", currentEnd.String(),
		)

		transactions, err := o.gateway.GetTransactions(ctx, currentStart, currentEnd)
		if err != nil {
			o.logger.Error("Failed to fetch transactions page, treating as empty",
				"start_date", currentStart.String(),
				"end_date", currentEnd.String(),
				"error", err.Error(),
			)
			transactions = nil
		}

		all = append(all, transactions...)
		currentEnd = currentStart
	}

	o.logger.Debug("Fetched transactions", "count", len(all))

	return all
}
