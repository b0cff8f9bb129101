// Package patch converts qualifying charge/refund pairs into the field
// updates to apply, plus the original records needed to undo them.
package patch

import (
	"fmt"
	"sort"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/indexer"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/matcher"
)

// RefundSuffix is appended to the charge payee on both ends of a pair.
const RefundSuffix = " (refunded)"

// Patch maps transaction ids to the new values for the fields being
// changed. Both ends of a pair receive identical values: the annotated
// payee and the charge's date. The refund's own date is discarded so the
// pair reads as co-dated in the ledger.
type Patch map[int64]ledger.UpdateFields

// Build constructs the patch for the given qualifying pairs.
func Build(pairs []matcher.Pair, idx *indexer.Index) (Patch, error) {
	p := make(Patch, len(pairs)*2)

	for _, pair := range pairs {
		charge, ok := idx.Record(pair.ChargeID)
		if !ok {
			return nil, fmt.Errorf("charge %d missing from index", pair.ChargeID)
		}

		fields := ledger.UpdateFields{
			Payee: charge.Payee + RefundSuffix,
			Date:  charge.Date,
		}
		p[pair.ChargeID] = fields
		p[pair.RefundID] = fields
	}

	return p, nil
}

// Originals captures the full original record for every id in the patch.
// The result is persisted before any write so rollback stays well-defined
// even if the apply stops part way through.
func Originals(p Patch, idx *indexer.Index) (ledger.Snapshot, error) {
	snap := make(ledger.Snapshot, len(p))

	for id := range p {
		tx, ok := idx.Record(id)
		if !ok {
			return nil, fmt.Errorf("transaction %d missing from index", id)
		}
		snap[id] = tx
	}

	return snap, nil
}

// IDs returns the patched transaction ids in ascending order. Updates are
// issued in this order so a partial failure leaves a predictable prefix
// applied.
func (p Patch) IDs() []int64 {
	ids := make([]int64, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
