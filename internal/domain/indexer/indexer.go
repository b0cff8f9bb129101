// Package indexer builds the lookup structures the matcher works from.
//
// Two maps are populated in a single pass over the fetched transactions:
//
//   - AmountToID: amount -> transaction id
//   - IDToRecord: transaction id -> full record
//
// When two transactions share an amount, the later one overwrites the
// earlier in AmountToID (last-write-wins). This is a documented precision
// limitation of amount-based matching, not a tie-break guarantee.
package indexer

import (
	"fmt"
	"strconv"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
)

// Index holds the amount and id lookup maps for one processing window.
type Index struct {
	AmountToID map[float64]int64
	IDToRecord map[int64]ledger.Transaction
}

// Build populates an Index from the fetched transactions, in input order.
//
// Amounts are parsed with float64 semantics; the index does not round and
// does not attempt fixed-point normalization. A record whose amount does
// not parse is a malformed input and fails the build.
func Build(transactions []ledger.Transaction) (*Index, error) {
	idx := &Index{
		AmountToID: make(map[float64]int64, len(transactions)),
		IDToRecord: make(map[int64]ledger.Transaction, len(transactions)),
	}

	for _, tx := range transactions {
		amount, err := strconv.ParseFloat(tx.Amount, 64)
		if err != nil {
			return nil, fmt.Errorf("transaction %d has malformed amount %q: %w", tx.ID, tx.Amount, err)
		}
		idx.AmountToID[amount] = tx.ID
		idx.IDToRecord[tx.ID] = tx
	}

	return idx, nil
}

// Record returns the full record for an id.
func (idx *Index) Record(id int64) (ledger.Transaction, bool) {
	tx, ok := idx.IDToRecord[id]
	return tx, ok
}

// Len returns the number of indexed transactions.
func (idx *Index) Len() int {
	return len(idx.IDToRecord)
}
