// Package matcher pairs refund transactions with their original charges.
//
// The matcher works off the amount index: every negative amount is a
// candidate refund, and a refund of amount a is paired with whichever
// transaction the index holds at -a. Amount equality is a deliberately
// cheap heuristic for a personal ledger where refunds mirror the original
// charge exactly, so a qualification filter guards against coincidental
// matches:
//   - payee must be identical on both ends
//   - dates must differ (already-synchronized pairs are a no-op)
//   - the charge payee must not already carry the refund marker
//
// Example usage:
//
//	m := matcher.NewMatcher(matcher.DefaultConfig())
//	pairs := m.Match(idx)
package matcher

import (
	"sort"
	"strings"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/indexer"
)

// Matcher finds qualifying charge/refund pairs in a transaction index
type Matcher struct {
	config Config
}

// NewMatcher creates a new matcher with the given config
func NewMatcher(config Config) *Matcher {
	return &Matcher{
		config: config,
	}
}

// Match returns every qualifying charge/refund pair in the index, sorted by
// charge id for deterministic downstream ordering.
//
// If multiple transactions shared an amount, only the last-indexed one is
// reachable through the amount map, so a charge or refund id appears in at
// most one pair.
func (m *Matcher) Match(idx *indexer.Index) []Pair {
	var pairs []Pair

	for amount, refundID := range idx.AmountToID {
		if amount >= 0 {
			continue
		}

		chargeID, ok := idx.AmountToID[-amount]
		if !ok {
			continue
		}

		pair := Pair{ChargeID: chargeID, RefundID: refundID}
		if m.qualifies(pair, idx) {
			pairs = append(pairs, pair)
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].ChargeID < pairs[j].ChargeID
	})

	return pairs
}

// qualifies applies the false-positive and idempotence guards to a
// candidate pair.
func (m *Matcher) qualifies(pair Pair, idx *indexer.Index) bool {
	charge, ok := idx.Record(pair.ChargeID)
	if !ok {
		return false
	}
	refund, ok := idx.Record(pair.RefundID)
	if !ok {
		return false
	}

	if charge.Payee != refund.Payee {
		return false
	}
	if charge.Date.Equal(refund.Date) {
		return false
	}
	if strings.Contains(charge.Payee, m.config.Marker) {
		return false
	}

	return true
}
