package patch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/indexer"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/matcher"
)

func makeTx(id int64, amount, payee string, date ledger.Date) ledger.Transaction {
	return ledger.Transaction{ID: id, Amount: amount, Payee: payee, Date: date}
}

func TestBuild_BothEndsGetIdenticalFields(t *testing.T) {
	chargeDate := ledger.NewDate(2024, time.March, 1)
	refundDate := ledger.NewDate(2024, time.March, 10)
	idx, err := indexer.Build([]ledger.Transaction{
		makeTx(1, "100.0000", "Acme", chargeDate),
		makeTx(2, "-100.0000", "Acme", refundDate),
	})
	require.NoError(t, err)

	p, err := Build([]matcher.Pair{{ChargeID: 1, RefundID: 2}}, idx)
	require.NoError(t, err)

	require.Len(t, p, 2)
	expected := ledger.UpdateFields{Payee: "Acme (refunded)", Date: chargeDate}
	assert.Equal(t, expected, p[1])
	assert.Equal(t, expected, p[2])

	// The refund's own date is discarded in favor of the charge's.
	assert.Equal(t, "2024-03-01", p[2].Date.String())
}

func TestBuild_EmptyPairs(t *testing.T) {
	idx, err := indexer.Build(nil)
	require.NoError(t, err)

	p, err := Build(nil, idx)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestBuild_MissingCharge(t *testing.T) {
	idx, err := indexer.Build(nil)
	require.NoError(t, err)

	_, err = Build([]matcher.Pair{{ChargeID: 1, RefundID: 2}}, idx)
	assert.Error(t, err)
}

func TestOriginals_CapturesFullRecords(t *testing.T) {
	chargeDate := ledger.NewDate(2024, time.March, 1)
	refundDate := ledger.NewDate(2024, time.March, 10)
	charge := makeTx(1, "100.0000", "Acme", chargeDate)
	refund := makeTx(2, "-100.0000", "Acme", refundDate)
	idx, err := indexer.Build([]ledger.Transaction{charge, refund})
	require.NoError(t, err)

	p, err := Build([]matcher.Pair{{ChargeID: 1, RefundID: 2}}, idx)
	require.NoError(t, err)

	snap, err := Originals(p, idx)
	require.NoError(t, err)

	require.Len(t, snap, 2)
	assert.Equal(t, charge, snap[1])
	assert.Equal(t, refund, snap[2])

	// Originals keep the pre-patch values, not the new ones.
	assert.Equal(t, "Acme", snap[2].Payee)
	assert.Equal(t, "2024-03-10", snap[2].Date.String())
}

func TestPatch_IDsSorted(t *testing.T) {
	p := Patch{
		9: {Payee: "C"},
		1: {Payee: "A"},
		5: {Payee: "B"},
	}

	assert.Equal(t, []int64{1, 5, 9}, p.IDs())
}
