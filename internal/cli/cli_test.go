package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/application/reconcile"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/patch"
)

func testPatch() (patch.Patch, ledger.Snapshot) {
	chargeDate := ledger.NewDate(2024, time.March, 2)
	refundDate := ledger.NewDate(2024, time.March, 12)
	p := patch.Patch{
		1: {Payee: "Acme (refunded)", Date: chargeDate},
		2: {Payee: "Acme (refunded)", Date: chargeDate},
	}
	snap := ledger.Snapshot{
		1: {ID: 1, Amount: "100.0000", Payee: "Acme", Date: chargeDate},
		2: {ID: 2, Amount: "-100.0000", Payee: "Acme", Date: refundDate},
	}
	return p, snap
}

func TestFlags_Window(t *testing.T) {
	flags := Flags{Start: "2024-01-01", End: "2024-03-31"}

	window, err := flags.Window()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01_2024-03-31", window.Key())
}

func TestFlags_Window_EndDefaultsToToday(t *testing.T) {
	flags := Flags{Start: "2024-01-01"}

	window, err := flags.Window()
	require.NoError(t, err)
	assert.True(t, window.End.Equal(ledger.Today()))
}

func TestFlags_Window_MissingStart(t *testing.T) {
	_, err := Flags{}.Window()
	assert.Error(t, err)
}

func TestFlags_Window_StartAfterEnd(t *testing.T) {
	_, err := Flags{Start: "2024-03-31", End: "2024-01-01"}.Window()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be after")
}

func TestFlags_Window_BadFormat(t *testing.T) {
	_, err := Flags{Start: "01/01/2024"}.Window()
	assert.Error(t, err)
}

func TestPrompter_Approves(t *testing.T) {
	p, snap := testPatch()
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("yes\n"), &out)

	approved, err := prompter.Confirm(p, snap)
	require.NoError(t, err)
	assert.True(t, approved)

	// Preview shows original and updated values for each id.
	preview := out.String()
	assert.Contains(t, preview, "Transaction ID: 1")
	assert.Contains(t, preview, "Original Payee: Acme, Date: 2024-03-02")
	assert.Contains(t, preview, "Updated Payee:  Acme (refunded), Date: 2024-03-02")
	assert.Contains(t, preview, "Transaction ID: 2")
	assert.Contains(t, preview, "Original Payee: Acme, Date: 2024-03-12")
}

func TestPrompter_Declines(t *testing.T) {
	p, snap := testPatch()
	prompter := NewPrompter(strings.NewReader("no\n"), &bytes.Buffer{})

	approved, err := prompter.Confirm(p, snap)
	require.NoError(t, err)
	assert.False(t, approved)
}

func TestPrompter_AnythingButYesDeclines(t *testing.T) {
	for _, answer := range []string{"y\n", "YES please\n", "\n", "ok\n"} {
		prompter := NewPrompter(strings.NewReader(answer), &bytes.Buffer{})
		p, snap := testPatch()

		approved, err := prompter.Confirm(p, snap)
		require.NoError(t, err)
		assert.False(t, approved, "answer %q should decline", answer)
	}
}

func TestPrompter_CaseInsensitiveYes(t *testing.T) {
	prompter := NewPrompter(strings.NewReader("Yes\n"), &bytes.Buffer{})
	p, snap := testPatch()

	approved, err := prompter.Confirm(p, snap)
	require.NoError(t, err)
	assert.True(t, approved)
}

func TestAutoApprover(t *testing.T) {
	p, snap := testPatch()
	var out bytes.Buffer

	approved, err := NewAutoApprover(&out).Confirm(p, snap)
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Contains(t, out.String(), "Transaction ID: 1")
}

func TestPrintReconcileSummary(t *testing.T) {
	tests := []struct {
		name   string
		result reconcile.Result
		want   string
	}{
		{"aborted", reconcile.Result{Aborted: true}, "aborted"},
		{"dry run", reconcile.Result{DryRun: true, Matched: 2}, "Dry run: 2"},
		{"no pairs", reconcile.Result{Found: 10}, "No refund pairs"},
		{"applied", reconcile.Result{Found: 10, Matched: 2, Updated: 2, Applied: true}, "Updated=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			PrintReconcileSummary(&out, &tt.result)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestPrintRollbackSummary(t *testing.T) {
	var out bytes.Buffer
	PrintRollbackSummary(&out, &reconcile.RollbackResult{Restored: 2, FailedIDs: []int64{7}})

	assert.Contains(t, out.String(), "Restored=2 Failed=1")
	assert.Contains(t, out.String(), "transaction 7")
}
