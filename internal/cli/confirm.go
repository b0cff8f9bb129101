package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/patch"
)

// Prompter presents the pending changes and blocks on an interactive
// yes/no answer. It implements reconcile.Confirmer.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a confirmation prompt reading from in (normally
// os.Stdin) and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Confirm shows the preview and asks for an explicit "yes"
func (p *Prompter) Confirm(pending patch.Patch, originals ledger.Snapshot) (bool, error) {
	PrintPreview(p.out, pending, originals)
	fmt.Fprint(p.out, "Do you want to proceed with these updates? (yes/no): ")

	reader := bufio.NewReader(p.in)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

// AutoApprover shows the preview and approves without prompting, for
// pre-approved (-yes) and dry-run invocations.
type AutoApprover struct {
	out io.Writer
}

// NewAutoApprover creates a non-interactive approval gate
func NewAutoApprover(out io.Writer) *AutoApprover {
	return &AutoApprover{out: out}
}

// Confirm shows the preview and returns true
func (a *AutoApprover) Confirm(pending patch.Patch, originals ledger.Snapshot) (bool, error) {
	PrintPreview(a.out, pending, originals)
	return true, nil
}
