package cli

import (
	"flag"
	"fmt"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/application/reconcile"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
)

// Flags are the common flags for the reconcile and rollback commands
type Flags struct {
	Start      string
	End        string
	ConfigFile string
	DryRun     bool
	Yes        bool
	Verbose    bool
}

// ParseReconcileFlags parses reconcile command flags from the command line
func ParseReconcileFlags() Flags {
	var flags Flags
	flag.StringVar(&flags.Start, "start", "", "Window start date (YYYY-MM-DD, required)")
	flag.StringVar(&flags.End, "end", "", "Window end date (YYYY-MM-DD, default today)")
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Preview changes without applying")
	flag.BoolVar(&flags.Yes, "yes", false, "Skip the confirmation prompt")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()
	return flags
}

// ParseRollbackFlags parses rollback command flags from the command line
func ParseRollbackFlags() Flags {
	var flags Flags
	flag.StringVar(&flags.Start, "start", "", "Window start date (YYYY-MM-DD, required)")
	flag.StringVar(&flags.End, "end", "", "Window end date (YYYY-MM-DD, default today)")
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.BoolVar(&flags.Yes, "yes", false, "Skip the confirmation prompt")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()
	return flags
}

// Window validates the date flags and converts them to a processing window.
// The end date defaults to today when omitted.
func (f Flags) Window() (reconcile.Window, error) {
	if f.Start == "" {
		return reconcile.Window{}, fmt.Errorf("-start is required (YYYY-MM-DD)")
	}

	start, err := ledger.ParseDate(f.Start)
	if err != nil {
		return reconcile.Window{}, err
	}

	end := ledger.Today()
	if f.End != "" {
		end, err = ledger.ParseDate(f.End)
		if err != nil {
			return reconcile.Window{}, err
		}
	}

	if start.After(end) {
		return reconcile.Window{}, fmt.Errorf("start date %s cannot be after end date %s", start, end)
	}

	return reconcile.Window{Start: start, End: end}, nil
}
