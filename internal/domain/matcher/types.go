package matcher

// Config holds matcher configuration
type Config struct {
	// Marker is the substring that identifies an already-annotated payee.
	// A charge whose payee contains it is never re-paired, which makes
	// repeated runs over the same window idempotent.
	Marker string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Marker: "refunded",
	}
}

// Pair links a refund transaction to the charge it reverses. The refund's
// amount is the exact negation of the charge's amount.
type Pair struct {
	ChargeID int64
	RefundID int64
}
