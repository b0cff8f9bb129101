package storage

// Run kinds
const (
	RunKindReconcile = "reconcile"
	RunKindRollback  = "rollback"
)

// Run statuses
const (
	RunStatusStarted   = "started"
	RunStatusCompleted = "completed"
	RunStatusPartial   = "partial"
	RunStatusFailed    = "failed"
)

// Run represents one reconcile or rollback invocation
type Run struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	WindowKey   string `json:"window_key"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	Found       int    `json:"transactions_found"`
	Matched     int    `json:"transactions_matched"`
	Updated     int    `json:"transactions_updated"`
	Failed      int    `json:"transactions_failed"`
	Status      string `json:"status"`
}

// SnapshotRecord summarizes a stored snapshot without its payload
type SnapshotRecord struct {
	WindowKey        string `json:"window_key"`
	CreatedAt        string `json:"created_at"`
	TransactionCount int    `json:"transaction_count"`
}
