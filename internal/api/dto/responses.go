// Package dto defines the JSON shapes served by the read-only API.
package dto

import (
	"time"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// NewHealthResponse creates a healthy response with the current time
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
}

// RunListResponse wraps a list of runs
type RunListResponse struct {
	Runs  []storage.Run `json:"runs"`
	Count int           `json:"count"`
}

// SnapshotListResponse wraps a list of snapshot summaries
type SnapshotListResponse struct {
	Snapshots []storage.SnapshotRecord `json:"snapshots"`
	Count     int                      `json:"count"`
}

// SnapshotResponse wraps one snapshot's contents
type SnapshotResponse struct {
	WindowKey        string          `json:"window_key"`
	TransactionCount int             `json:"transaction_count"`
	Transactions     ledger.Snapshot `json:"transactions"`
}

// ErrorResponse is the uniform error shape
type ErrorResponse struct {
	Error string `json:"error"`
}
