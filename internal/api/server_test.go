package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
	"github.com/eshaffer321/lunchmoney-refund-sync/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	server := NewServer(DefaultConfig(), repo, slog.New(slog.DiscardHandler))
	return server, repo
}

func doRequest(t *testing.T, server *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListRuns(t *testing.T) {
	server, repo := newTestServer(t)
	runID, err := repo.StartRun(storage.RunKindReconcile, "2024-01-01_2024-03-31")
	require.NoError(t, err)
	require.NoError(t, repo.CompleteRun(runID, 10, 2, 2, 0, storage.RunStatusCompleted))

	rec := doRequest(t, server, http.MethodGet, "/api/runs")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Runs  []storage.Run `json:"runs"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, storage.RunStatusCompleted, body.Runs[0].Status)
}

func TestGetRun(t *testing.T) {
	server, repo := newTestServer(t)
	runID, err := repo.StartRun(storage.RunKindRollback, "w")
	require.NoError(t, err)

	rec := doRequest(t, server, http.MethodGet, "/api/runs/"+runID)

	require.Equal(t, http.StatusOK, rec.Code)
	var run storage.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, storage.RunKindRollback, run.Kind)
}

func TestGetRun_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/runs/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSnapshots(t *testing.T) {
	server, repo := newTestServer(t)
	require.NoError(t, repo.SaveSnapshot("2024-01-01_2024-03-31", ledger.Snapshot{
		1: {ID: 1, Amount: "10.0000", Payee: "Acme", Date: ledger.NewDate(2024, time.March, 2)},
	}))

	rec := doRequest(t, server, http.MethodGet, "/api/snapshots")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Snapshots []storage.SnapshotRecord `json:"snapshots"`
		Count     int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "2024-01-01_2024-03-31", body.Snapshots[0].WindowKey)
}

func TestGetSnapshot(t *testing.T) {
	server, repo := newTestServer(t)
	require.NoError(t, repo.SaveSnapshot("2024-01-01_2024-03-31", ledger.Snapshot{
		1: {ID: 1, Amount: "10.0000", Payee: "Acme", Date: ledger.NewDate(2024, time.March, 2)},
	}))

	rec := doRequest(t, server, http.MethodGet, "/api/snapshots/2024-01-01_2024-03-31")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		WindowKey        string                     `json:"window_key"`
		TransactionCount int                        `json:"transaction_count"`
		Transactions     map[string]json.RawMessage `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.TransactionCount)
	assert.Contains(t, body.Transactions, "1")
}

func TestGetSnapshot_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/snapshots/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
