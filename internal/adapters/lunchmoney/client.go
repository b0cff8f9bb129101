// Package lunchmoney provides a client for the Lunch Money transactions API.
package lunchmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/eshaffer321/lunchmoney-refund-sync/internal/domain/ledger"
)

// DefaultBaseURL is the production Lunch Money transactions endpoint.
const DefaultBaseURL = "https://dev.lunchmoney.app/v1/transactions"

// Config holds client configuration.
type Config struct {
	APIKey  string
	BaseURL string // Defaults to DefaultBaseURL when empty
}

// Client provides access to the Lunch Money transactions API.
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	logger  *slog.Logger
}

// NewClient creates a new Lunch Money API client. The API key is passed in
// explicitly rather than read from process-wide state so callers control
// credential loading.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.RetryWaitMax = 5 * time.Second
	httpClient.HTTPClient.Timeout = 30 * time.Second
	httpClient.Logger = &retryLogger{logger: logger}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  logger,
	}
}

// GetTransactions fetches all transactions in the inclusive date range.
func (c *Client) GetTransactions(ctx context.Context, start, end ledger.Date) ([]ledger.Transaction, error) {
	params := url.Values{}
	params.Set("start_date", start.String())
	params.Set("end_date", end.String())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch transactions: %s: %s", resp.Status, readBodySnippet(resp.Body))
	}

	var result struct {
		Transactions []ledger.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode transactions response: %w", err)
	}

	return result.Transactions, nil
}

// UpdateTransaction rewrites the mutable fields of a single transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, fields ledger.UpdateFields) error {
	body, err := json.Marshal(map[string]ledger.UpdateFields{"transaction": fields})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.baseURL, id), body)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("update transaction %d: %s: %s", id, resp.Status, readBodySnippet(resp.Body))
	}

	return nil
}

func (c *Client) setHeaders(req *retryablehttp.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

// readBodySnippet returns a bounded portion of an error response body for
// inclusion in error messages.
func readBodySnippet(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(data) == 0 {
		return "<no body>"
	}
	return strings.TrimSpace(string(data))
}

// retryLogger adapts slog to retryablehttp's LeveledLogger interface,
// routing transport retry chatter to debug level.
type retryLogger struct {
	logger *slog.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}
