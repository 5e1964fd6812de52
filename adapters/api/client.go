package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"edunest/domain/ingest"
	"edunest/internal/config"
	"edunest/internal/errors"
	"edunest/ports"
)

// Client submits validated batches to the EduNest REST backend. One
// POST per batch; the backend either accepts the whole batch or rejects
// it, matching the pipeline's all-or-nothing contract.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a backend submission client from configuration.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

var _ ports.SubmissionPort = (*Client)(nil)

// SubmitFees posts a validated fee batch.
func (c *Client) SubmitFees(ctx context.Context, batch []ingest.FeeRecord) error {
	return c.post(ctx, "/api/fees/bulk", batch)
}

// SubmitAttendance posts a validated attendance batch.
func (c *Client) SubmitAttendance(ctx context.Context, batch []ingest.AttendanceRecord) error {
	return c.post(ctx, "/api/attendance/bulk", batch)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	reqStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithCode(errors.CodeSubmitFailed, fmt.Errorf("backend request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithCode(errors.CodeSubmitFailed, fmt.Errorf("failed to read backend response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Surface the backend's message verbatim; the UI shows it as-is.
		return errors.WithCode(errors.CodeSubmitFailed,
			fmt.Errorf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	log.Printf("[BackendClient] POST %s accepted in %.2fms",
		path, float64(time.Since(reqStart).Nanoseconds())/1e6)
	return nil
}
