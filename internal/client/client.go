// Package client talks to the ROI API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []model.FieldError
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	for _, f := range e.Fields {
		msg += fmt.Sprintf("; %s %s", f.Field, f.Message)
	}
	return msg
}

// Client is a thin wrapper over the /api endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// New returns a client for the server at baseURL, e.g. http://localhost:5000.
func New(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Calculate submits input and returns the stored result.
func (c *Client) Calculate(ctx context.Context, input model.CalculationInput) (*model.CalculateResponse, error) {
	var resp model.CalculateResponse
	if err := c.do(ctx, http.MethodPost, "/api/calculate-roi", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCalculations returns up to limit recent calculations, newest first.
func (c *Client) ListCalculations(ctx context.Context, limit int) ([]model.CalculationRecord, error) {
	path := "/api/calculations"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var records []model.CalculationRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Calculation returns one stored calculation.
func (c *Client) Calculation(ctx context.Context, id string) (*model.CalculationRecord, error) {
	var record model.CalculationRecord
	if err := c.do(ctx, http.MethodGet, "/api/calculations/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Report returns the full report for a stored calculation.
func (c *Client) Report(ctx context.Context, id string) (*model.CalculationReport, error) {
	var report model.CalculationReport
	if err := c.do(ctx, http.MethodGet, "/api/calculations/"+url.PathEscape(id)+"/report", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) Scenarios(ctx context.Context) ([]model.Scenario, error) {
	var scenarios []model.Scenario
	if err := c.do(ctx, http.MethodGet, "/api/scenarios", nil, &scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	var health model.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) DBStatus(ctx context.Context) (*model.DBStatus, error) {
	var status model.DBStatus
	if err := c.do(ctx, http.MethodGet, "/api/db-status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do sends a request with an optional JSON body and decodes a JSON reply into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("API request")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody model.ErrorResponse
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Fields = errBody.Fields
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
