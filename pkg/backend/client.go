// Package backend talks to the booking backend, the system of record for appointments,
// availability and subscriptions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/booking-api/pkg/config"
)

const maxBodyBytes = 1 << 20

// Observer receives timing information for every backend call.
type Observer interface {
	ObserveUpstream(operation string, status int, duration time.Duration)
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend responded with status %d", e.Operation, e.StatusCode)
}

// Client is a thin JSON client for the booking backend.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient builds a backend client.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, observer Observer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		observer: observer,
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

func (c *Client) do(ctx context.Context, operation, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode payload: %w", operation, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(operation, http.StatusServiceUnavailable, duration)
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	c.observe(operation, resp.StatusCode, duration)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", operation, err)
	}

	c.logger.Debug("backend call",
		zap.String("operation", operation),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", duration),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, &StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: raw}
	}
	return raw, nil
}

func (c *Client) observe(operation string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(operation, status, duration)
	}
}
