// Package outbox propagates locally written events to a remote collector,
// best-effort and without ever blocking local writes.
package outbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/smokesense/internal/model"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnauthorized indicates the configured API key was rejected.
var ErrUnauthorized = errors.New("outbox: unauthorized (api key rejected)")

// Client posts log events to the remote endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates a client for the given endpoint. Returns nil when the
// endpoint is empty, which the outbox treats as local-only mode.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// PushLog sends one event as a JSON POST to {endpoint}/logs. Any 2xx
// status is success; no response body contract is assumed.
func (c *Client) PushLog(ctx context.Context, ev *model.LogEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("outbox: encoding log %q: %w", ev.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/logs", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("outbox: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("outbox: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("outbox: unexpected status %d", resp.StatusCode)
	}
	return nil
}
