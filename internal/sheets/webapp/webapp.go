// Package webapp exports records to a spreadsheet ingestion web app with a
// single JSON POST.
package webapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kakei/internal/core"
	applog "kakei/internal/log"
	ports "kakei/internal/sheets"
)

var _ ports.Exporter = (*Client)(nil)

// Payload is the request body sent on every export.
type Payload struct {
	Expenses []core.Record `json:"expenses"`
}

// Client posts the record collection to a fixed URL.
type Client struct {
	url  string
	http *http.Client
}

// New returns a client for url. A nil httpClient uses a client without a
// timeout; the caller's context is the only bound on the request.
func New(url string, httpClient *http.Client) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("missing sync URL")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{url: url, http: httpClient}, nil
}

// Export sends {"expenses": records}. Any request that completes without a
// transport error counts as success; the response is not inspected.
func (c *Client) Export(ctx context.Context, records []core.Record) error {
	if records == nil {
		records = []core.Record{}
	}
	body, err := json.Marshal(Payload{Expenses: records})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post to sync endpoint: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	applog.ForComponent(ctx, applog.ComponentSync).InfoContext(ctx, "Exported records to web app",
		"count", len(records),
		"status_code", resp.StatusCode,
		"bytes", len(body))
	return nil
}
