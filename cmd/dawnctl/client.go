package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/utils"
)

const maxResponseBytes = 4 << 20

// serverClient sends configuration changes to a running dawnpage so they go
// through its live session.
type serverClient struct {
	base string
	http *http.Client
}

func newServerClient(base string) *serverClient {
	return &serverClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// changeResponse is the body of PUT /api/config and POST /api/config/reset,
// success or failure.
type changeResponse struct {
	OK     bool            `json:"ok"`
	Error  string          `json:"error"`
	Issues []schema.Issue  `json:"issues"`
	Config json.RawMessage `json:"config"`
}

// Import replaces the server's configuration with doc.
func (c *serverClient) Import(ctx context.Context, doc []byte) (schema.AppConfig, error) {
	return c.change(ctx, http.MethodPut, "/api/config", doc)
}

// Reset restores the server's default configuration.
func (c *serverClient) Reset(ctx context.Context) (schema.AppConfig, error) {
	return c.change(ctx, http.MethodPost, "/api/config/reset", nil)
}

func (c *serverClient) change(ctx context.Context, method, path string, body []byte) (schema.AppConfig, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(body))
	if err != nil {
		return schema.AppConfig{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return schema.AppConfig{}, fmt.Errorf("dawnpage server unreachable at %s (use --offline when it is stopped): %w", c.base, err)
	}
	defer utils.Close(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return schema.AppConfig{}, fmt.Errorf("failed to read response: %w", err)
	}

	var res changeResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return schema.AppConfig{}, fmt.Errorf("unexpected response from %s%s (status %d)", c.base, path, resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusOK && res.OK:
		return schema.ParseJSON(res.Config)
	case len(res.Issues) > 0:
		return schema.AppConfig{}, &schema.ValidationError{Issues: res.Issues}
	case res.Error != "":
		return schema.AppConfig{}, fmt.Errorf("server rejected the request (status %d): %s", resp.StatusCode, res.Error)
	default:
		return schema.AppConfig{}, fmt.Errorf("server rejected the request (status %d)", resp.StatusCode)
	}
}
