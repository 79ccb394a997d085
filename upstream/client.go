// Package upstream is the HTTP client for the dairy backend REST API. All
// backend payload shapes are normalized here, at the boundary; nothing
// outside this package inspects raw envelopes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"dairyfront/utils"

	"go.uber.org/zap"
)

// ErrUnavailable is returned when the backend could not be reached at all.
var ErrUnavailable = errors.New("backend unavailable")

// APIError carries a backend error message verbatim so handlers can surface
// it to the user unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.Status)
}

// Client talks to the dairy backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a backend client rooted at baseURL (e.g.
// "https://api.example.com/api/v1").
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     utils.GetLogger(),
	}
}

// do issues a JSON request. A non-empty token is sent as a bearer token.
// group labels the request for metrics.
func (c *Client) do(ctx context.Context, method, path, token, group string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed", zap.String("path", path), zap.Error(err))
		utils.UpstreamRequests.WithLabelValues(group, "unreachable").Inc()
		return ErrUnavailable
	}
	defer resp.Body.Close()

	utils.UpstreamRequests.WithLabelValues(group, strconv.Itoa(resp.StatusCode/100)+"xx").Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, token, group string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, group, nil, out)
}

func (c *Client) post(ctx context.Context, path, token, group string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, group, body, out)
}

func (c *Client) put(ctx context.Context, path, token, group string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, token, group, body, out)
}

func (c *Client) delete(ctx context.Context, path, token, group string) error {
	return c.do(ctx, http.MethodDelete, path, token, group, nil, nil)
}
