// Package api is the single shared client for the Envira backend. Every
// call site goes through one request path so auth headers and error
// handling stay consistent.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/envira/envira-cli/internal/logger"
)

// ErrUnauthorized marks responses the backend rejected for a missing or
// stale token. Views detect it with errors.Is and prompt for re-login.
var ErrUnauthorized = errors.New("authentication required")

// TokenSource supplies the bearer token for authenticated requests.
// Returning an error means "no token"; the request is sent unauthenticated
// and the backend decides.
type TokenSource interface {
	Get() (string, error)
}

// Error is a non-2xx backend response. Detail carries the backend's
// human-readable message verbatim.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// errorBody is the backend's error envelope. Which field is populated
// varies by endpoint.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Client talks to the Envira backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a backend client. No explicit timeout is set; the
// transport's defaults apply and callers control lifetime via ctx.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		tokens:     tokens,
	}
}

// do performs one request against the backend. body (if non-nil) is JSON
// encoded; out (if non-nil) receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok, err := c.tokens.Get(); err == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Detail: "Request failed"}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			if eb.Detail != "" {
				apiErr.Detail = eb.Detail
			} else if eb.Message != "" {
				apiErr.Detail = eb.Message
			}
		}
		logger.Warn("backend error", "method", method, "path", path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// listOrWrapped decodes payloads that arrive either as a bare JSON array
// or wrapped in an object under key. Several history endpoints do both
// depending on backend version.
func listOrWrapped[T any](data json.RawMessage, key string) []T {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil
	}
	if inner, ok := wrapped[key]; ok {
		if err := json.Unmarshal(inner, &items); err == nil {
			return items
		}
	}
	return nil
}
