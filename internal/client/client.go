// Package client talks to the shots and settings API on behalf of one
// signed-in shooter.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backend-shottracker/internal/shot"

	json "github.com/goccy/go-json"
)

const defaultTimeout = 10 * time.Second

// TokenSource returns the bearer credential for the next request.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken always returns token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) { return token, nil }
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Message)
}

type Client struct {
	baseURL    string
	token      TokenSource
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func New(baseURL string, token TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListShots returns every record of the signed-in user.
func (c *Client) ListShots(ctx context.Context) ([]shot.Record, error) {
	var out []shot.Record
	if err := c.do(ctx, http.MethodGet, "/api/shots", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []shot.Record{}
	}
	return out, nil
}

// SaveShot upserts in and returns the stored record.
func (c *Client) SaveShot(ctx context.Context, in shot.Input) (shot.Record, error) {
	var out shot.Record
	if err := c.do(ctx, http.MethodPost, "/api/shots", in, &out); err != nil {
		return shot.Record{}, err
	}
	return out, nil
}

type settings struct {
	GoalPct *int `json:"goalPct"`
}

func (c *Client) Goal(ctx context.Context) (*int, error) {
	var out settings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &out); err != nil {
		return nil, err
	}
	return out.GoalPct, nil
}

// SetGoal stores goal; nil clears it.
func (c *Client) SetGoal(ctx context.Context, goal *int) (*int, error) {
	var out settings
	if err := c.do(ctx, http.MethodPost, "/api/settings", settings{GoalPct: goal}, &out); err != nil {
		return nil, err
	}
	return out.GoalPct, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return fmt.Errorf("token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage reads {"error": "..."} bodies and falls back to plain text.
func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
