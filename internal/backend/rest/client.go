// Package rest is the backend.Client implementation for the hosted menu
// service: JSON over HTTP for session and table operations, a websocket for
// the row-level change feed.
package rest

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

	"github.com/vparedes/menuadmin/internal/backend"
	"github.com/vparedes/menuadmin/internal/domain"
)

// Client talks to the hosted menu backend.
type Client struct {
	baseURL string
	apiKey  string
	token   string
	http    *http.Client
}

// New returns a client for the service at baseURL. apiKey is sent in the
// api_key header on every request; token is the bearer session token.
func New(baseURL, apiKey, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) CheckSession(ctx context.Context) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/session", nil, &out)
	if err != nil {
		var be *backend.Error
		if errors.As(err, &be) && be.Status == http.StatusUnauthorized {
			return false, nil
		}
		return false, err
	}
	return out.Valid, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/signout", nil, nil)
}

func (c *Client) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.do(ctx, http.MethodGet, "/v1/menu/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, patch domain.MenuItemPatch) error {
	return c.do(ctx, http.MethodPatch, "/v1/menu/items/"+id, patch, nil)
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/menu/items/"+id, nil, nil)
}

// do performs one JSON round trip. A non-2xx response becomes a typed
// backend.Error carrying the service's message.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req.Header)

	resp, err := c.http.Do(req)
	if err != nil {
		return &backend.Error{Op: method + " " + path, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &backend.Error{
			Op:      method + " " + path,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setAuth(h http.Header) {
	if c.apiKey != "" {
		h.Set("api_key", c.apiKey)
	}
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
}

// readErrorMessage extracts the service's error message from a failure
// response, falling back to the HTTP status text.
func readErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(data) > 0 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}
