// Package client talks to a guestbook server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"guestbook/internal/shared"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("guestbook: %d %s", e.Status, e.Message)
}

func (c *Client) ListEntries(ctx context.Context) ([]shared.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/entries", nil)
	if err != nil {
		return nil, err
	}

	var entries []shared.Entry
	if err := c.do(req, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry posts a submission. An empty name is sent as absent so the
// server applies its default.
func (c *Client) CreateEntry(ctx context.Context, name, message string) (shared.Entry, error) {
	in := shared.CreateEntryRequest{Message: &message}
	if name != "" {
		in.Name = &name
	}
	body, err := json.Marshal(in)
	if err != nil {
		return shared.Entry{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/entries", bytes.NewReader(body))
	if err != nil {
		return shared.Entry{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var e shared.Entry
	if err := c.do(req, http.StatusCreated, &e); err != nil {
		return shared.Entry{}, err
	}
	return e, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode != want {
		var er shared.ErrorResponse
		if json.Unmarshal(b, &er) != nil || er.Error == "" {
			er.Error = strings.TrimSpace(string(b))
		}
		return &APIError{Status: resp.StatusCode, Message: er.Error}
	}

	return json.Unmarshal(b, out)
}
