// Package client is a typed Go client for the campus platform API served by
// campusmock. It issues the same requests as the desktop application.
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

	"campusmock/internal/api"
	"campusmock/internal/catalog"
)

// ActivityPayload is the body the desktop client posts to the sync endpoint.
type ActivityPayload struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Organizer       string `json:"organizer"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxParticipants int    `json:"max_participants"`
	Location        string `json:"location"`
	Status          int    `json:"status"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("campus api: %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL (e.g. http://localhost:8080). A nil
// RoundTripper selects NewTransport(false).
func New(baseURL string, rt http.RoundTripper) *Client {
	if rt == nil {
		rt = NewTransport(false)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: rt,
			Timeout:   15 * time.Second,
		},
	}
}

func (c *Client) Index(ctx context.Context) (catalog.Index, error) {
	var out catalog.Index
	err := c.do(ctx, http.MethodGet, "/", nil, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &out)
	return out, err
}

func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out)
	return out, err
}

func (c *Client) Announcements(ctx context.Context) ([]catalog.Announcement, error) {
	var out []catalog.Announcement
	err := c.do(ctx, http.MethodGet, "/api/announcements", nil, &out)
	return out, err
}

// SyncActivity posts payload, which is usually an ActivityPayload but may be
// any JSON-encodable value.
func (c *Client) SyncActivity(ctx context.Context, payload any) (api.SyncResponse, error) {
	var out api.SyncResponse
	err := c.do(ctx, http.MethodPost, "/api/activities/sync", payload, &out)
	return out, err
}

func (c *Client) SyncedActivities(ctx context.Context) (api.SyncedActivitiesResponse, error) {
	var out api.SyncedActivitiesResponse
	err := c.do(ctx, http.MethodGet, "/api/synced-activities", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody api.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
