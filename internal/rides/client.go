package rides

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNetwork wraps failures to reach the API at all.
	ErrNetwork = errors.New("ride api unreachable")
	// ErrUnexpectedResponse wraps bodies that are not the JSON the API promises.
	ErrUnexpectedResponse = errors.New("unexpected response from ride api")
)

// Client handles HTTP communication with the ride tracking API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// APIError represents a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string `json:"erro"`
	Detail     string `json:"mensagem"`

	body []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
	}
	if e.Detail != "" {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error (%d)", e.StatusCode)
}

// NewClient creates a Client for the API rooted at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	u := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, u, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, body: respBody}
		// Try to parse structured error
		_ = json.Unmarshal(respBody, apiErr)
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrUnexpectedResponse, method, path, err)
		}
	}

	return nil
}

// DashboardStats fetches the aggregate statistics.
func (c *Client) DashboardStats(ctx context.Context) (*Stats, error) {
	var resp Stats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard-stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRides fetches the ride history, most recent first.
func (c *Client) ListRides(ctx context.Context) ([]Ride, error) {
	var resp []Ride
	if err := c.do(ctx, http.MethodGet, "/api/corridas", nil, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []Ride{}
	}
	return resp, nil
}

// CreateRide posts a new ride. The returned Result decides whether the
// write counts as a success; see Result.Created and Result.Duplicate.
// A non-2xx answer with a JSON body returns both the decoded Result and
// the *APIError, since the API reports duplicates that way.
func (c *Client) CreateRide(ctx context.Context, req CreateRequest) (*Result, error) {
	var resp Result
	err := c.do(ctx, http.MethodPost, "/api/corridas", req, &resp)

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		if json.Unmarshal(apiErr.body, &resp) != nil {
			return nil, err
		}
		return &resp, err
	case err != nil:
		return nil, err
	}
	return &resp, nil
}

// UpdateRide applies a partial update to an existing ride.
func (c *Client) UpdateRide(ctx context.Context, id ID, req UpdateRequest) (*Result, error) {
	var resp Result
	if err := c.do(ctx, http.MethodPut, ridePath(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteRide removes a ride.
func (c *Client) DeleteRide(ctx context.Context, id ID) (*Result, error) {
	var resp Result
	if err := c.do(ctx, http.MethodDelete, ridePath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func ridePath(id ID) string {
	return "/api/corridas/" + url.PathEscape(string(id))
}
