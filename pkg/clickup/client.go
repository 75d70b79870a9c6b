// Package clickup provides the ClickUp task operations used for lead capture.
package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the ClickUp v2 API.
const defaultBaseURL = "https://api.clickup.com/api/v2"

// Client defines the ClickUp operations used by the notifier.
type Client interface {
	CreateTask(ctx context.Context, listID string, req TaskRequest) (*TaskResponse, error)
}

// TaskRequest is the body for POST /list/{id}/task.
type TaskRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// CustomField sets one custom field on the created task.
type CustomField struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// TaskResponse is the created task.
type TaskResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// APIError is returned when ClickUp responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clickup: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets a per-second rate limit for ClickUp calls.
// A burst equal to the integer portion of rps is allowed.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new ClickUp client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *httpClient) CreateTask(ctx context.Context, listID string, req TaskRequest) (*TaskResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "clickup: rate limit")
	}

	var resp TaskResponse
	path := fmt.Sprintf("/list/%s/task", listID)
	if err := c.post(ctx, path, req, &resp); err != nil {
		return nil, eris.Wrap(err, "clickup: create task")
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	// ClickUp uses the bare API key, not a Bearer scheme.
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
