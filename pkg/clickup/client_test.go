package clickup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc, opts ...Option) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("pk_test_key", append([]Option{WithBaseURL(srv.URL)}, opts...)...)
}

func TestCreateTask(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/list/901234/task", r.URL.Path)
		assert.Equal(t, "pk_test_key", r.Header.Get("Authorization"))

		var req TaskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Lead: Acme Corp", req.Name)
		assert.Contains(t, req.Description, "https://acme.example")
		require.Len(t, req.CustomFields, 2)
		assert.Equal(t, "field-website", req.CustomFields[0].ID)
		assert.Equal(t, "https://acme.example", req.CustomFields[0].Value)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TaskResponse{ID: "abc123", URL: "https://app.clickup.com/t/abc123"})
	})

	resp, err := c.CreateTask(context.Background(), "901234", TaskRequest{
		Name:        "Lead: Acme Corp",
		Description: "Website: https://acme.example",
		CustomFields: []CustomField{
			{ID: "field-website", Value: "https://acme.example"},
			{ID: "field-email", Value: "info@acme.example"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.ID)
	assert.Equal(t, "https://app.clickup.com/t/abc123", resp.URL)
}

func TestCreateTaskAPIError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"err":"Token invalid","ECODE":"OAUTH_025"}`))
	})

	_, err := c.CreateTask(context.Background(), "901234", TaskRequest{Name: "Lead"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "OAUTH_025")
}

func TestCreateTaskRateLimited(t *testing.T) {
	var calls int
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(TaskResponse{ID: "t1"})
	}, WithRateLimit(100))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.CreateTask(context.Background(), "1", TaskRequest{Name: "Lead"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	// 100 rps with a burst of 100 should not introduce a visible delay.
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCreateTaskRateLimitCancelled(t *testing.T) {
	c := NewClient("pk_test_key", WithRateLimit(0.001))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// First wait consumes the burst token, second must block until cancel.
	limited := c.(*httpClient)
	require.NotNil(t, limited.limiter)
	require.NoError(t, limited.wait(context.Background()))

	err := limited.wait(ctx)
	require.Error(t, err)
}
