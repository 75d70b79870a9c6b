package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/voicelead/internal/model"
	"github.com/sells-group/voicelead/internal/pipeline"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, req model.AnalysisRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockRunner) ResendReport(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func postToolCall(t *testing.T, srv *Server, body string, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tools/call", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	srv := NewServer(new(mockRunner), time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestToolCallWebsiteAnalysis(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, model.AnalysisRequest{URL: "https://acme.example"}).
		Return("I've completed a comprehensive analysis of Acme Corp's website.", nil)

	srv := NewServer(runner, time.Minute)
	rec := postToolCall(t, srv,
		`{"tool": "voice_agent_website_analysis", "arguments": {"url": "https://acme.example"}}`,
		"application/json")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["result"], "Acme Corp")
	runner.AssertExpectations(t)
}

func TestToolCallInvalidURL(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, mock.Anything).
		Return("", &pipeline.RequestError{
			Kind:    pipeline.RequestInvalidURL,
			Message: "that doesn't look like a valid website address",
		})

	srv := NewServer(runner, time.Minute)
	rec := postToolCall(t, srv,
		`{"tool": "voice_agent_website_analysis", "arguments": {"url": "not a url at all"}}`,
		"application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "that doesn't look like a valid website address", decodeBody(t, rec)["error"])
}

func TestToolCallMissingURL(t *testing.T) {
	runner := new(mockRunner)
	srv := NewServer(runner, time.Minute)

	for _, body := range []string{
		`{"tool": "voice_agent_website_analysis"}`,
		`{"tool": "voice_agent_website_analysis", "arguments": {}}`,
		`{"tool": "voice_agent_website_analysis", "arguments": {"url": ""}}`,
	} {
		rec := postToolCall(t, srv, body, "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "url is required", decodeBody(t, rec)["error"], body)
	}
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestToolCallUnknownTool(t *testing.T) {
	srv := NewServer(new(mockRunner), time.Minute)
	rec := postToolCall(t, srv, `{"tool": "some_other_tool", "arguments": {}}`, "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown tool", decodeBody(t, rec)["error"])
}

func TestToolCallMalformedBody(t *testing.T) {
	srv := NewServer(new(mockRunner), time.Minute)
	rec := postToolCall(t, srv, `{not json`, "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeBody(t, rec)["error"])
}

func TestToolCallWrongContentType(t *testing.T) {
	srv := NewServer(new(mockRunner), time.Minute)
	rec := postToolCall(t, srv, `{"tool": "voice_agent_website_analysis"}`, "text/plain")

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestToolCallContentTypeWithCharset(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, mock.Anything).Return("summary", nil)

	srv := NewServer(runner, time.Minute)
	rec := postToolCall(t, srv,
		`{"tool": "voice_agent_website_analysis", "arguments": {"url": "https://acme.example"}}`,
		"application/json; charset=utf-8")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestToolCallUnexpectedError(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, mock.Anything).Return("", assert.AnError)

	srv := NewServer(runner, time.Minute)
	rec := postToolCall(t, srv,
		`{"tool": "voice_agent_website_analysis", "arguments": {"url": "https://acme.example"}}`,
		"application/json")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeBody(t, rec)["error"])
}

func TestToolCallSendReport(t *testing.T) {
	runner := new(mockRunner)
	runner.On("ResendReport", mock.Anything, "caller@example.com").
		Return("Successfully sent the automation report for Acme Corp to caller@example.com.", nil)

	srv := NewServer(runner, time.Minute)
	rec := postToolCall(t, srv,
		`{"tool": "send_report_to_email", "arguments": {"email": "caller@example.com"}}`,
		"application/json")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["result"], "Successfully sent")
	runner.AssertExpectations(t)
}

func TestToolCallSendReportMissingEmail(t *testing.T) {
	srv := NewServer(new(mockRunner), time.Minute)
	rec := postToolCall(t, srv, `{"tool": "send_report_to_email", "arguments": {}}`, "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is required", decodeBody(t, rec)["error"])
}

func TestCORSPreflight(t *testing.T) {
	srv := NewServer(new(mockRunner), time.Minute)

	req := httptest.NewRequest(http.MethodOptions, "/tools/call", nil)
	req.Header.Set("Origin", "https://voice.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
