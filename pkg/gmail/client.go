// Package gmail sends HTML mail through the Gmail REST API using an OAuth2
// refresh-token credential. Token acquisition and refresh are delegated to
// golang.org/x/oauth2.
package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL  = "https://gmail.googleapis.com/gmail/v1"
	defaultTokenURL = "https://oauth2.googleapis.com/token"
)

// Client defines the mail operations used by the notifier.
type Client interface {
	SendHTML(ctx context.Context, to, subject, htmlBody string) (*SendResponse, error)
}

// Credentials holds the OAuth2 refresh-token credential for one Gmail
// account. User is the sending address.
type Credentials struct {
	User         string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// SendResponse is Gmail's response to users/me/messages/send.
type SendResponse struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
}

// APIError is returned when Gmail or the token endpoint responds with a
// non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gmail: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the Gmail API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithTokenURL overrides the OAuth2 token endpoint.
func WithTokenURL(url string) Option {
	return func(c *httpClient) {
		c.tokenURL = url
	}
}

// WithHTTPClient sets a custom *http.Client for both token refresh and send.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// httpClient implements Client using net/http and x/oauth2.
type httpClient struct {
	creds    Credentials
	baseURL  string
	tokenURL string
	http     *http.Client
}

// NewClient creates a new Gmail client.
func NewClient(creds Credentials, opts ...Option) Client {
	c := &httpClient{
		creds:    creds,
		baseURL:  defaultBaseURL,
		tokenURL: defaultTokenURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendHTML builds an RFC 822 message with an HTML body and submits it via
// users/me/messages/send.
func (c *httpClient) SendHTML(ctx context.Context, to, subject, htmlBody string) (*SendResponse, error) {
	if to == "" {
		return nil, eris.New("gmail: recipient is required")
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "gmail: refresh access token")
	}

	raw := c.rawMessage(to, subject, htmlBody)
	body, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return nil, eris.Wrap(err, "gmail: marshal message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/users/me/messages/send", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "gmail: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "gmail: execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "gmail: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var out SendResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, eris.Wrap(err, "gmail: decode response")
	}
	return &out, nil
}

// accessToken exchanges the refresh token for a short-lived access token.
// The exchange runs per send; Gmail traffic here is low enough that token
// caching is not worth the shared state.
func (c *httpClient) accessToken(ctx context.Context) (string, error) {
	cfg := &oauth2.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: c.tokenURL},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	ts := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: c.creds.RefreshToken})
	tok, err := ts.Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// rawMessage assembles the base64url-encoded RFC 822 message Gmail expects.
func (c *httpClient) rawMessage(to, subject, htmlBody string) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "From: %s\r\n", c.creds.User)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return base64.URLEncoding.EncodeToString(b.Bytes())
}
