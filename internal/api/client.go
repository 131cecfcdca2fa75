// Package api implements the HTTP client for the Lost & Found server.
// All requests ride a cookie jar for session auth; every response is a
// JSON envelope whose failures surface as StatusError values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Service defines every operation the client performs against the Lost &
// Found API. It is implemented by *Client and lets the UI substitute
// fakes in tests.
type Service interface {
	// Auth
	Login(ctx context.Context, creds Credentials) (*User, error)
	Register(ctx context.Context, reg Registration) (*User, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Validate(ctx context.Context) error
	Me(ctx context.Context) (*User, error)

	// Items
	ListItems(ctx context.Context, query ItemQuery) ([]Item, error)
	CreateItem(ctx context.Context, item NewItem) (string, error)
	ItemByID(ctx context.Context, id int64) (*Item, error)

	// Claims
	Claims(ctx context.Context) ([]Claim, error)
	ClaimItem(ctx context.Context, itemID int64) (string, error)
	ClaimByID(ctx context.Context, id int64) (*Claim, error)

	// Messages
	Messages(ctx context.Context) ([]Message, error)
	SentMessages(ctx context.Context) ([]Message, error)
	SendMessage(ctx context.Context, msg OutgoingMessage) (string, error)
	Reply(ctx context.Context, msg OutgoingMessage) (string, error)
	MessageByID(ctx context.Context, id int64) (*Message, error)

	// Feedback, dashboards
	SubmitFeedback(ctx context.Context, text string) (string, error)
	Dashboard(ctx context.Context) (*Dashboard, error)

	// Admin
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)
	DeleteItem(ctx context.Context, id int64) (string, error)
	DeleteClaim(ctx context.Context, id int64) (string, error)
	DeleteUser(ctx context.Context, id int64) (string, error)
	DeleteFeedback(ctx context.Context, id int64) (string, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the Lost & Found HTTP API. Session authentication is
// cookie-based: the jar carries the access and refresh cookies on every
// request, and no token is ever held in client-visible state.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServer    = "127.0.0.1:8080"
	defaultUserAgent = "trove/0.1"
	requestTimeout   = 10 * time.Second

	authPathPrefix = "/api/auth/"
	refreshPath    = "/api/auth/refresh"
)

// NewClient builds a Client for the provided server value, which may be
// a bare host:port or a full URL.
func NewClient(server string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// doJSON issues a request with an optional JSON body and decodes the
// response into dest.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, dest any) error {
	rel := &url.URL{Path: path}
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	return c.do(ctx, method, rel, "application/json", payload, dest)
}

// do sends the request, transparently refreshing the session once on a
// 401 from any non-auth endpoint. The body is a byte slice so the retry
// can replay it.
func (c *Client) do(ctx context.Context, method string, rel *url.URL, contentType string, body []byte, dest any) error {
	resp, err := c.send(ctx, method, rel, contentType, body)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !strings.HasPrefix(rel.Path, authPathPrefix) {
		_ = resp.Body.Close()
		if err := c.refreshSession(ctx); err != nil {
			return ErrSessionExpired
		}
		resp, err = c.send(ctx, method, rel, contentType, body)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return &StatusError{Code: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, contentType string, body []byte) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	return c.http.Do(req)
}

func (c *Client) refreshSession(ctx context.Context) error {
	rel := &url.URL{Path: refreshPath}
	resp, err := c.send(ctx, http.MethodPost, rel, "", nil)
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
