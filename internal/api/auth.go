package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type authResponse struct {
	envelope
	User *User `json:"user"`
}

type identityResponse struct {
	envelope
	Data *User `json:"data"`
}

// Login authenticates with email and password. The session cookies are
// captured by the client's jar; the returned user drives role routing.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	var payload authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", creds, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("login response missing user")
	}
	return payload.User, nil
}

// Register creates an account. The new user signs in afterwards; no
// session cookie is assumed from registration alone.
func (c *Client) Register(ctx context.Context, reg Registration) (*User, error) {
	var payload authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", reg, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.User, nil
}

// Logout invalidates the server-side session and clears the cookies.
func (c *Client) Logout(ctx context.Context) error {
	var payload envelope
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, &payload); err != nil {
		return err
	}
	return payload.asError(http.StatusOK)
}

// Refresh exchanges the refresh cookie for a new access cookie.
func (c *Client) Refresh(ctx context.Context) error {
	return c.refreshSession(ctx)
}

// Validate checks that the current session cookie is still accepted.
func (c *Client) Validate(ctx context.Context) error {
	var payload envelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/validate", nil, &payload); err != nil {
		return err
	}
	return payload.asError(http.StatusOK)
}

// Me fetches the current identity. Callers treat any failure as "no
// session" rather than a fatal error.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var payload identityResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("identity response missing user")
	}
	return payload.Data, nil
}
