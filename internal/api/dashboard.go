package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// SubmitFeedback sends platform feedback. The text is trimmed before
// submission; length bounds are enforced by the caller.
func (c *Client) SubmitFeedback(ctx context.Context, text string) (string, error) {
	body := map[string]string{"feedback": strings.TrimSpace(text)}
	var payload envelope
	if err := c.doJSON(ctx, http.MethodPost, "/feedback", body, &payload); err != nil {
		return "", err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// Dashboard fetches the current user's aggregate view: identity, items,
// claims, and messages in one request.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var payload Dashboard
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

type adminDashboardResponse struct {
	envelope
	AdminDashboard
}

// AdminDashboard fetches every collection the admin view manages plus
// summary counters. The server enforces the ADMIN role; the client gates
// the call besides.
func (c *Client) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var payload adminDashboardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/dashboard", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return &payload.AdminDashboard, nil
}

// DeleteItem removes an item record. Admin only.
func (c *Client) DeleteItem(ctx context.Context, id int64) (string, error) {
	return c.adminDelete(ctx, "/admin/items/", id)
}

// DeleteClaim removes a claim record. Admin only.
func (c *Client) DeleteClaim(ctx context.Context, id int64) (string, error) {
	return c.adminDelete(ctx, "/admin/claims/", id)
}

// DeleteUser removes a user account. Admin only; accounts with the ADMIN
// role are protected client-side and never reach this call.
func (c *Client) DeleteUser(ctx context.Context, id int64) (string, error) {
	return c.adminDelete(ctx, "/admin/users/", id)
}

// DeleteFeedback removes a feedback record. Admin only.
func (c *Client) DeleteFeedback(ctx context.Context, id int64) (string, error) {
	return c.adminDelete(ctx, "/admin/feedback/", id)
}

func (c *Client) adminDelete(ctx context.Context, prefix string, id int64) (string, error) {
	var payload envelope
	if err := c.doJSON(ctx, http.MethodDelete, prefix+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return "", err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return "", err
	}
	return payload.Message, nil
}
