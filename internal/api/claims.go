package api

import (
	"context"
	"net/http"
	"strconv"
)

type claimListResponse struct {
	envelope
	Claims []Claim `json:"claims"`
}

type claimResponse struct {
	envelope
	Data *Claim `json:"data"`
}

// Claims lists the current user's claims.
func (c *Client) Claims(ctx context.Context) ([]Claim, error) {
	var payload claimListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/claims", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Claims, nil
}

// ClaimItem asserts ownership of a found item. The resulting status
// transition is never computed locally; callers re-fetch the feed to see
// the server-authoritative state. Returns the server's success message.
func (c *Client) ClaimItem(ctx context.Context, itemID int64) (string, error) {
	var payload envelope
	if err := c.doJSON(ctx, http.MethodPost, "/claims/item/"+strconv.FormatInt(itemID, 10), nil, &payload); err != nil {
		return "", err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// ClaimByID fetches a single claim.
func (c *Client) ClaimByID(ctx context.Context, id int64) (*Claim, error) {
	var payload claimResponse
	if err := c.doJSON(ctx, http.MethodGet, "/claims/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Data, nil
}
