package api

import (
	"context"
	"net/http"
	"strconv"
)

type messageListResponse struct {
	envelope
	Messages []Message `json:"messages"`
}

type messageResponse struct {
	envelope
	Data *Message `json:"data"`
}

// Messages lists messages received by the current user.
func (c *Client) Messages(ctx context.Context) ([]Message, error) {
	var payload messageListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/messages", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// SentMessages lists messages sent by the current user.
func (c *Client) SentMessages(ctx context.Context) ([]Message, error) {
	var payload messageListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/messages/sent", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// SendMessage starts a conversation about an item. Returns the server's
// success message.
func (c *Client) SendMessage(ctx context.Context, msg OutgoingMessage) (string, error) {
	var payload envelope
	if err := c.doJSON(ctx, http.MethodPost, "/messages", msg, &payload); err != nil {
		return "", err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// Reply answers a received message.
func (c *Client) Reply(ctx context.Context, msg OutgoingMessage) (string, error) {
	var payload envelope
	if err := c.doJSON(ctx, http.MethodPost, "/messages/reply", msg, &payload); err != nil {
		return "", err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// MessageByID fetches a single message.
func (c *Client) MessageByID(ctx context.Context, id int64) (*Message, error) {
	var payload messageResponse
	if err := c.doJSON(ctx, http.MethodGet, "/messages/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Data, nil
}
