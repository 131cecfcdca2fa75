package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type itemListResponse struct {
	envelope
	Items []Item `json:"items"`
}

type itemResponse struct {
	envelope
	Data *Item `json:"data"`
}

// ListItems retrieves the shared item feed, optionally narrowed by a
// free-text search and a status filter. Empty query fields are omitted
// from the request.
func (c *Client) ListItems(ctx context.Context, query ItemQuery) ([]Item, error) {
	values := url.Values{}
	if search := strings.TrimSpace(query.Search); search != "" {
		values.Set("search", search)
	}
	if query.Status != "" {
		values.Set("status", string(query.Status))
	}
	rel := &url.URL{Path: "/items", RawQuery: values.Encode()}

	var payload itemListResponse
	if err := c.do(ctx, http.MethodGet, rel, "", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// CreateItem registers a new item as multipart/form-data. The multipart
// writer supplies the Content-Type with its boundary; it is never set by
// hand. Returns the server's success message.
func (c *Client) CreateItem(ctx context.Context, item NewItem) (string, error) {
	if len(item.ImageData) == 0 {
		return "", fmt.Errorf("item image required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":        strings.TrimSpace(item.Name),
		"description": strings.TrimSpace(item.Description),
		"location":    strings.TrimSpace(item.Location),
		"status":      string(item.Status),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", fmt.Errorf("encode field %s: %w", name, err)
		}
	}
	part, err := w.CreateFormFile("image", item.ImageName)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	if _, err := part.Write(item.ImageData); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish multipart body: %w", err)
	}

	rel := &url.URL{Path: "/items"}
	var payload envelope
	if err := c.do(ctx, http.MethodPost, rel, w.FormDataContentType(), buf.Bytes(), &payload); err != nil {
		return "", err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// ItemByID fetches a single item.
func (c *Client) ItemByID(ctx context.Context, id int64) (*Item, error) {
	var payload itemResponse
	if err := c.doJSON(ctx, http.MethodGet, "/items/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.asError(http.StatusOK); err != nil {
		return nil, err
	}
	return payload.Data, nil
}
