package rentclient

import (
	"fmt"
	"net/http"
)

// CreateItemRequest is the body accepted by POST /items.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"requestId,omitempty"`
}

// UpdateItemRequest carries a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// CreateCommentRequest is the body accepted by POST /items/{id}/comment.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

func (c *Client) CreateItem(userID int64, req CreateItemRequest) (Response, error) {
	return c.do(http.MethodPost, "/items", userID, nil, req)
}

func (c *Client) UpdateItem(userID, itemID int64, req UpdateItemRequest) (Response, error) {
	return c.do(http.MethodPatch, fmt.Sprintf("/items/%d", itemID), userID, nil, req)
}

func (c *Client) GetItem(userID, itemID int64) (Response, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/items/%d", itemID), userID, nil, nil)
}

func (c *Client) ListOwnerItems(userID int64, from, size int) (Response, error) {
	return c.do(http.MethodGet, "/items", userID, pageQuery(from, size), nil)
}

func (c *Client) SearchItems(userID int64, text string, from, size int) (Response, error) {
	q := pageQuery(from, size)
	q.Set("text", text)
	return c.do(http.MethodGet, "/items/search", userID, q, nil)
}

func (c *Client) AddComment(userID, itemID int64, req CreateCommentRequest) (Response, error) {
	return c.do(http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), userID, nil, req)
}
