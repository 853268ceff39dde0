package rentclient

import (
	"fmt"
	"net/http"
)

// CreateItemRequestRequest is the body accepted by POST /requests.
type CreateItemRequestRequest struct {
	Description string `json:"description"`
}

func (c *Client) CreateRequest(userID int64, req CreateItemRequestRequest) (Response, error) {
	return c.do(http.MethodPost, "/requests", userID, nil, req)
}

func (c *Client) ListOwnRequests(userID int64) (Response, error) {
	return c.do(http.MethodGet, "/requests", userID, nil, nil)
}

func (c *Client) ListOtherRequests(userID int64, from, size int) (Response, error) {
	return c.do(http.MethodGet, "/requests/all", userID, pageQuery(from, size), nil)
}

func (c *Client) GetRequest(userID, requestID int64) (Response, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/requests/%d", requestID), userID, nil, nil)
}
