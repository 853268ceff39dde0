package rentclient

import (
	"fmt"
	"net/http"
)

// CreateUserRequest is the body accepted by POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest carries a partial user update.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (c *Client) CreateUser(req CreateUserRequest) (Response, error) {
	return c.do(http.MethodPost, "/users", 0, nil, req)
}

func (c *Client) ListUsers() (Response, error) {
	return c.do(http.MethodGet, "/users", 0, nil, nil)
}

func (c *Client) GetUser(id int64) (Response, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/users/%d", id), 0, nil, nil)
}

func (c *Client) UpdateUser(id int64, req UpdateUserRequest) (Response, error) {
	return c.do(http.MethodPatch, fmt.Sprintf("/users/%d", id), 0, nil, req)
}

func (c *Client) DeleteUser(id int64) (Response, error) {
	return c.do(http.MethodDelete, fmt.Sprintf("/users/%d", id), 0, nil, nil)
}
