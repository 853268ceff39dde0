package rentclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CreateBookingRequest is the body accepted by POST /bookings.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (c *Client) CreateBooking(userID int64, req CreateBookingRequest) (Response, error) {
	return c.do(http.MethodPost, "/bookings", userID, nil, req)
}

func (c *Client) DecideBooking(userID, bookingID int64, approved bool) (Response, error) {
	q := url.Values{}
	q.Set("approved", strconv.FormatBool(approved))
	return c.do(http.MethodPatch, fmt.Sprintf("/bookings/%d", bookingID), userID, q, nil)
}

func (c *Client) GetBooking(userID, bookingID int64) (Response, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), userID, nil, nil)
}

func (c *Client) ListBookings(userID int64, state string, from, size int) (Response, error) {
	q := pageQuery(from, size)
	q.Set("state", state)
	return c.do(http.MethodGet, "/bookings", userID, q, nil)
}

func (c *Client) ListOwnerBookings(userID int64, state string, from, size int) (Response, error) {
	q := pageQuery(from, size)
	q.Set("state", state)
	return c.do(http.MethodGet, "/bookings/owner", userID, q, nil)
}
