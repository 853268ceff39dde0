package domain

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking. A booking is created
// WAITING and moves to APPROVED or REJECTED exactly once, by the item owner.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	// StatusCanceled is a declared status value; no exposed operation
	// transitions into it.
	StatusCanceled BookingStatus = "CANCELED"
)

// StateFilter selects a subset of a user's bookings by time relationship or
// exact status when listing.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter matches a state token against the known filters.
func ParseStateFilter(token string) (StateFilter, bool) {
	switch StateFilter(strings.TrimSpace(token)) {
	case FilterAll:
		return FilterAll, true
	case FilterCurrent:
		return FilterCurrent, true
	case FilterPast:
		return FilterPast, true
	case FilterFuture:
		return FilterFuture, true
	case FilterWaiting:
		return FilterWaiting, true
	case FilterRejected:
		return FilterRejected, true
	default:
		return "", false
	}
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	Owner       User   `json:"owner"`
	// RequestID links the item to the request it answers; zero when the item
	// was listed on its own.
	RequestID int64 `json:"requestId"`
}

type Booking struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Item   Item          `json:"item"`
	Booker User          `json:"booker"`
	Status BookingStatus `json:"status"`
}

type Comment struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	ItemID  int64     `json:"itemId"`
	Author  User      `json:"author"`
	Created time.Time `json:"created"`
}

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Requestor   User      `json:"requestor"`
	Created     time.Time `json:"created"`
}
