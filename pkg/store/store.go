package store

import (
	"time"

	"rentshare/pkg/domain"
)

// Store defines persistence for users, items, bookings, comments and item
// requests. Listing methods take their sort and pagination parameters so
// ordering and limits run inside the store query, not in memory.
type Store interface {
	// users
	CreateUser(u domain.User) (domain.User, error)
	UpdateUser(u domain.User) error
	GetUser(id int64) (domain.User, bool, error)
	ListUsers() ([]domain.User, error)
	DeleteUser(id int64) error
	UserExists(id int64) (bool, error)
	// EmailTaken reports whether another user (any user when excludeUserID is
	// zero) already holds the email.
	EmailTaken(email string, excludeUserID int64) (bool, error)

	// items
	CreateItem(it domain.Item) (domain.Item, error)
	UpdateItem(it domain.Item) error
	GetItem(id int64) (domain.Item, bool, error)
	ListItemsByOwner(ownerID int64, limit, offset int) ([]domain.Item, error)
	// SearchItems matches available items whose name or description contains
	// text, case-insensitively.
	SearchItems(text string, limit, offset int) ([]domain.Item, error)
	ListItemsByRequest(requestID int64) ([]domain.Item, error)
	DeleteItemsByOwner(ownerID int64) error

	// bookings
	CreateBooking(b domain.Booking) (domain.Booking, error)
	GetBooking(id int64) (domain.Booking, bool, error)
	// DecideBooking moves a WAITING booking to status and reports whether the
	// transition applied. A booking that is no longer WAITING is left alone.
	DecideBooking(id int64, status domain.BookingStatus) (bool, error)
	ListBookingsByBooker(bookerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]domain.Booking, error)
	ListBookingsByOwner(ownerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]domain.Booking, error)
	// LastBookingForItem returns the latest APPROVED booking started before now.
	LastBookingForItem(itemID int64, now time.Time) (domain.Booking, bool, error)
	// NextBookingForItem returns the earliest APPROVED booking starting after now.
	NextBookingForItem(itemID int64, now time.Time) (domain.Booking, bool, error)
	// HasFinishedBooking reports whether the booker has an APPROVED booking of
	// the item that ended before now.
	HasFinishedBooking(itemID, bookerID int64, now time.Time) (bool, error)

	// comments
	CreateComment(c domain.Comment) (domain.Comment, error)
	ListCommentsByItem(itemID int64) ([]domain.Comment, error)

	// item requests
	CreateRequest(r domain.ItemRequest) (domain.ItemRequest, error)
	GetRequest(id int64) (domain.ItemRequest, bool, error)
	ListRequestsByRequestor(userID int64) ([]domain.ItemRequest, error)
	ListRequestsByOthers(userID int64, limit, offset int) ([]domain.ItemRequest, error)
	RequestExists(id int64) (bool, error)
}
