package app

import (
	"fmt"
	"log/slog"
	"time"

	"rentshare/pkg/domain"
	"rentshare/pkg/validation"
)

// CreateBooking registers a WAITING booking of an item by userID.
func (a *App) CreateBooking(userID, itemID int64, start, end time.Time) (domain.Booking, error) {
	if err := validation.BookingPeriod(start, end); err != nil {
		return domain.Booking{}, err
	}
	item, ok, err := a.store.GetItem(itemID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("get item: %w", err)
	}
	if !ok {
		return domain.Booking{}, domain.NotFoundf("item with id %d not found", itemID)
	}
	if !item.Available {
		return domain.Booking{}, domain.Validationf("item with id %d is not available for booking", itemID)
	}
	if item.Owner.ID == userID {
		return domain.Booking{}, domain.Forbiddenf("the owner of item with id %d cannot book it", itemID)
	}
	booker, ok, err := a.store.GetUser(userID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return domain.Booking{}, domain.NotFoundf("user with id %d not found", userID)
	}
	booking, err := a.store.CreateBooking(domain.Booking{
		Start:  start,
		End:    end,
		Item:   item,
		Booker: booker,
		Status: domain.StatusWaiting,
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	slog.Info("booking created", "booking_id", booking.ID, "item_id", itemID, "booker_id", userID)
	return booking, nil
}

// DecideBooking approves or rejects a WAITING booking. Only the item owner
// may decide, and only once.
func (a *App) DecideBooking(bookingID int64, approve bool, userID int64) (domain.Booking, error) {
	booking, ok, err := a.store.GetBooking(bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	if !ok {
		return domain.Booking{}, domain.NotFoundf("booking with id %d not found", bookingID)
	}
	exists, err := a.store.UserExists(userID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return domain.Booking{}, domain.NotFoundf("user with id %d not found", userID)
	}
	if booking.Item.Owner.ID != userID {
		return domain.Booking{}, domain.Forbiddenf("item with id %d does not belong to user with id %d",
			booking.Item.ID, userID)
	}
	status := domain.StatusRejected
	if approve {
		status = domain.StatusApproved
	}
	applied, err := a.store.DecideBooking(bookingID, status)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("decide booking: %w", err)
	}
	if !applied {
		return domain.Booking{}, domain.Validationf("booking with id %d has already been processed", bookingID)
	}
	booking.Status = status
	slog.Info("booking decided", "booking_id", bookingID, "status", status)
	return booking, nil
}

// GetBooking returns a booking to its booker or the item owner.
func (a *App) GetBooking(bookingID, userID int64) (domain.Booking, error) {
	exists, err := a.store.UserExists(userID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return domain.Booking{}, domain.NotFoundf("user with id %d not found", userID)
	}
	booking, ok, err := a.store.GetBooking(bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	if !ok {
		return domain.Booking{}, domain.NotFoundf("booking with id %d not found", bookingID)
	}
	if booking.Booker.ID != userID && booking.Item.Owner.ID != userID {
		return domain.Booking{}, domain.Forbiddenf("user with id %d is neither the booker nor the item owner", userID)
	}
	return booking, nil
}

// ListBookings returns the bookings made by userID, filtered by state and
// ordered by start time descending.
func (a *App) ListBookings(userID int64, state string, from, size int) ([]domain.Booking, error) {
	filter, err := a.listArgs(userID, state, from, size)
	if err != nil {
		return nil, err
	}
	bookings, err := a.store.ListBookingsByBooker(userID, filter, a.now(), size, validation.PageOffset(from, size))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListOwnerBookings returns the bookings of items owned by userID, filtered
// by state and ordered by start time descending.
func (a *App) ListOwnerBookings(userID int64, state string, from, size int) ([]domain.Booking, error) {
	filter, err := a.listArgs(userID, state, from, size)
	if err != nil {
		return nil, err
	}
	bookings, err := a.store.ListBookingsByOwner(userID, filter, a.now(), size, validation.PageOffset(from, size))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (a *App) listArgs(userID int64, state string, from, size int) (domain.StateFilter, error) {
	exists, err := a.store.UserExists(userID)
	if err != nil {
		return "", fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return "", domain.NotFoundf("user with id %d not found", userID)
	}
	if err := validation.Page(from, size); err != nil {
		return "", err
	}
	filter, ok := domain.ParseStateFilter(state)
	if !ok {
		return "", domain.ErrUnsupportedState
	}
	return filter, nil
}
