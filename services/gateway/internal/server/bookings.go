package server

import (
	"net/http"
	"strings"

	"rentshare/pkg/validation"
	"rentshare/services/gateway/internal/rentclient"
)

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	switch r.Method {
	case http.MethodPost:
		if !s.allowWrite(w, r) {
			return
		}
		var req rentclient.CreateBookingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := validation.ID(req.ItemID); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := validation.BookingPeriod(req.Start, req.End); err != nil {
			writeValidationError(w, err)
			return
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.CreateBooking(userID, req)
		})
	case http.MethodGet:
		s.listBookings(w, r, userID, false)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleBookingSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/bookings/")
	userID, err := sharerID(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	if rest == "owner" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.listBookings(w, r, userID, true)
		return
	}
	if strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}

	bookingID, err := parsePositiveID(rest, "booking id")
	if err != nil {
		writeValidationError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.GetBooking(userID, bookingID)
		})
	case http.MethodPatch:
		if !s.allowWrite(w, r) {
			return
		}
		approved, err := approvedParam(r)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.DecideBooking(userID, bookingID, approved)
		})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request, userID int64, owner bool) {
	state := r.URL.Query().Get("state")
	if strings.TrimSpace(state) == "" {
		state = "ALL"
	}
	if err := validation.State(state); err != nil {
		writeValidationError(w, err)
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	if err := validation.Page(from, size); err != nil {
		writeValidationError(w, err)
		return
	}
	s.forwardCall(w, r, func() (rentclient.Response, error) {
		if owner {
			return s.backend.ListOwnerBookings(userID, state, from, size)
		}
		return s.backend.ListBookings(userID, state, from, size)
	})
}

func approvedParam(r *http.Request) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("approved"))) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, validationErrorf("approved must be true or false")
	}
}
