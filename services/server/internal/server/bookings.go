package server

import (
	"net/http"
	"strings"
	"time"
)

type createBookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req createBookingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, r, err)
			return
		}
		booking, err := s.app.CreateBooking(userID, req.ItemID, req.Start, req.End)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, booking)
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
		writeDomainError(w, r, err)
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

	bookingID, err := parseID(rest, "booking id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		booking, err := s.app.GetBooking(bookingID, userID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	case http.MethodPatch:
		approve, err := approvedParam(r)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		booking, err := s.app.DecideBooking(bookingID, approve, userID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request, userID int64, owner bool) {
	state := r.URL.Query().Get("state")
	if strings.TrimSpace(state) == "" {
		state = "ALL"
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	var bookings any
	if owner {
		bookings, err = s.app.ListOwnerBookings(userID, state, from, size)
	} else {
		bookings, err = s.app.ListBookings(userID, state, from, size)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
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
