package server

import (
	"net/http"
	"strings"

	"rentshare/pkg/validation"
	"rentshare/services/gateway/internal/rentclient"
)

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
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
		var req rentclient.CreateItemRequestRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := validation.NotBlank("description", req.Description); err != nil {
			writeValidationError(w, err)
			return
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.CreateRequest(userID, req)
		})
	case http.MethodGet:
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.ListOwnRequests(userID)
		})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleRequestSubpath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, err := sharerID(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/requests/")
	if rest == "all" {
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
			return s.backend.ListOtherRequests(userID, from, size)
		})
		return
	}
	if strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}

	requestID, err := parsePositiveID(rest, "request id")
	if err != nil {
		writeValidationError(w, err)
		return
	}
	s.forwardCall(w, r, func() (rentclient.Response, error) {
		return s.backend.GetRequest(userID, requestID)
	})
}
