package server

import (
	"net/http"
	"strings"
)

type createRequestRequest struct {
	Description string `json:"description"`
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req createRequestRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, r, err)
			return
		}
		request, err := s.app.CreateRequest(userID, req.Description)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, request)
	case http.MethodGet:
		details, err := s.app.ListOwnRequests(userID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newRequestViews(details))
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
		writeDomainError(w, r, err)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/requests/")
	if rest == "all" {
		from, size, err := pageParams(r)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		details, err := s.app.ListOtherRequests(userID, from, size)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newRequestViews(details))
		return
	}
	if strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}

	requestID, err := parseID(rest, "request id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	details, err := s.app.GetRequest(requestID, userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRequestView(details))
}
