package server

import (
	"net/http"
	"strings"

	"rentshare/pkg/validation"
	"rentshare/services/gateway/internal/rentclient"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		if !s.allowWrite(w, r) {
			return
		}
		var req rentclient.CreateUserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := validation.NotBlank("name", req.Name); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := validation.Email(req.Email); err != nil {
			writeValidationError(w, err)
			return
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.CreateUser(req)
		})
	case http.MethodGet:
		s.forwardCall(w, r, s.backend.ListUsers)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/users/")
	if rest == "" || strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	id, err := parsePositiveID(rest, "user id")
	if err != nil {
		writeValidationError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.GetUser(id)
		})
	case http.MethodPatch:
		if !s.allowWrite(w, r) {
			return
		}
		var req rentclient.UpdateUserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		if req.Name != nil {
			if err := validation.NotBlank("name", *req.Name); err != nil {
				writeValidationError(w, err)
				return
			}
		}
		if req.Email != nil {
			if err := validation.Email(*req.Email); err != nil {
				writeValidationError(w, err)
				return
			}
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.UpdateUser(id, req)
		})
	case http.MethodDelete:
		if !s.allowWrite(w, r) {
			return
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.DeleteUser(id)
		})
	default:
		methodNotAllowed(w)
	}
}
