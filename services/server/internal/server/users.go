package server

import (
	"net/http"
	"strings"

	"rentshare/services/server/internal/app"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func toUserPatch(req updateUserRequest) app.UserPatch {
	return app.UserPatch{Name: req.Name, Email: req.Email}
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req createUserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, r, err)
			return
		}
		user, err := s.app.CreateUser(req.Name, req.Email)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	case http.MethodGet:
		users, err := s.app.ListUsers()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
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
	id, err := parseID(rest, "user id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := s.app.GetUser(id)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodPatch:
		var req updateUserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, r, err)
			return
		}
		user, err := s.app.UpdateUser(id, toUserPatch(req))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		if err := s.app.DeleteUser(id); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
