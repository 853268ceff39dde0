package server

import (
	"net/http"
	"strings"

	"rentshare/pkg/validation"
	"rentshare/services/gateway/internal/rentclient"
)

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
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
		var req rentclient.CreateItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := validation.NotBlank("name", req.Name); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := validation.NotBlank("description", req.Description); err != nil {
			writeValidationError(w, err)
			return
		}
		if req.Available == nil {
			writeValidationError(w, validationErrorf("available is required"))
			return
		}
		if req.RequestID != 0 {
			if err := validation.ID(req.RequestID); err != nil {
				writeValidationError(w, err)
				return
			}
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.CreateItem(userID, req)
		})
	case http.MethodGet:
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
			return s.backend.ListOwnerItems(userID, from, size)
		})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleItemSubpath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/items/")
	if rest == "search" {
		s.handleItemSearch(w, r)
		return
	}

	head, tail, hasTail := strings.Cut(rest, "/")
	itemID, err := parsePositiveID(head, "item id")
	if err != nil {
		writeValidationError(w, err)
		return
	}
	userID, err := sharerID(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	if hasTail {
		if tail != "comment" {
			http.NotFound(w, r)
			return
		}
		s.handleItemComment(w, r, itemID, userID)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.GetItem(userID, itemID)
		})
	case http.MethodPatch:
		if !s.allowWrite(w, r) {
			return
		}
		var req rentclient.UpdateItemRequest
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
		if req.Description != nil {
			if err := validation.NotBlank("description", *req.Description); err != nil {
				writeValidationError(w, err)
				return
			}
		}
		s.forwardCall(w, r, func() (rentclient.Response, error) {
			return s.backend.UpdateItem(userID, itemID, req)
		})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleItemSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, err := sharerID(r)
	if err != nil {
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
	text := r.URL.Query().Get("text")
	s.forwardCall(w, r, func() (rentclient.Response, error) {
		return s.backend.SearchItems(userID, text, from, size)
	})
}

func (s *Server) handleItemComment(w http.ResponseWriter, r *http.Request, itemID, userID int64) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowWrite(w, r) {
		return
	}
	var req rentclient.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := validation.NotBlank("text", req.Text); err != nil {
		writeValidationError(w, err)
		return
	}
	s.forwardCall(w, r, func() (rentclient.Response, error) {
		return s.backend.AddComment(userID, itemID, req)
	})
}
