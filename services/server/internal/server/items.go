package server

import (
	"net/http"
	"strings"

	"rentshare/services/server/internal/app"
)

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"requestId"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type createCommentRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req createItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, r, err)
			return
		}
		item, err := s.app.CreateItem(userID, req.Name, req.Description, req.Available, req.RequestID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	case http.MethodGet:
		from, size, err := pageParams(r)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		details, err := s.app.ListOwnerItems(userID, from, size)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newItemViews(details))
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
	itemID, err := parseID(head, "item id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	userID, err := sharerID(r)
	if err != nil {
		writeDomainError(w, r, err)
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
		details, err := s.app.GetItem(itemID, userID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newItemView(details))
	case http.MethodPatch:
		var req updateItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, r, err)
			return
		}
		patch := app.ItemPatch{Name: req.Name, Description: req.Description, Available: req.Available}
		item, err := s.app.UpdateItem(itemID, userID, patch)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
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
		writeDomainError(w, r, err)
		return
	}
	from, size, err := pageParams(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	items, err := s.app.SearchItems(r.URL.Query().Get("text"), userID, from, size)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleItemComment(w http.ResponseWriter, r *http.Request, itemID, userID int64) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	comment, err := s.app.AddComment(itemID, userID, req.Text)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCommentView(comment))
}
