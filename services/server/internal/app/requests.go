package app

import (
	"fmt"
	"log/slog"

	"rentshare/pkg/domain"
	"rentshare/pkg/validation"
)

// RequestDetails pairs an item request with the items created in response to
// it, possibly none.
type RequestDetails struct {
	Request domain.ItemRequest
	Items   []domain.Item
}

// CreateRequest registers an item request with a server-assigned creation
// timestamp.
func (a *App) CreateRequest(userID int64, description string) (domain.ItemRequest, error) {
	if err := validation.NotBlank("description", description); err != nil {
		return domain.ItemRequest{}, err
	}
	requestor, ok, err := a.store.GetUser(userID)
	if err != nil {
		return domain.ItemRequest{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return domain.ItemRequest{}, domain.NotFoundf("user with id %d not found", userID)
	}
	request, err := a.store.CreateRequest(domain.ItemRequest{
		Description: description,
		Requestor:   requestor,
		Created:     a.now(),
	})
	if err != nil {
		return domain.ItemRequest{}, fmt.Errorf("create request: %w", err)
	}
	slog.Info("item request created", "request_id", request.ID, "requestor_id", userID)
	return request, nil
}

// ListOwnRequests returns the requests made by userID, newest first.
func (a *App) ListOwnRequests(userID int64) ([]RequestDetails, error) {
	exists, err := a.store.UserExists(userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, domain.NotFoundf("user with id %d not found", userID)
	}
	requests, err := a.store.ListRequestsByRequestor(userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return a.enrichRequests(requests)
}

// ListOtherRequests returns other users' requests, newest first, paginated.
func (a *App) ListOtherRequests(userID int64, from, size int) ([]RequestDetails, error) {
	exists, err := a.store.UserExists(userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, domain.NotFoundf("user with id %d not found", userID)
	}
	if err := validation.Page(from, size); err != nil {
		return nil, err
	}
	requests, err := a.store.ListRequestsByOthers(userID, size, validation.PageOffset(from, size))
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return a.enrichRequests(requests)
}

// GetRequest returns a single request with its answering items.
func (a *App) GetRequest(requestID, userID int64) (RequestDetails, error) {
	exists, err := a.store.UserExists(userID)
	if err != nil {
		return RequestDetails{}, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return RequestDetails{}, domain.NotFoundf("user with id %d not found", userID)
	}
	request, ok, err := a.store.GetRequest(requestID)
	if err != nil {
		return RequestDetails{}, fmt.Errorf("get request: %w", err)
	}
	if !ok {
		return RequestDetails{}, domain.NotFoundf("request with id %d not found", requestID)
	}
	items, err := a.store.ListItemsByRequest(requestID)
	if err != nil {
		return RequestDetails{}, fmt.Errorf("list items: %w", err)
	}
	return RequestDetails{Request: request, Items: items}, nil
}

func (a *App) enrichRequests(requests []domain.ItemRequest) ([]RequestDetails, error) {
	res := make([]RequestDetails, 0, len(requests))
	for _, request := range requests {
		items, err := a.store.ListItemsByRequest(request.ID)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		res = append(res, RequestDetails{Request: request, Items: items})
	}
	return res, nil
}
