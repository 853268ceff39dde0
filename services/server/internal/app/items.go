package app

import (
	"fmt"
	"log/slog"
	"strings"

	"rentshare/pkg/domain"
	"rentshare/pkg/validation"
)

// ItemPatch carries the fields of a partial item update. Nil fields are left
// unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemDetails pairs an item with its viewer-dependent enrichment. LastBooking
// and NextBooking are populated only when the viewer owns the item.
type ItemDetails struct {
	Item        domain.Item
	LastBooking *domain.Booking
	NextBooking *domain.Booking
	Comments    []domain.Comment
}

// CreateItem lists a new item owned by userID, optionally answering a
// request.
func (a *App) CreateItem(userID int64, name, description string, available *bool, requestID int64) (domain.Item, error) {
	if err := validation.NotBlank("name", name); err != nil {
		return domain.Item{}, err
	}
	if err := validation.NotBlank("description", description); err != nil {
		return domain.Item{}, err
	}
	if available == nil {
		return domain.Item{}, domain.Validationf("available must be provided")
	}
	owner, ok, err := a.store.GetUser(userID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return domain.Item{}, domain.NotFoundf("user with id %d not found", userID)
	}
	if requestID != 0 {
		exists, err := a.store.RequestExists(requestID)
		if err != nil {
			return domain.Item{}, fmt.Errorf("check request: %w", err)
		}
		if !exists {
			return domain.Item{}, domain.NotFoundf("request with id %d not found", requestID)
		}
	}
	item, err := a.store.CreateItem(domain.Item{
		Name:        name,
		Description: description,
		Available:   *available,
		Owner:       owner,
		RequestID:   requestID,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("create item: %w", err)
	}
	slog.Info("item created", "item_id", item.ID, "owner_id", userID)
	return item, nil
}

// UpdateItem applies the non-nil patch fields to an item owned by userID.
func (a *App) UpdateItem(itemID, userID int64, patch ItemPatch) (domain.Item, error) {
	if (patch.Name != nil && strings.TrimSpace(*patch.Name) == "") ||
		(patch.Description != nil && strings.TrimSpace(*patch.Description) == "") {
		return domain.Item{}, domain.Validationf("item name and description must not be blank")
	}
	ok, err := a.store.UserExists(userID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return domain.Item{}, domain.NotFoundf("user with id %d not found", userID)
	}
	if itemID == 0 {
		return domain.Item{}, domain.Validationf("item is not registered")
	}
	item, ok, err := a.store.GetItem(itemID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	if !ok {
		return domain.Item{}, domain.NotFoundf("item with id %d not found", itemID)
	}
	if item.Owner.ID != userID {
		return domain.Item{}, domain.Forbiddenf("item with id %d does not belong to user with id %d", itemID, userID)
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	if err := a.store.UpdateItem(item); err != nil {
		return domain.Item{}, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// GetItem returns an item with comments for everyone and booking summaries
// for the owner only.
func (a *App) GetItem(itemID, userID int64) (ItemDetails, error) {
	ok, err := a.store.UserExists(userID)
	if err != nil {
		return ItemDetails{}, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return ItemDetails{}, domain.NotFoundf("user with id %d not found", userID)
	}
	item, ok, err := a.store.GetItem(itemID)
	if err != nil {
		return ItemDetails{}, fmt.Errorf("get item: %w", err)
	}
	if !ok {
		return ItemDetails{}, domain.NotFoundf("item with id %d not found", itemID)
	}
	details := ItemDetails{Item: item}
	if item.Owner.ID == userID {
		if err := a.attachBookings(&details); err != nil {
			return ItemDetails{}, err
		}
	}
	if err := a.attachComments(&details); err != nil {
		return ItemDetails{}, err
	}
	return details, nil
}

// ListOwnerItems returns the items owned by userID, enriched like an owner
// view.
func (a *App) ListOwnerItems(userID int64, from, size int) ([]ItemDetails, error) {
	if err := validation.Page(from, size); err != nil {
		return nil, err
	}
	ok, err := a.store.UserExists(userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return nil, domain.NotFoundf("user with id %d not found", userID)
	}
	items, err := a.store.ListItemsByOwner(userID, size, validation.PageOffset(from, size))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	res := make([]ItemDetails, 0, len(items))
	for _, item := range items {
		details := ItemDetails{Item: item}
		if err := a.attachBookings(&details); err != nil {
			return nil, err
		}
		if err := a.attachComments(&details); err != nil {
			return nil, err
		}
		res = append(res, details)
	}
	return res, nil
}

// SearchItems matches available items by name or description. Blank text
// returns an empty list.
func (a *App) SearchItems(text string, userID int64, from, size int) ([]domain.Item, error) {
	if err := validation.Page(from, size); err != nil {
		return nil, err
	}
	ok, err := a.store.UserExists(userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return nil, domain.NotFoundf("user with id %d not found", userID)
	}
	if strings.TrimSpace(text) == "" {
		return []domain.Item{}, nil
	}
	items, err := a.store.SearchItems(text, size, validation.PageOffset(from, size))
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// AddComment records a comment by a user who has completed an approved
// booking of the item. The creation timestamp is server-assigned.
func (a *App) AddComment(itemID, userID int64, text string) (domain.Comment, error) {
	if err := validation.NotBlank("text", text); err != nil {
		return domain.Comment{}, err
	}
	exists, err := a.store.UserExists(userID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("check user: %w", err)
	}
	_, itemOK, err := a.store.GetItem(itemID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("get item: %w", err)
	}
	if !itemOK {
		return domain.Comment{}, domain.NotFoundf("item with id %d not found", itemID)
	}
	if !exists {
		return domain.Comment{}, domain.NotFoundf("user with id %d not found", userID)
	}
	author, _, err := a.store.GetUser(userID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("get user: %w", err)
	}
	rented, err := a.store.HasFinishedBooking(itemID, userID, a.now())
	if err != nil {
		return domain.Comment{}, fmt.Errorf("check bookings: %w", err)
	}
	if !rented {
		return domain.Comment{}, domain.Validationf("user with id %d has never rented item with id %d", userID, itemID)
	}
	comment, err := a.store.CreateComment(domain.Comment{
		Text:    text,
		ItemID:  itemID,
		Author:  author,
		Created: a.now(),
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	slog.Info("comment added", "item_id", itemID, "author_id", userID)
	return comment, nil
}

func (a *App) attachBookings(details *ItemDetails) error {
	now := a.now()
	if last, ok, err := a.store.LastBookingForItem(details.Item.ID, now); err != nil {
		return fmt.Errorf("last booking: %w", err)
	} else if ok {
		details.LastBooking = &last
	}
	if next, ok, err := a.store.NextBookingForItem(details.Item.ID, now); err != nil {
		return fmt.Errorf("next booking: %w", err)
	} else if ok {
		details.NextBooking = &next
	}
	return nil
}

func (a *App) attachComments(details *ItemDetails) error {
	comments, err := a.store.ListCommentsByItem(details.Item.ID)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}
	details.Comments = comments
	return nil
}
