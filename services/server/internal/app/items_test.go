package app

import (
	"testing"
	"time"

	"rentshare/pkg/domain"
)

func TestCreateItemValidation(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	available := true

	_, err := a.CreateItem(ann.ID, "", "tool", &available, 0)
	wantKind(t, err, domain.KindValidation)

	_, err = a.CreateItem(ann.ID, "drill", "", &available, 0)
	wantKind(t, err, domain.KindValidation)

	_, err = a.CreateItem(ann.ID, "drill", "tool", nil, 0)
	wantKind(t, err, domain.KindValidation)

	_, err = a.CreateItem(99, "drill", "tool", &available, 0)
	wantKind(t, err, domain.KindNotFound)

	// an unknown request id cannot be answered
	_, err = a.CreateItem(ann.ID, "drill", "tool", &available, 77)
	wantKind(t, err, domain.KindNotFound)
}

func TestCreateItemAnswersRequest(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")

	req, err := a.CreateRequest(bob.ID, "need a drill")
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	available := true
	item, err := a.CreateItem(ann.ID, "drill", "tool", &available, req.ID)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.RequestID != req.ID {
		t.Fatalf("item requestID = %d, want %d", item.RequestID, req.ID)
	}
}

func TestUpdateItemOwnership(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)

	name := "hammer drill"
	_, err := a.UpdateItem(item.ID, bob.ID, ItemPatch{Name: &name})
	wantKind(t, err, domain.KindForbidden)

	blank := "  "
	_, err = a.UpdateItem(item.ID, ann.ID, ItemPatch{Name: &blank})
	wantKind(t, err, domain.KindValidation)

	available := false
	updated, err := a.UpdateItem(item.ID, ann.ID, ItemPatch{Name: &name, Available: &available})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Name != "hammer drill" || updated.Available || updated.Description != "tool" {
		t.Fatalf("partial update wrong, got %+v", updated)
	}
}

func TestGetItemEnrichmentByViewer(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)

	past := mustBooking(t, a, bob.ID, item.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	future := mustBooking(t, a, bob.ID, item.ID, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
	if _, err := a.DecideBooking(past.ID, true, ann.ID); err != nil {
		t.Fatalf("approve past: %v", err)
	}
	if _, err := a.DecideBooking(future.ID, true, ann.ID); err != nil {
		t.Fatalf("approve future: %v", err)
	}

	ownerView, err := a.GetItem(item.ID, ann.ID)
	if err != nil {
		t.Fatalf("get item as owner: %v", err)
	}
	if ownerView.LastBooking == nil || ownerView.LastBooking.ID != past.ID {
		t.Fatalf("owner view lastBooking = %+v, want booking %d", ownerView.LastBooking, past.ID)
	}
	if ownerView.NextBooking == nil || ownerView.NextBooking.ID != future.ID {
		t.Fatalf("owner view nextBooking = %+v, want booking %d", ownerView.NextBooking, future.ID)
	}

	bookerView, err := a.GetItem(item.ID, bob.ID)
	if err != nil {
		t.Fatalf("get item as booker: %v", err)
	}
	if bookerView.LastBooking != nil || bookerView.NextBooking != nil {
		t.Fatalf("non-owner must not see booking summaries, got %+v", bookerView)
	}
}

func TestSearchItemsBlankText(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	mustItem(t, a, ann.ID, "drill", "tool", true)

	items, err := a.SearchItems("   ", ann.ID, 0, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("blank text must return empty list, got %d", len(items))
	}

	items, err = a.SearchItems("DRILL", ann.ID, 0, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("case-insensitive search failed, got %d items", len(items))
	}
}

func TestAddCommentRequiresFinishedBooking(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	carol := mustUser(t, a, "carol", "carol@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)

	booking := mustBooking(t, a, bob.ID, item.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	if _, err := a.DecideBooking(booking.ID, true, ann.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	comment, err := a.AddComment(item.ID, bob.ID, "works great")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comment.Author.ID != bob.ID || !comment.Created.Equal(testNow) {
		t.Fatalf("comment = %+v", comment)
	}

	// carol never rented the item
	_, err = a.AddComment(item.ID, carol.ID, "nice")
	wantKind(t, err, domain.KindValidation)

	_, err = a.AddComment(item.ID, bob.ID, "  ")
	wantKind(t, err, domain.KindValidation)

	// missing item wins over missing user
	_, err = a.AddComment(999, 998, "hello")
	wantKind(t, err, domain.KindNotFound)
}

func TestListOwnerItemsEnriched(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)
	mustItem(t, a, ann.ID, "saw", "tool", true)

	booking := mustBooking(t, a, bob.ID, item.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	if _, err := a.DecideBooking(booking.ID, true, ann.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	details, err := a.ListOwnerItems(ann.ID, 0, 20)
	if err != nil {
		t.Fatalf("list owner items: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("owner has %d items, want 2", len(details))
	}
	if details[0].Item.ID != item.ID || details[0].LastBooking == nil {
		t.Fatalf("first item must carry its last booking, got %+v", details[0])
	}

	_, err = a.ListOwnerItems(ann.ID, -1, 20)
	wantKind(t, err, domain.KindValidation)
}
