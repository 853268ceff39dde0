package app

import (
	"errors"
	"testing"
	"time"

	"rentshare/pkg/domain"
)

func TestCreateBookingRules(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)
	unavailable := mustItem(t, a, ann.ID, "saw", "tool", false)

	start := testNow.Add(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	b := mustBooking(t, a, bob.ID, item.ID, start, end)
	if b.Status != domain.StatusWaiting {
		t.Fatalf("new booking status = %s, want WAITING", b.Status)
	}
	if b.Item.ID != item.ID || b.Booker.ID != bob.ID {
		t.Fatalf("booking references wrong, got %+v", b)
	}

	_, err := a.CreateBooking(bob.ID, item.ID, end, start)
	wantKind(t, err, domain.KindValidation)

	_, err = a.CreateBooking(bob.ID, unavailable.ID, start, end)
	wantKind(t, err, domain.KindValidation)

	_, err = a.CreateBooking(ann.ID, item.ID, start, end)
	wantKind(t, err, domain.KindForbidden)

	_, err = a.CreateBooking(bob.ID, 999, start, end)
	wantKind(t, err, domain.KindNotFound)

	_, err = a.CreateBooking(999, item.ID, start, end)
	wantKind(t, err, domain.KindNotFound)
}

func TestDecideBookingOnce(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)
	b := mustBooking(t, a, bob.ID, item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	_, err := a.DecideBooking(b.ID, true, bob.ID)
	wantKind(t, err, domain.KindForbidden)

	decided, err := a.DecideBooking(b.ID, true, ann.ID)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != domain.StatusApproved {
		t.Fatalf("status = %s, want APPROVED", decided.Status)
	}

	_, err = a.DecideBooking(b.ID, false, ann.ID)
	wantKind(t, err, domain.KindValidation)

	got, err := a.GetBooking(b.ID, ann.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Fatalf("re-decision must not change status, got %s", got.Status)
	}
}

func TestGetBookingParticipantsOnly(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	carol := mustUser(t, a, "carol", "carol@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)
	b := mustBooking(t, a, bob.ID, item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	if _, err := a.GetBooking(b.ID, ann.ID); err != nil {
		t.Fatalf("owner must see the booking: %v", err)
	}
	if _, err := a.GetBooking(b.ID, bob.ID); err != nil {
		t.Fatalf("booker must see the booking: %v", err)
	}
	_, err := a.GetBooking(b.ID, carol.ID)
	wantKind(t, err, domain.KindForbidden)

	_, err = a.GetBooking(999, ann.ID)
	wantKind(t, err, domain.KindNotFound)
}

func TestListBookingsStateFilters(t *testing.T) {
	a, _ := newTestApp(t)
	ann := mustUser(t, a, "ann", "ann@example.com")
	bob := mustUser(t, a, "bob", "bob@example.com")
	item := mustItem(t, a, ann.ID, "drill", "tool", true)

	past := mustBooking(t, a, bob.ID, item.ID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	current := mustBooking(t, a, bob.ID, item.ID, testNow.Add(-time.Hour), testNow.Add(time.Hour))
	future := mustBooking(t, a, bob.ID, item.ID, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))
	if _, err := a.DecideBooking(past.ID, false, ann.ID); err != nil {
		t.Fatalf("reject past: %v", err)
	}

	all, err := a.ListBookings(bob.ID, "ALL", 0, 20)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 || all[0].ID != future.ID || all[2].ID != past.ID {
		t.Fatalf("ALL must be descending by start, got %+v", all)
	}

	waiting, err := a.ListBookings(bob.ID, "WAITING", 0, 20)
	if err != nil {
		t.Fatalf("list waiting: %v", err)
	}
	if len(waiting) != 2 {
		t.Fatalf("WAITING returned %d, want 2", len(waiting))
	}

	rejected, err := a.ListBookings(bob.ID, "REJECTED", 0, 20)
	if err != nil {
		t.Fatalf("list rejected: %v", err)
	}
	if len(rejected) != 1 || rejected[0].ID != past.ID {
		t.Fatalf("REJECTED wrong, got %+v", rejected)
	}

	cur, err := a.ListBookings(bob.ID, "CURRENT", 0, 20)
	if err != nil {
		t.Fatalf("list current: %v", err)
	}
	if len(cur) != 1 || cur[0].ID != current.ID {
		t.Fatalf("CURRENT wrong, got %+v", cur)
	}

	owner, err := a.ListOwnerBookings(ann.ID, "ALL", 0, 20)
	if err != nil {
		t.Fatalf("list owner: %v", err)
	}
	if len(owner) != 3 {
		t.Fatalf("owner ALL returned %d, want 3", len(owner))
	}

	// the booker owns no items, so the owner listing is empty
	none, err := a.ListOwnerBookings(bob.ID, "ALL", 0, 20)
	if err != nil {
		t.Fatalf("list owner: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("booker owner listing should be empty, got %d", len(none))
	}
}

func TestListBookingsUnknownState(t *testing.T) {
	a, _ := newTestApp(t)
	bob := mustUser(t, a, "bob", "bob@example.com")

	_, err := a.ListBookings(bob.ID, "SOMEDAY", 0, 20)
	if !errors.Is(err, domain.ErrUnsupportedState) {
		t.Fatalf("unknown state must map to the unsupported-state error, got %v", err)
	}

	_, err = a.ListBookings(999, "ALL", 0, 20)
	wantKind(t, err, domain.KindNotFound)

	_, err = a.ListBookings(bob.ID, "ALL", -1, 20)
	wantKind(t, err, domain.KindValidation)
}
