package app

import (
	"testing"
	"time"

	"rentshare/pkg/domain"
	"rentshare/pkg/store"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	a := New(Config{Store: st, Now: func() time.Time { return testNow }})
	return a, st
}

func mustUser(t *testing.T, a *App, name, email string) domain.User {
	t.Helper()
	u, err := a.CreateUser(name, email)
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func mustItem(t *testing.T, a *App, ownerID int64, name, description string, available bool) domain.Item {
	t.Helper()
	it, err := a.CreateItem(ownerID, name, description, &available, 0)
	if err != nil {
		t.Fatalf("create item %s: %v", name, err)
	}
	return it
}

func mustBooking(t *testing.T, a *App, bookerID, itemID int64, start, end time.Time) domain.Booking {
	t.Helper()
	b, err := a.CreateBooking(bookerID, itemID, start, end)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func wantKind(t *testing.T, err error, kind domain.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected domain error of kind %v, got nil", kind)
	}
	got, ok := domain.KindOf(err)
	if !ok || got != kind {
		t.Fatalf("error = %v, want kind %v", err, kind)
	}
}
