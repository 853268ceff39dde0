package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"rentshare/pkg/domain"
)

// MemoryStore keeps all records in-process. It backs the app and handler
// tests; references are stored by id and resolved on read, mirroring how the
// GORM store preloads them.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]domain.User
	items    map[int64]itemRec
	bookings map[int64]bookingRec
	comments map[int64]commentRec
	requests map[int64]requestRec
}

type itemRec struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   int64
}

type bookingRec struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   domain.BookingStatus
}

type commentRec struct {
	ID       int64
	Text     string
	ItemID   int64
	AuthorID int64
	Created  time.Time
}

type requestRec struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]domain.User),
		items:    make(map[int64]itemRec),
		bookings: make(map[int64]bookingRec),
		comments: make(map[int64]commentRec),
		requests: make(map[int64]requestRec),
	}
}

func (m *MemoryStore) newID() int64 {
	m.nextID++
	return m.nextID
}

// users

func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.newID()
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) UpdateUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *MemoryStore) GetUser(id int64) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) DeleteUser(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *MemoryStore) UserExists(id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *MemoryStore) EmailTaken(email string, excludeUserID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

// items

func (m *MemoryStore) CreateItem(it domain.Item) (domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it.ID = m.newID()
	m.items[it.ID] = itemToRec(it)
	return m.resolveItem(m.items[it.ID]), nil
}

func (m *MemoryStore) UpdateItem(it domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.ID] = itemToRec(it)
	return nil
}

func (m *MemoryStore) GetItem(id int64) (domain.Item, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.items[id]
	if !ok {
		return domain.Item{}, false, nil
	}
	return m.resolveItem(rec), true, nil
}

func (m *MemoryStore) ListItemsByOwner(ownerID int64, limit, offset int) ([]domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.selectItems(func(r itemRec) bool { return r.OwnerID == ownerID })
	return m.resolveItems(paginate(recs, limit, offset)), nil
}

func (m *MemoryStore) SearchItems(text string, limit, offset int) ([]domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(text)
	recs := m.selectItems(func(r itemRec) bool {
		return r.Available &&
			(strings.Contains(strings.ToLower(r.Name), needle) ||
				strings.Contains(strings.ToLower(r.Description), needle))
	})
	return m.resolveItems(paginate(recs, limit, offset)), nil
}

func (m *MemoryStore) ListItemsByRequest(requestID int64) ([]domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.selectItems(func(r itemRec) bool { return r.RequestID == requestID })
	return m.resolveItems(recs), nil
}

func (m *MemoryStore) DeleteItemsByOwner(ownerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rec := range m.items {
		if rec.OwnerID == ownerID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *MemoryStore) selectItems(keep func(itemRec) bool) []itemRec {
	recs := make([]itemRec, 0)
	for _, rec := range m.items {
		if keep(rec) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs
}

// bookings

func (m *MemoryStore) CreateBooking(b domain.Booking) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.newID()
	m.bookings[b.ID] = bookingToRec(b)
	return m.resolveBooking(m.bookings[b.ID]), nil
}

func (m *MemoryStore) GetBooking(id int64) (domain.Booking, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, false, nil
	}
	return m.resolveBooking(rec), true, nil
}

func (m *MemoryStore) DecideBooking(id int64, status domain.BookingStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.bookings[id]
	if !ok || rec.Status != domain.StatusWaiting {
		return false, nil
	}
	rec.Status = status
	m.bookings[id] = rec
	return true, nil
}

func (m *MemoryStore) ListBookingsByBooker(bookerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.selectBookings(filter, now, func(r bookingRec) bool { return r.BookerID == bookerID })
	return m.resolveBookings(paginate(recs, limit, offset)), nil
}

func (m *MemoryStore) ListBookingsByOwner(ownerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.selectBookings(filter, now, func(r bookingRec) bool {
		item, ok := m.items[r.ItemID]
		return ok && item.OwnerID == ownerID
	})
	return m.resolveBookings(paginate(recs, limit, offset)), nil
}

func (m *MemoryStore) selectBookings(filter domain.StateFilter, now time.Time, keep func(bookingRec) bool) []bookingRec {
	recs := make([]bookingRec, 0)
	for _, rec := range m.bookings {
		if !keep(rec) {
			continue
		}
		switch filter {
		case domain.FilterCurrent:
			if rec.Start.After(now) || rec.End.Before(now) {
				continue
			}
		case domain.FilterPast:
			if !rec.End.Before(now) {
				continue
			}
		case domain.FilterFuture:
			if !rec.Start.After(now) {
				continue
			}
		case domain.FilterWaiting, domain.FilterRejected:
			if string(rec.Status) != string(filter) {
				continue
			}
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Start.After(recs[j].Start) })
	return recs
}

func (m *MemoryStore) LastBookingForItem(itemID int64, now time.Time) (domain.Booking, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *bookingRec
	for _, rec := range m.bookings {
		rec := rec
		if rec.ItemID != itemID || rec.Status != domain.StatusApproved || !rec.Start.Before(now) {
			continue
		}
		if best == nil || rec.Start.After(best.Start) {
			best = &rec
		}
	}
	if best == nil {
		return domain.Booking{}, false, nil
	}
	return m.resolveBooking(*best), true, nil
}

func (m *MemoryStore) NextBookingForItem(itemID int64, now time.Time) (domain.Booking, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *bookingRec
	for _, rec := range m.bookings {
		rec := rec
		if rec.ItemID != itemID || rec.Status != domain.StatusApproved || !rec.Start.After(now) {
			continue
		}
		if best == nil || rec.Start.Before(best.Start) {
			best = &rec
		}
	}
	if best == nil {
		return domain.Booking{}, false, nil
	}
	return m.resolveBooking(*best), true, nil
}

func (m *MemoryStore) HasFinishedBooking(itemID, bookerID int64, now time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.bookings {
		if rec.ItemID == itemID && rec.BookerID == bookerID &&
			rec.Status == domain.StatusApproved && rec.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

// comments

func (m *MemoryStore) CreateComment(c domain.Comment) (domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.newID()
	m.comments[c.ID] = commentRec{
		ID:       c.ID,
		Text:     c.Text,
		ItemID:   c.ItemID,
		AuthorID: c.Author.ID,
		Created:  c.Created,
	}
	return m.resolveComment(m.comments[c.ID]), nil
}

func (m *MemoryStore) ListCommentsByItem(itemID int64) ([]domain.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := make([]commentRec, 0)
	for _, rec := range m.comments {
		if rec.ItemID == itemID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	res := make([]domain.Comment, 0, len(recs))
	for _, rec := range recs {
		res = append(res, m.resolveComment(rec))
	}
	return res, nil
}

// item requests

func (m *MemoryStore) CreateRequest(r domain.ItemRequest) (domain.ItemRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.newID()
	m.requests[r.ID] = requestRec{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.Requestor.ID,
		Created:     r.Created,
	}
	return m.resolveRequest(m.requests[r.ID]), nil
}

func (m *MemoryStore) GetRequest(id int64) (domain.ItemRequest, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.requests[id]
	if !ok {
		return domain.ItemRequest{}, false, nil
	}
	return m.resolveRequest(rec), true, nil
}

func (m *MemoryStore) ListRequestsByRequestor(userID int64) ([]domain.ItemRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.selectRequests(func(r requestRec) bool { return r.RequestorID == userID })
	return m.resolveRequests(recs), nil
}

func (m *MemoryStore) ListRequestsByOthers(userID int64, limit, offset int) ([]domain.ItemRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.selectRequests(func(r requestRec) bool { return r.RequestorID != userID })
	return m.resolveRequests(paginate(recs, limit, offset)), nil
}

func (m *MemoryStore) RequestExists(id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.requests[id]
	return ok, nil
}

func (m *MemoryStore) selectRequests(keep func(requestRec) bool) []requestRec {
	recs := make([]requestRec, 0)
	for _, rec := range m.requests {
		if keep(rec) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Created.After(recs[j].Created) })
	return recs
}

// resolution helpers

func itemToRec(it domain.Item) itemRec {
	return itemRec{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.Owner.ID,
		RequestID:   it.RequestID,
	}
}

func bookingToRec(b domain.Booking) bookingRec {
	return bookingRec{
		ID:       b.ID,
		Start:    b.Start,
		End:      b.End,
		ItemID:   b.Item.ID,
		BookerID: b.Booker.ID,
		Status:   b.Status,
	}
}

func (m *MemoryStore) resolveItem(rec itemRec) domain.Item {
	return domain.Item{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Available:   rec.Available,
		Owner:       m.users[rec.OwnerID],
		RequestID:   rec.RequestID,
	}
}

func (m *MemoryStore) resolveItems(recs []itemRec) []domain.Item {
	res := make([]domain.Item, 0, len(recs))
	for _, rec := range recs {
		res = append(res, m.resolveItem(rec))
	}
	return res
}

func (m *MemoryStore) resolveBooking(rec bookingRec) domain.Booking {
	return domain.Booking{
		ID:     rec.ID,
		Start:  rec.Start,
		End:    rec.End,
		Item:   m.resolveItem(m.items[rec.ItemID]),
		Booker: m.users[rec.BookerID],
		Status: rec.Status,
	}
}

func (m *MemoryStore) resolveBookings(recs []bookingRec) []domain.Booking {
	res := make([]domain.Booking, 0, len(recs))
	for _, rec := range recs {
		res = append(res, m.resolveBooking(rec))
	}
	return res
}

func (m *MemoryStore) resolveComment(rec commentRec) domain.Comment {
	return domain.Comment{
		ID:      rec.ID,
		Text:    rec.Text,
		ItemID:  rec.ItemID,
		Author:  m.users[rec.AuthorID],
		Created: rec.Created,
	}
}

func (m *MemoryStore) resolveRequest(rec requestRec) domain.ItemRequest {
	return domain.ItemRequest{
		ID:          rec.ID,
		Description: rec.Description,
		Requestor:   m.users[rec.RequestorID],
		Created:     rec.Created,
	}
}

func (m *MemoryStore) resolveRequests(recs []requestRec) []domain.ItemRequest {
	res := make([]domain.ItemRequest, 0, len(recs))
	for _, rec := range recs {
		res = append(res, m.resolveRequest(rec))
	}
	return res
}

func paginate[T any](recs []T, limit, offset int) []T {
	if offset >= len(recs) {
		return nil
	}
	recs = recs[offset:]
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}
	return recs
}
