package server

import (
	"time"

	"rentshare/pkg/domain"
	"rentshare/services/server/internal/app"
)

// Viewer-keyed projections. There is one domain entity per concept; what a
// caller sees is decided here, not by parallel entity types.

// bookingRef is the compact booking summary embedded in owner item views.
type bookingRef struct {
	ID       int64                `json:"id"`
	Start    time.Time            `json:"start"`
	End      time.Time            `json:"end"`
	ItemID   int64                `json:"itemId"`
	BookerID int64                `json:"bookerId"`
	Status   domain.BookingStatus `json:"status"`
}

// commentView exposes the author by display name only.
type commentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// itemView is the full item projection. LastBooking and NextBooking stay null
// for viewers other than the owner.
type itemView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	Owner       domain.User   `json:"owner"`
	RequestID   int64         `json:"requestId"`
	LastBooking *bookingRef   `json:"lastBooking"`
	NextBooking *bookingRef   `json:"nextBooking"`
	Comments    []commentView `json:"comments"`
}

// itemRef is the compact item projection embedded in request views.
type itemRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId"`
}

// requestView is an item request together with the items answering it.
type requestView struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	Requestor   domain.User `json:"requestor"`
	Created     time.Time   `json:"created"`
	Items       []itemRef   `json:"items"`
}

func newBookingRef(b domain.Booking) *bookingRef {
	return &bookingRef{
		ID:       b.ID,
		Start:    b.Start,
		End:      b.End,
		ItemID:   b.Item.ID,
		BookerID: b.Booker.ID,
		Status:   b.Status,
	}
}

func newCommentView(c domain.Comment) commentView {
	return commentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.Author.Name,
		Created:    c.Created,
	}
}

func newItemView(d app.ItemDetails) itemView {
	view := itemView{
		ID:          d.Item.ID,
		Name:        d.Item.Name,
		Description: d.Item.Description,
		Available:   d.Item.Available,
		Owner:       d.Item.Owner,
		RequestID:   d.Item.RequestID,
		Comments:    make([]commentView, 0, len(d.Comments)),
	}
	if d.LastBooking != nil {
		view.LastBooking = newBookingRef(*d.LastBooking)
	}
	if d.NextBooking != nil {
		view.NextBooking = newBookingRef(*d.NextBooking)
	}
	for _, c := range d.Comments {
		view.Comments = append(view.Comments, newCommentView(c))
	}
	return view
}

func newItemViews(details []app.ItemDetails) []itemView {
	views := make([]itemView, 0, len(details))
	for _, d := range details {
		views = append(views, newItemView(d))
	}
	return views
}

func newItemRef(it domain.Item) itemRef {
	return itemRef{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func newRequestView(d app.RequestDetails) requestView {
	view := requestView{
		ID:          d.Request.ID,
		Description: d.Request.Description,
		Requestor:   d.Request.Requestor,
		Created:     d.Request.Created,
		Items:       make([]itemRef, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		view.Items = append(view.Items, newItemRef(it))
	}
	return view
}

func newRequestViews(details []app.RequestDetails) []requestView {
	views := make([]requestView, 0, len(details))
	for _, d := range details {
		views = append(views, newRequestView(d))
	}
	return views
}
