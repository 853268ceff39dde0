package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"rentshare/pkg/store"
	"rentshare/services/server/internal/app"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	appCore := app.New(app.Config{
		Store: store.NewMemoryStore(),
		Now:   func() time.Time { return testNow },
	})
	srv := httptest.NewServer(New(Config{App: appCore}).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, userID int64, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != 0 {
		req.Header.Set(SharerHeader, strconv.FormatInt(userID, 10))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func createUser(t *testing.T, srv *httptest.Server, name, email string) int64 {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/users", 0, map[string]string{"name": name, "email": email})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user got %d: %s", resp.StatusCode, body)
	}
	var user struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return user.ID
}

func createItem(t *testing.T, srv *httptest.Server, ownerID int64, name, description string, available bool) int64 {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/items", ownerID, map[string]any{
		"name": name, "description": description, "available": available,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item got %d: %s", resp.StatusCode, body)
	}
	var item struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	return item.ID
}

func createBooking(t *testing.T, srv *httptest.Server, bookerID, itemID int64, start, end time.Time) int64 {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/bookings", bookerID, map[string]any{
		"itemId": itemID, "start": start, "end": end,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create booking got %d: %s", resp.StatusCode, body)
	}
	var booking struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	return booking.ID
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)

	annID := createUser(t, srv, "ann", "ann@example.com")

	resp, body := doJSON(t, srv, http.MethodPost, "/users", 0, map[string]string{
		"name": "imposter", "email": "ann@example.com",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email got %d: %s", resp.StatusCode, body)
	}
	var conflict struct {
		ActionError string `json:"actionError"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &conflict); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if conflict.ActionError == "" || conflict.Description == "" {
		t.Fatalf("conflict body missing fields: %s", body)
	}

	resp, body = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/users/%d", annID), 0, map[string]string{"name": "anna"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch user got %d: %s", resp.StatusCode, body)
	}
	var user struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Name != "anna" || user.Email != "ann@example.com" {
		t.Fatalf("patched user = %+v", user)
	}

	resp, _ = doJSON(t, srv, http.MethodGet, "/users", 0, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list users got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/users/%d", annID), 0, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete user got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/users/%d", annID), 0, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted user lookup got %d", resp.StatusCode)
	}
}

func TestItemsRequireSharerHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodPost, "/items", 0, map[string]any{
		"name": "drill", "description": "tool", "available": true,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing header got %d: %s", resp.StatusCode, body)
	}
}

func TestItemViewByOwnerAndStranger(t *testing.T) {
	srv := newTestServer(t)
	annID := createUser(t, srv, "ann", "ann@example.com")
	bobID := createUser(t, srv, "bob", "bob@example.com")
	itemID := createItem(t, srv, annID, "drill", "tool", true)

	bookingID := createBooking(t, srv, bobID, itemID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	resp, body := doJSON(t, srv, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=true", bookingID), annID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve got %d: %s", resp.StatusCode, body)
	}

	var view struct {
		LastBooking *struct {
			ID       int64 `json:"id"`
			BookerID int64 `json:"bookerId"`
		} `json:"lastBooking"`
		NextBooking *struct {
			ID int64 `json:"id"`
		} `json:"nextBooking"`
		Comments []any `json:"comments"`
	}

	resp, body = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/items/%d", itemID), annID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner view got %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode owner view: %v", err)
	}
	if view.LastBooking == nil || view.LastBooking.ID != bookingID || view.LastBooking.BookerID != bobID {
		t.Fatalf("owner view lastBooking = %+v: %s", view.LastBooking, body)
	}
	if view.Comments == nil {
		t.Fatalf("comments must be present (empty list), got null: %s", body)
	}

	resp, body = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/items/%d", itemID), bobID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stranger view got %d: %s", resp.StatusCode, body)
	}
	view.LastBooking = nil
	view.NextBooking = nil
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode stranger view: %v", err)
	}
	if view.LastBooking != nil || view.NextBooking != nil {
		t.Fatalf("non-owner must not see booking summaries: %s", body)
	}
}

func TestUpdateItemForbiddenForNonOwner(t *testing.T) {
	srv := newTestServer(t)
	annID := createUser(t, srv, "ann", "ann@example.com")
	bobID := createUser(t, srv, "bob", "bob@example.com")
	itemID := createItem(t, srv, annID, "drill", "tool", true)

	resp, body := doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/items/%d", itemID), bobID,
		map[string]string{"name": "mine now"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-owner patch got %d: %s", resp.StatusCode, body)
	}
}

func TestSearchItems(t *testing.T) {
	srv := newTestServer(t)
	annID := createUser(t, srv, "ann", "ann@example.com")
	createItem(t, srv, annID, "Cordless Drill", "compact", true)
	createItem(t, srv, annID, "saw", "sharp", true)

	resp, body := doJSON(t, srv, http.MethodGet, "/items/search?text=drill", annID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search got %d: %s", resp.StatusCode, body)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("search returned %d items, want 1: %s", len(items), body)
	}

	resp, body = doJSON(t, srv, http.MethodGet, "/items/search?text=", annID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("blank search got %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode blank search: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("blank search must return empty list: %s", body)
	}
}

func TestBookingDecisionFlow(t *testing.T) {
	srv := newTestServer(t)
	annID := createUser(t, srv, "ann", "ann@example.com")
	bobID := createUser(t, srv, "bob", "bob@example.com")
	itemID := createItem(t, srv, annID, "drill", "tool", true)
	bookingID := createBooking(t, srv, bobID, itemID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	// booker cannot decide
	resp, body := doJSON(t, srv, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=true", bookingID), bobID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("booker decision got %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, srv, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=false", bookingID), annID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reject got %d: %s", resp.StatusCode, body)
	}
	var booking struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.Status != "REJECTED" {
		t.Fatalf("status = %s, want REJECTED", booking.Status)
	}

	// second decision is rejected as already processed
	resp, body = doJSON(t, srv, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=true", bookingID), annID, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("re-decision got %d: %s", resp.StatusCode, body)
	}
}

func TestBookingOwnItemForbidden(t *testing.T) {
	srv := newTestServer(t)
	annID := createUser(t, srv, "ann", "ann@example.com")
	itemID := createItem(t, srv, annID, "drill", "tool", true)

	resp, body := doJSON(t, srv, http.MethodPost, "/bookings", annID, map[string]any{
		"itemId": itemID, "start": testNow.Add(time.Hour), "end": testNow.Add(2 * time.Hour),
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("own-item booking got %d: %s", resp.StatusCode, body)
	}
}

func TestListBookingsUnknownStateBody(t *testing.T) {
	srv := newTestServer(t)
	bobID := createUser(t, srv, "bob", "bob@example.com")

	resp, body := doJSON(t, srv, http.MethodGet, "/bookings?state=SOMEDAY", bobID, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown state got %d: %s", resp.StatusCode, body)
	}
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Error != "Unknown state: UNSUPPORTED_STATUS" {
		t.Fatalf("error = %q: %s", errBody.Error, body)
	}
}

func TestCommentFlow(t *testing.T) {
	srv := newTestServer(t)
	annID := createUser(t, srv, "ann", "ann@example.com")
	bobID := createUser(t, srv, "bob", "bob@example.com")
	itemID := createItem(t, srv, annID, "drill", "tool", true)

	// no finished booking yet
	resp, body := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), bobID,
		map[string]string{"text": "nice"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("premature comment got %d: %s", resp.StatusCode, body)
	}

	bookingID := createBooking(t, srv, bobID, itemID, testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour))
	resp, body = doJSON(t, srv, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=true", bookingID), annID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve got %d: %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), bobID,
		map[string]string{"text": "works great"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("comment got %d: %s", resp.StatusCode, body)
	}
	var comment struct {
		Text       string `json:"text"`
		AuthorName string `json:"authorName"`
	}
	if err := json.Unmarshal(body, &comment); err != nil {
		t.Fatalf("decode comment: %v", err)
	}
	if comment.Text != "works great" || comment.AuthorName != "bob" {
		t.Fatalf("comment = %+v", comment)
	}
}

func TestRequestFlow(t *testing.T) {
	srv := newTestServer(t)
	annID := createUser(t, srv, "ann", "ann@example.com")
	bobID := createUser(t, srv, "bob", "bob@example.com")

	resp, body := doJSON(t, srv, http.MethodPost, "/requests", bobID,
		map[string]string{"description": "need a drill"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create request got %d: %s", resp.StatusCode, body)
	}
	var request struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &request); err != nil {
		t.Fatalf("decode request: %v", err)
	}

	resp, body = doJSON(t, srv, http.MethodPost, "/items", annID, map[string]any{
		"name": "drill", "description": "tool", "available": true, "requestId": request.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("answering item got %d: %s", resp.StatusCode, body)
	}

	var views []struct {
		ID    int64 `json:"id"`
		Items []struct {
			RequestID int64 `json:"requestId"`
		} `json:"items"`
	}
	resp, body = doJSON(t, srv, http.MethodGet, "/requests", bobID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list own requests got %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &views); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(views) != 1 || len(views[0].Items) != 1 || views[0].Items[0].RequestID != request.ID {
		t.Fatalf("own requests = %s", body)
	}

	resp, body = doJSON(t, srv, http.MethodGet, "/requests/all", annID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list others got %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &views); err != nil {
		t.Fatalf("decode others: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("others = %s", body)
	}

	resp, body = doJSON(t, srv, http.MethodGet, "/requests/all", bobID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("own view of others got %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("requestor must not see own request in /requests/all: %s", body)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, srv, http.MethodGet, "/healthz", 0, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz got %d", resp.StatusCode)
	}
}
