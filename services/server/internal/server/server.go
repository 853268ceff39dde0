package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"rentshare/internal/metrics"
	"rentshare/internal/util"
	"rentshare/services/server/internal/app"
)

// SharerHeader identifies the acting user on every endpoint.
const SharerHeader = "X-Sharer-User-Id"

const (
	defaultPageFrom = 0
	defaultPageSize = 20
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App
}

// Server exposes the marketplace HTTP endpoints.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app: cfg.App,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler with the shared middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(
		util.WithRequestLog("server",
			metrics.WithHTTP("server",
				util.WithSecurityHeaders(util.WithCORS(s.mux)))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", metrics.Handler())

	s.mux.HandleFunc("/users", s.handleUsers)
	s.mux.HandleFunc("/users/", s.handleUserByID)
	s.mux.HandleFunc("/items", s.handleItems)
	s.mux.HandleFunc("/items/", s.handleItemSubpath)
	s.mux.HandleFunc("/bookings", s.handleBookings)
	s.mux.HandleFunc("/bookings/", s.handleBookingSubpath)
	s.mux.HandleFunc("/requests", s.handleRequests)
	s.mux.HandleFunc("/requests/", s.handleRequestSubpath)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sharerID extracts the acting user from the X-Sharer-User-Id header.
func sharerID(r *http.Request) (int64, error) {
	return parseID(r.Header.Get(SharerHeader), SharerHeader+" header")
}

func parseID(raw, what string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, validationErrorf("%s is required", what)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validationErrorf("%s must be an integer", what)
	}
	return id, nil
}

// pageParams reads from/size with the default page of 20 starting at 0.
func pageParams(r *http.Request) (int, int, error) {
	from := defaultPageFrom
	size := defaultPageSize
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, validationErrorf("from must be an integer")
		}
		from = n
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, validationErrorf("size must be an integer")
		}
		size = n
	}
	return from, size, nil
}

func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(out); err != nil {
		return validationErrorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
