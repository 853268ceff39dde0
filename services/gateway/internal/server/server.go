package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rentshare/internal/metrics"
	"rentshare/internal/ratelimit"
	"rentshare/internal/util"
	"rentshare/services/gateway/internal/rentclient"
)

const (
	defaultPageFrom = 0
	defaultPageSize = 20

	defaultWriteRateLimit = 60
)

// Config wires required dependencies for the gateway.
type Config struct {
	Backend                 *rentclient.Client
	RedisAddr               string
	RedisPassword           string
	WriteRateLimitPerMinute int
}

// Server validates requests and forwards them to the backend untouched.
type Server struct {
	backend      *rentclient.Client
	mux          *http.ServeMux
	writeLimiter *ratelimit.FixedWindowLimiter
}

// New constructs the gateway with routes configured.
func New(cfg Config) (*Server, error) {
	writeLimit := cfg.WriteRateLimitPerMinute
	if writeLimit <= 0 {
		writeLimit = defaultWriteRateLimit
	}
	writeLimiter, err := ratelimit.NewRedisFixedWindowLimiter(
		cfg.RedisAddr, cfg.RedisPassword,
		"rentshare:gateway:ratelimit:write", writeLimit, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init write limiter: %w", err)
	}
	s := &Server{
		backend:      cfg.Backend,
		mux:          http.NewServeMux(),
		writeLimiter: writeLimiter,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler with the shared middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(
		util.WithRequestLog("gateway",
			metrics.WithHTTP("gateway",
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

// forward relays the backend response verbatim. A transport failure is the
// gateway's own fault and surfaces as 502.
func (s *Server) forward(w http.ResponseWriter, r *http.Request, resp rentclient.Response, err error) {
	if err != nil {
		util.LoggerFromContext(r.Context()).Error("backend unreachable", "err", err.Error())
		writeActionError(w, http.StatusBadGateway, "gateway failure", "backend unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func (s *Server) forwardCall(w http.ResponseWriter, r *http.Request, call func() (rentclient.Response, error)) {
	resp, err := call()
	s.forward(w, r, resp, err)
}

// allowWrite applies the shared mutating-request quota keyed by client IP.
func (s *Server) allowWrite(w http.ResponseWriter, r *http.Request) bool {
	key := r.URL.Path + "|" + util.ClientIP(r)
	if s.writeLimiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeActionError(w, http.StatusTooManyRequests, "rate limited", "too many write requests")
	return false
}

func sharerID(r *http.Request) (int64, error) {
	return parsePositiveID(r.Header.Get(rentclient.SharerHeader), rentclient.SharerHeader+" header")
}

func parsePositiveID(raw, what string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, validationErrorf("%s is required", what)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validationErrorf("%s must be an integer", what)
	}
	if id <= 0 {
		return 0, validationErrorf("%s must be positive", what)
	}
	return id, nil
}

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
