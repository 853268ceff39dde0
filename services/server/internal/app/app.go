// Package app implements the marketplace business rules on top of a Store.
// Handlers decode requests and call into App; App returns domain values or
// domain errors for the boundary to map.
package app

import (
	"time"

	"rentshare/pkg/store"
)

// App carries the store and the clock used by time-dependent rules.
type App struct {
	store store.Store
	now   func() time.Time
}

// Config wires required dependencies for the app core.
type Config struct {
	Store store.Store
	// Now overrides the clock; tests pin it to a fixed instant.
	Now func() time.Time
}

// New constructs the app core.
func New(cfg Config) *App {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &App{store: cfg.Store, now: now}
}
