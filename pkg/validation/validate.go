// Package validation holds the pure input checks shared by the gateway and
// the backend handlers. Every function takes explicit arguments and returns a
// domain error; there is no shared state.
package validation

import (
	"net/mail"
	"strings"
	"time"

	"rentshare/pkg/domain"
)

// Page checks listing bounds: from must not be negative and size must be at
// least 1.
func Page(from, size int) error {
	if from < 0 {
		return domain.Validationf("from must not be negative, got %d", from)
	}
	if size < 1 {
		return domain.Validationf("size must be at least 1, got %d", size)
	}
	return nil
}

// PageOffset converts a from/size pair into a store offset. The page index is
// from divided by size, floored, so listings stay aligned to page boundaries.
func PageOffset(from, size int) int {
	if from <= 0 {
		return 0
	}
	return from / size * size
}

// ID rejects zero and negative identifiers before they reach the store.
func ID(id int64) error {
	if id == 0 {
		return domain.Validationf("id %d is not registered", id)
	}
	if id < 0 {
		return domain.Validationf("id %d must not be negative", id)
	}
	return nil
}

// State checks a bookings state filter token.
func State(token string) error {
	if _, ok := domain.ParseStateFilter(token); !ok {
		return domain.ErrUnsupportedState
	}
	return nil
}

// BookingPeriod requires both bounds present and end strictly after start.
func BookingPeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.Validationf("booking start and end are required")
	}
	if !end.After(start) {
		return domain.Validationf("booking end must be after its start")
	}
	return nil
}

// NotBlank rejects empty or whitespace-only values.
func NotBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Validationf("%s must not be blank", field)
	}
	return nil
}

// Email checks that the value parses as an address.
func Email(value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Validationf("email must not be blank")
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return domain.Validationf("email %q is not a valid address", value)
	}
	return nil
}
