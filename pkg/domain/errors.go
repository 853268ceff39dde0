package domain

import (
	"errors"
	"fmt"
)

// Kind classifies domain failures so the HTTP boundary can map them to a
// status code and error body.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindState
)

// Error is a domain failure surfaced directly to the caller. All failures are
// terminal for the request; nothing is retried.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error { return newf(KindValidation, format, args...) }
func NotFoundf(format string, args ...any) *Error   { return newf(KindNotFound, format, args...) }
func Conflictf(format string, args ...any) *Error   { return newf(KindConflict, format, args...) }
func Forbiddenf(format string, args ...any) *Error  { return newf(KindForbidden, format, args...) }

// ErrUnsupportedState is returned when a listing state token matches none of
// the known filters. Its message is part of the wire contract.
var ErrUnsupportedState = &Error{Kind: KindState, Message: "Unknown state: UNSUPPORTED_STATUS"}

// KindOf reports the Kind of err when it is a domain Error.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
