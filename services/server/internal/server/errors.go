package server

import (
	"errors"
	"fmt"
	"net/http"

	"rentshare/internal/util"
	"rentshare/pkg/domain"
)

// actionError is the wire shape for domain errors.
type actionError struct {
	ActionError string `json:"actionError"`
	Description string `json:"description"`
}

// stateError is the distinct wire shape for unsupported state tokens.
type stateError struct {
	Error string `json:"error"`
}

func validationErrorf(format string, args ...any) error {
	return domain.Validationf(format, args...)
}

// writeDomainError maps a domain error to its HTTP status and body. Anything
// that is not a domain error is logged and reported as a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindNotFound:
			writeActionError(w, http.StatusNotFound, "lookup failed", de.Message)
		case domain.KindValidation:
			writeActionError(w, http.StatusBadRequest, "validation failed", de.Message)
		case domain.KindConflict:
			writeActionError(w, http.StatusConflict, "request conflict", de.Message)
		case domain.KindForbidden:
			writeActionError(w, http.StatusForbidden, "access denied", de.Message)
		case domain.KindState:
			writeJSON(w, http.StatusBadRequest, stateError{Error: de.Message})
		default:
			writeActionError(w, http.StatusInternalServerError, "internal error", de.Message)
		}
		return
	}
	util.LoggerFromContext(r.Context()).Error("internal error", "err", fmt.Sprint(err))
	writeActionError(w, http.StatusInternalServerError, "internal error", "internal server error")
}

func writeActionError(w http.ResponseWriter, status int, action, description string) {
	writeJSON(w, status, actionError{ActionError: action, Description: description})
}
