package server

import (
	"errors"
	"net/http"

	"rentshare/pkg/domain"
)

// The gateway speaks the same error dialect as the backend so callers see one
// shape regardless of which side rejected the request.
type actionError struct {
	ActionError string `json:"actionError"`
	Description string `json:"description"`
}

type stateError struct {
	Error string `json:"error"`
}

func validationErrorf(format string, args ...any) error {
	return domain.Validationf(format, args...)
}

// writeValidationError reports a gateway-side rejection. Only validation and
// state kinds can originate here.
func writeValidationError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.KindState {
		writeJSON(w, http.StatusBadRequest, stateError{Error: de.Message})
		return
	}
	msg := err.Error()
	writeActionError(w, http.StatusBadRequest, "validation failed", msg)
}

func writeActionError(w http.ResponseWriter, status int, action, description string) {
	writeJSON(w, status, actionError{ActionError: action, Description: description})
}
