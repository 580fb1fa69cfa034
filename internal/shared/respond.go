package shared

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Message is the standard success envelope.
type Message struct {
	Message string `json:"message"`
}

// Error is the standard error envelope.
type Error struct {
	Error string `json:"error"`
}

// RespondJSON sends a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondMessage sends a `{"message": ...}` body.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Message{Message: message})
}

// RespondError maps an error to its HTTP status. Known business errors keep
// their specific message; everything else becomes a generic internal fault so
// nothing internal leaks to the caller.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrConflict):
		RespondJSON(w, http.StatusConflict, Error{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		RespondJSON(w, http.StatusNotFound, Error{Error: err.Error()})
	case errors.Is(err, ErrUnauthorized):
		RespondJSON(w, http.StatusUnauthorized, Error{Error: err.Error()})
	case errors.Is(err, ErrForbidden):
		RespondJSON(w, http.StatusForbidden, Error{Error: err.Error()})
	default:
		if logger != nil {
			logger.Error("internal fault", slog.Any("error", err))
		}
		RespondJSON(w, http.StatusInternalServerError, Error{Error: "something went wrong, please try again later"})
	}
}

// DecodeJSON decodes a JSON request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
