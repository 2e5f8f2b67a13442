package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jacentio/sceneforge/store"
	"github.com/jacentio/sceneforge/svc"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto the HTTP status contract. Invalid
// credentials always produce the same body regardless of internal cause, so
// the response cannot be used to enumerate usernames. Internal failures are
// logged but never echoed to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingCredentials),
		errors.Is(err, svc.ErrNoUpdatableFields):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, svc.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid username or password"})
	case errors.Is(err, svc.ErrDuplicateUser):
		writeJSON(w, http.StatusConflict, errorBody{Error: "username already taken"})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "malformed request body")
		return false
	}
	return true
}
