package httpd

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type contextKey struct{ name string }

var userIDKey = contextKey{"userID"}

// UserID returns the authenticated user's identifier, when the request came
// through requireAuth.
func UserID(ctx context.Context) (bson.ObjectID, bool) {
	id, ok := ctx.Value(userIDKey).(bson.ObjectID)
	return id, ok
}

// requireAuth validates the bearer token and injects the user identifier
// into the request context. Token internals are entirely the verifier's
// business; this layer only sees accept or reject.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
			return
		}
		userID, err := s.tokens.Verify(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired token"})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// pathID parses the {id} path segment as a document identifier.
func pathID(w http.ResponseWriter, r *http.Request) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		badRequest(w, "malformed id")
		return bson.ObjectID{}, false
	}
	return id, true
}
