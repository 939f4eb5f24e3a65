package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/josh-kwaku/splitledger/internal/auth"
)

const maxBodyBytes = 1 << 20

// callerID returns the authenticated user or writes a 401.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses a chi path parameter. Malformed ids are reported as 404
// since no such resource can exist.
func uuidParam(w http.ResponseWriter, r *http.Request, name string, notFound *AppError) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		RespondAppError(w, notFound, nil)
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		RespondAppError(w, ErrInvalidRequest, err.Error())
		return false
	}
	return true
}
