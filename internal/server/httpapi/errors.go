package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/knothost/siteapi/internal/common"
)

const (
	msgInternal           = "Internal server error"
	msgInvalidJSON        = "Invalid JSON body"
	msgBodyTooLarge       = "Request body too large"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized"
	msgUserNotFound       = "User not found"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // connection may already be gone
		json.NewEncoder(w).Encode(v)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeServiceError maps service errors to status codes. Anything
// unrecognized is logged and reported as a 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, common.ErrDuplicateAccount):
		writeMessage(w, http.StatusConflict, msgUserExists)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, common.ErrAccountNotFound):
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
	default:
		s.logger.Error(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
		)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON reads the request body into v. An empty body leaves v at its
// zero value. On failure the response is written and false returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return false
	}
	writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
	return false
}
