package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body. A nil pointer is written as null.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Error: message})
}

// writeServiceError maps a service error onto a status code. Validation
// failures are 400 and missing notifications and users are 404. Registration
// failures are always 500, including a row that vanished before its re-fetch.
// Everything else is 500 with the underlying message passed through.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		re *domain.RegistrationError
	)
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Message)
	case errors.As(err, &re):
		logger.FromContext(r.Context()).Error("Registration failed",
			"shiftID", re.ShiftID, "userID", re.UserID, "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		logger.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}
