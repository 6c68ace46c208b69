package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"focusquest/internal/auth"
	"focusquest/internal/engine"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeError translates the engine/auth error taxonomy into the declared
// failure shapes. Anything unrecognized is a storage/internal failure:
// logged in full, surfaced generically.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var authValidation auth.ValidationError
	switch {
	case engine.IsValidation(err), errors.As(err, &authValidation):
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case engine.IsNotFound(err):
		s.writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		s.writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
