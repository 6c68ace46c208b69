package httpapi

import (
	"encoding/json"
	"net/http"

	"focusquest/internal/auth"
	"focusquest/internal/engine"
	"focusquest/internal/storage"
)

type updateUserRequest struct {
	Name            *string `json:"name"`
	Energy          *int    `json:"energy"`
	Streak          *int    `json:"streak"`
	AddFocusMinutes *int    `json:"addFocusMinutes"`
}

type userResponse struct {
	User *storage.User `json:"user"`
}

func (s *Server) userHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	switch r.Method {
	case http.MethodGet:
		s.getUser(w, r, id)
	case http.MethodPut:
		s.updateUser(w, r, id)
	default:
		s.methodNotAllowed(w)
	}
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	u, err := s.svc.Profile(r.Context(), owner(id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, userResponse{User: u})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Reporting focus minutes is its own operation; it never doubles as a
	// field patch.
	if req.AddFocusMinutes != nil {
		if req.Name != nil || req.Energy != nil || req.Streak != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "addFocusMinutes cannot be combined with other fields")
			return
		}
		res, err := s.svc.AddFocusMinutes(r.Context(), owner(id), *req.AddFocusMinutes)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, userResponse{User: res.User})
		return
	}

	u, err := s.svc.UpdateProfile(r.Context(), owner(id), engine.ProfilePatch{
		Name:   req.Name,
		Energy: req.Energy,
		Streak: req.Streak,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, userResponse{User: u})
}
