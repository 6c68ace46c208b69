package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"focusquest/internal/auth"
	"focusquest/internal/engine"
	"focusquest/internal/storage"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
}

type taskResponse struct {
	Task      *storage.Task `json:"task"`
	User      *storage.User `json:"user,omitempty"`
	XPAwarded int           `json:"xpAwarded,omitempty"`
	LevelUp   bool          `json:"levelUp,omitempty"`
}

func (s *Server) tasksHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	switch r.Method {
	case http.MethodGet:
		s.listTasks(w, r, id)
	case http.MethodPost:
		s.createTask(w, r, id)
	default:
		s.methodNotAllowed(w)
	}
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	tasks, err := s.svc.ListTasks(r.Context(), owner(id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []storage.Task{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]storage.Task{"tasks": tasks})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := s.svc.CreateTask(r.Context(), owner(id), engine.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  engine.Difficulty(req.Difficulty),
		Category:    engine.Category(req.Category),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, taskResponse{Task: t})
}

func (s *Server) taskHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	taskID := taskIDFromPath(r.URL.Path)
	if taskID == "" {
		s.writeErrorMessage(w, http.StatusNotFound, "task not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getTask(w, r, id, taskID)
	case http.MethodPut:
		s.updateTask(w, r, id, taskID)
	case http.MethodDelete:
		s.deleteTask(w, r, id, taskID)
	default:
		s.methodNotAllowed(w)
	}
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request, id auth.Identity, taskID string) {
	t, err := s.svc.GetTask(r.Context(), owner(id), taskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, taskResponse{Task: t})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request, id auth.Identity, taskID string) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := engine.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Difficulty != nil {
		d := engine.Difficulty(*req.Difficulty)
		patch.Difficulty = &d
	}
	if req.Category != nil {
		c := engine.Category(*req.Category)
		patch.Category = &c
	}

	res, err := s.svc.UpdateTask(r.Context(), owner(id), taskID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := taskResponse{Task: res.Task}
	if res.XPAwarded > 0 {
		resp.User = res.User
		resp.XPAwarded = res.XPAwarded
		resp.LevelUp = res.LevelUp
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request, id auth.Identity, taskID string) {
	if err := s.svc.DeleteTask(r.Context(), owner(id), taskID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func taskIDFromPath(path string) string {
	id := strings.TrimPrefix(path, "/api/tasks/")
	return strings.Trim(id, "/")
}
