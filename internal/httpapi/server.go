package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"focusquest/internal/auth"
	"focusquest/internal/engine"
)

type Server struct {
	svc  *engine.Service
	auth *auth.Service
	log  *slog.Logger
}

func NewServer(svc *engine.Service, authSvc *auth.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, auth: authSvc, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", s.registerHandler)
	mux.HandleFunc("/api/auth/login", s.loginHandler)
	mux.HandleFunc("/api/user", s.requireAuth(s.userHandler))
	mux.HandleFunc("/api/tasks", s.requireAuth(s.tasksHandler))
	mux.HandleFunc("/api/tasks/", s.requireAuth(s.taskHandler))
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, id auth.Identity)

// requireAuth resolves the bearer token before anything touches the store.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		id, err := s.auth.Resolve(token)
		if err != nil {
			s.writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, id)
	}
}

func owner(id auth.Identity) engine.Owner {
	name := id.Name
	if name == "" && id.Email != "" {
		name, _, _ = strings.Cut(id.Email, "@")
	}
	return engine.Owner{ID: id.ID, Name: name}
}

func (s *Server) methodNotAllowed(w http.ResponseWriter) {
	s.writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}
