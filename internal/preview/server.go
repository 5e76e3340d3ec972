// Package preview serves a generated documentation tree over HTTP for local
// inspection. It does no rendering; files are served as written.
package preview

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the contents of one documentation directory.
type Server struct {
	router chi.Router
	dir    string
	log    *slog.Logger
}

// NewServer builds a preview server for the given directory. The directory
// must exist.
func NewServer(dir string, log *slog.Logger) (*Server, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("preview directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("preview path %s is not a directory", dir)
	}

	s := &Server{dir: dir, log: log}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Handle("/*", http.FileServer(http.Dir(s.dir)))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}
