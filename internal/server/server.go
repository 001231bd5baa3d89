// Package server is the local development server: it exposes the intent,
// its validation report and on-demand solves over HTTP for inspection
// tooling.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jfromaniello/planscript/pkg/intent"
	"github.com/jfromaniello/planscript/pkg/solver"
	"github.com/jfromaniello/planscript/pkg/validation"
)

// Server serves one project directory.
type Server struct {
	projectPath string
	port        int
	logger      *log.Logger

	mu   sync.Mutex
	last *solveRun
}

// solveRun is the outcome of the most recent solve.
type solveRun struct {
	RunID  string         `json:"run_id"`
	Result *solver.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// New creates a server for the given project directory.
func New(projectPath string, port int) *Server {
	return &Server{
		projectPath: projectPath,
		port:        port,
		logger:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "planscript"}),
	}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/intent", s.handleIntent)
	r.Get("/api/validation", s.handleValidation)
	r.Post("/api/solve", s.handleSolve)
	r.Get("/api/plan", s.handlePlan)
	r.Get("/", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("server starting", "addr", "http://localhost"+addr, "project", s.projectPath)

	return http.ListenAndServe(addr, r)
}

func (s *Server) loadIntent() (*intent.Intent, error) {
	return intent.LoadProject(s.projectPath)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>PlanScript</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>PlanScript</h1>
<p>POST /api/solve to run the solver, then GET /api/plan for the result.</p>
</div>
</body></html>`)
}

func (s *Server) handleIntent(w http.ResponseWriter, _ *http.Request) {
	in, err := s.loadIntent()
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, in)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	in, err := s.loadIntent()
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, validation.ValidateIntent(in))
}

func (s *Server) handleSolve(w http.ResponseWriter, _ *http.Request) {
	in, err := s.loadIntent()
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	run := &solveRun{RunID: uuid.NewString()}
	res, err := solver.Solve(in, solver.Options{Logger: s.logger})
	if err != nil {
		run.Error = err.Error()
		s.logger.Warn("solve failed", "run", run.RunID, "err", err)
	} else {
		run.Result = res
		s.logger.Info("solve finished", "run", run.RunID, "variant", res.Variant, "score", res.Score.Total)
	}

	s.mu.Lock()
	s.last = run
	s.mu.Unlock()

	if run.Error != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	s.writeJSON(w, run)
}

func (s *Server) handlePlan(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	run := s.last
	s.mu.Unlock()

	if run == nil {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("no solve has run yet"))
		return
	}
	s.writeJSON(w, run)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
