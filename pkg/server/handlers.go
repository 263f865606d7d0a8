package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/scenario"
)

// ListResponse is the body of GET /scenarios.
type ListResponse struct {
	Scenarios []string `json:"scenarios"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.source.List(r.Context())
	if err != nil {
		s.logger.Error("list scenarios", "error", err)
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Scenarios: names})
}

// load fetches the scenario named in the URL, writing the error response
// when it fails.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*scenario.Scenario, bool) {
	name := chi.URLParam(r, "name")
	sc, err := s.source.Load(r.Context(), name)
	if err != nil {
		s.logger.Warn("load scenario", "scenario", name, "error", err)
		writeError(w, err)
		return nil, false
	}
	return sc, true
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.load(w, r)
	if !ok {
		return
	}
	report, err := s.runner.Run(r.Context(), sc, nil)
	if err != nil {
		s.logger.Error("run scenario", "scenario", sc.Name, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.load(w, r)
	if !ok {
		return
	}

	step := len(sc.Steps) - 1
	if q := r.URL.Query().Get("step"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 || n >= len(sc.Steps) {
			writeJSON(w, http.StatusBadRequest, ErrorBody{
				Error:  "invalid step",
				Detail: "step must be between 0 and " + strconv.Itoa(len(sc.Steps)-1),
			})
			return
		}
		step = n
	}

	trimmed := *sc
	trimmed.Steps = sc.Steps[:step+1]
	report, err := s.runner.Run(r.Context(), &trimmed, nil)
	if err != nil {
		s.logger.Error("run scenario", "scenario", sc.Name, "error", err)
		writeError(w, err)
		return
	}
	if len(report.Steps) == 0 {
		writeError(w, errors.New("E501").WithDetail(sc.Name))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(report.Steps[len(report.Steps)-1].HTML))
}
