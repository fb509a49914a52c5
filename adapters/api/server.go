package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"crossval/adapters/models"
	"crossval/adapters/scoring"
	"crossval/domain/core"
	"crossval/domain/dataset"
	"crossval/domain/fold"
	domain "crossval/domain/report"
	"crossval/internal"
	rep "crossval/internal/report"
	"crossval/internal/runner"
	"crossval/ports"
)

// Server exposes cross-validation runs over HTTP
type Server struct {
	router  *chi.Mux
	reports ports.ReportRepository
	logger  *internal.Logger
}

// NewServer creates a server around a report repository
func NewServer(reports ports.ReportRepository, logger *internal.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		reports: reports,
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Post("/runs", s.handleCreateRun)
	s.router.Get("/runs", s.handleListRuns)
	s.router.Get("/runs/{id}", s.handleGetRun)
	s.router.Get("/runs/{id}/report", s.handleGetRunHTML)
}

// Handler returns the http.Handler for mounting or serving
func (s *Server) Handler() http.Handler {
	return s.router
}

// RunRequest is the POST /runs payload
type RunRequest struct {
	Dataset     string      `json:"dataset,omitempty"`
	Features    [][]float64 `json:"features"`
	Labels      []float64   `json:"labels"`
	Folds       int         `json:"folds"`
	Seed        *int64      `json:"seed,omitempty"`
	Model       string      `json:"model"`
	Metric      string      `json:"metric"`
	Parallelism int         `json:"parallelism,omitempty"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return
	}

	factory, err := modelFactory(req.Model)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	scorer, err := scoring.ByName(req.Metric)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var partitioner *fold.Partitioner
	if req.Seed != nil {
		partitioner = fold.NewPartitionerWithSeed(*req.Seed)
	} else {
		partitioner = fold.NewPartitioner()
	}

	opts := []runner.Option{runner.WithLogger(s.logger)}
	if req.Parallelism > 1 {
		opts = append(opts, runner.WithParallelism(req.Parallelism))
	}

	ds := dataset.New(req.Features, req.Labels)
	ds.Name = req.Dataset

	run := runner.New(partitioner, opts...)
	result, err := run.Run(r.Context(), ds, req.Folds, factory, scorer)
	if err != nil {
		if core.IsValidationError(err) {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.reports.SaveReport(r.Context(), result); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"report":  result,
		"summary": rep.Summarize(result),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reports, err := s.reports.ListReports(r.Context(), 50)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	result, status, err := s.fetchRun(r)
	if err != nil {
		s.writeError(w, status, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"report":  result,
		"summary": rep.Summarize(result),
	})
}

func (s *Server) handleGetRunHTML(w http.ResponseWriter, r *http.Request) {
	result, status, err := s.fetchRun(r)
	if err != nil {
		s.writeError(w, status, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(rep.RenderHTML(result))
}

func (s *Server) fetchRun(r *http.Request) (*domain.Report, int, error) {
	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	result, err := s.reports.GetReport(r.Context(), runID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusInternalServerError, err
	}
	return result, http.StatusOK, nil
}

func modelFactory(name string) (ports.ModelFactory, error) {
	switch name {
	case "majority_class":
		return models.MajorityFactory(), nil
	case "least_squares":
		return models.LeastSquaresFactory(), nil
	default:
		return nil, fmt.Errorf("unknown model %q", name)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed (%d): %v", status, err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
