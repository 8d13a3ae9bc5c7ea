// Package httpapi exposes the salary query API over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/paylens/paylens/internal/domain"
	logpkg "github.com/paylens/paylens/internal/logger"
	healthuc "github.com/paylens/paylens/internal/usecase/health"
	statsuc "github.com/paylens/paylens/internal/usecase/stats"
)

// Error codes returned in the JSON error body.
const (
	CodeBadRequest    = "bad_request"
	CodeIndexNotReady = "index_not_ready"
	CodeInternalError = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SalaryResponse is the body of GET /salary. Matches is present only
// when the caller asked for it.
type SalaryResponse struct {
	DataPoints int64         `json:"data_points"`
	MinSalary  float64       `json:"min_salary"`
	MaxSalary  float64       `json:"max_salary"`
	MeanSalary float64       `json:"mean_salary"`
	Matches    []SalaryMatch `json:"matches,omitempty"`
}

// SalaryMatch is one matching record in a SalaryResponse, in its
// reported unit and display form.
type SalaryMatch struct {
	Title   string  `json:"title"`
	Salary  float64 `json:"salary"`
	PayUnit string  `json:"pay_unit"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Records int               `json:"records"`
}

// Server holds the API handlers.
type Server struct {
	stats  *statsuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(stats *statsuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{stats: stats, health: health, logger: logger}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/salary", s.GetSalary)
	r.Get("/healthz", s.GetHealth)
}

// GetSalary handles GET /salary. Both title and location may be blank;
// blank input widens the match rather than failing it, so the empty
// query summarizes the entire dataset.
func (s *Server) GetSalary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := q.Get("title")
	location := q.Get("location")

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	includeMatches := false
	switch q.Get("include") {
	case "", "none":
	case "matches":
		includeMatches = true
	default:
		writeError(w, http.StatusBadRequest, CodeBadRequest, `include must be "matches"`)
		return
	}

	sum, err := s.stats.Summary(r.Context(), title, location)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := SalaryResponse{
		DataPoints: sum.DataPoints,
		MinSalary:  sum.Min,
		MaxSalary:  sum.Max,
		MeanSalary: sum.Mean,
	}

	if includeMatches {
		recs, err := s.stats.Matches(r.Context(), title, location, limit)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		resp.Matches = make([]SalaryMatch, len(recs))
		for i, rec := range recs {
			resp.Matches[i] = SalaryMatch{
				Title:   rec.Title,
				Salary:  rec.Salary,
				PayUnit: string(rec.Unit),
				City:    rec.City,
				State:   rec.State,
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Records: report.Records,
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrIndexNotReady):
		writeError(w, http.StatusServiceUnavailable, CodeIndexNotReady, domain.ErrIndexNotReady.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
		writeError(w, statusClientClosedRequest, CodeInternalError, "request canceled")
	default:
		logpkg.FromContextOr(r.Context(), s.logger).Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
	}
}

// 499 in the nginx convention.
const statusClientClosedRequest = 499

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
