package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stoik/phishguard/internal/config"
	"github.com/stoik/phishguard/internal/domain"
	"github.com/stoik/phishguard/internal/ports"
)

const (
	serviceName    = "PhishGuard API"
	serviceVersion = "1.0.0"
)

// Server exposes the phishing analyzer over HTTP
type Server struct {
	analyzer ports.PhishingAnalyzer
	cfg      config.ServerConfig
	logger   *slog.Logger
	router   *chi.Mux
}

// NewServer creates the HTTP server with all routes and middleware registered
func NewServer(analyzer ports.PhishingAnalyzer, cfg config.ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		analyzer: analyzer,
		cfg:      cfg,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger())
	r.Use(s.recoverer)
	r.Use(s.corsHandler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

type analyzeRequest struct {
	Input string `json:"input"`
	Type  string `json:"type"`
}

type analyzeResponse struct {
	RiskLevel       domain.RiskTier  `json:"risk_level"`
	Score           int              `json:"score"`
	TriggeredRules  []string         `json:"triggered_rules"`
	InputType       domain.InputKind `json:"input_type"`
	AnalysisSummary string           `json:"analysis_summary"`
}

// Analysis handler
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "No data provided")
		return
	}

	req, ok := decodeAnalyzeRequest(body)
	if !ok {
		respondError(w, http.StatusBadRequest, "No data provided")
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), domain.AnalysisInput{
		Text: req.Input,
		Kind: domain.InputKind(req.Type),
	})
	if err != nil {
		s.respondAnalysisError(w, r, err)
		return
	}

	w.Header().Set("X-Analysis-ID", report.ID.String())
	respondJSON(w, http.StatusOK, analyzeResponse{
		RiskLevel:       report.Result.RiskTier,
		Score:           report.Result.Score,
		TriggeredRules:  report.Result.Explanations,
		InputType:       report.Result.Kind,
		AnalysisSummary: report.Result.Summary,
	})
}

// decodeAnalyzeRequest reports false for an empty body, null, {} or anything
// that is not a JSON object of string fields. An object with blank fields is
// a request and is left for the analyzer to reject.
func decodeAnalyzeRequest(body []byte) (analyzeRequest, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return analyzeRequest{}, false
	}

	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return analyzeRequest{}, false
	}
	return req, true
}

// respondAnalysisError maps analyzer rejections to 400 and everything else to 500
func (s *Server) respondAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		respondError(w, http.StatusBadRequest, "Input cannot be empty")
	case errors.Is(err, domain.ErrInvalidKind):
		respondError(w, http.StatusBadRequest, `Invalid input type. Must be "url" or "email"`)
	case errors.Is(err, domain.ErrInvalidURL):
		respondError(w, http.StatusBadRequest, "Invalid URL format")
	default:
		s.logger.ErrorContext(r.Context(), "error during analysis",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", err),
		)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
