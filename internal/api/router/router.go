// Package router wires the two HTTP surfaces: the analysis API that the
// upload frontend talks to, and the tools API that the conversational
// runtime invokes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lunahealth/hospital-assistant/internal/analysis"
	httpmiddleware "github.com/lunahealth/hospital-assistant/internal/http/middleware"
	"github.com/lunahealth/hospital-assistant/internal/tools"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

// AnalysisConfig holds analysis-router configuration.
type AnalysisConfig struct {
	Logger             *logging.Logger
	Analysis           *analysis.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Per-IP token bucket applied to /analyze only; zero disables it.
	AnalyzeRateLimit float64
	AnalyzeRateBurst int
}

// NewAnalysis creates the analysis API router.
func NewAnalysis(cfg *AnalysisConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/", cfg.Analysis.Index)
	r.Get("/health", cfg.Analysis.Health)

	r.Group(func(analyze chi.Router) {
		if cfg.AnalyzeRateLimit > 0 {
			analyze.Use(httpmiddleware.RateLimit(cfg.AnalyzeRateLimit, cfg.AnalyzeRateBurst))
		}
		analyze.Post("/analyze", cfg.Analysis.Analyze)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

// ToolsConfig holds tools-router configuration.
type ToolsConfig struct {
	Logger             *logging.Logger
	Tools              *tools.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// NewTools creates the tool-call API router.
func NewTools(cfg *ToolsConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	r.Get("/tools", cfg.Tools.Definitions)
	r.Get("/tools/transcript/{conversationID}", cfg.Tools.Transcript)
	r.Get("/agent/instructions", cfg.Tools.Instructions)
	r.Post("/tools/check_appointment_availability", cfg.Tools.CheckAvailability)
	r.Post("/tools/save_appointment_to_sheet", cfg.Tools.SaveAppointment)
	r.Post("/tools/lookup_user_reports", cfg.Tools.LookupReports)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy","message":"Tool-call API is running"}`))
}
