// Package analysis serves the report-upload HTTP surface: an image goes
// in, a structured analysis comes back, and a copy lands in the report
// row store under a short id the patient can read back over the phone.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/lunahealth/hospital-assistant/internal/observability/metrics"
	"github.com/lunahealth/hospital-assistant/internal/reports"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

var tracer = otel.Tracer("luna.internal.analysis")

const timestampLayout = "2006-01-02 15:04:05"

// ReportSaver persists a completed analysis under an id.
type ReportSaver interface {
	Save(ctx context.Context, id string, analysis *reports.Analysis) error
}

// Handler serves the analysis API.
type Handler struct {
	extractor      reports.Extractor
	saver          ReportSaver
	provider       string
	maxUploadBytes int64
	metrics        *metrics.AnalysisMetrics
	logger         *logging.Logger
	now            func() time.Time
	newID          func() string
}

// NewHandler creates the analysis handler. saver and m may be nil; a nil
// saver disables persistence and every response carries a warning.
func NewHandler(extractor reports.Extractor, saver ReportSaver, provider string, maxUploadBytes int64, m *metrics.AnalysisMetrics, logger *logging.Logger) *Handler {
	if extractor == nil {
		panic("analysis: extractor cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		extractor:      extractor,
		saver:          saver,
		provider:       provider,
		maxUploadBytes: maxUploadBytes,
		metrics:        m,
		logger:         logger,
		now:            time.Now,
		newID:          reports.NewID,
	}
}

type analyzeResponse struct {
	Success   bool              `json:"success"`
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Data      *reports.Analysis `json:"data"`
	Warning   string            `json:"warning,omitempty"`
}

// Analyze handles POST /analyze: a multipart upload with an "image" part.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "analysis.analyze")
	defer span.End()

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.metrics.ObserveUpload("rejected")
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error":   "File too large",
				"message": fmt.Sprintf("Uploads are limited to %d bytes", h.maxUploadBytes),
			})
			return
		}
		h.metrics.ObserveUpload("rejected")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image file provided"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.metrics.ObserveUpload("rejected")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file selected"})
		return
	}
	if !reports.AllowedExtension(header.Filename) {
		h.metrics.ObserveUpload("rejected")
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "Invalid file type",
			"message": fmt.Sprintf("Allowed types: %s", strings.Join(reports.AllowedExtensionList(), ", ")),
		})
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.metrics.ObserveUpload("rejected")
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error":   "File too large",
				"message": fmt.Sprintf("Uploads are limited to %d bytes", h.maxUploadBytes),
			})
			return
		}
		h.metrics.ObserveUpload("error")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Analysis failed",
			"message": "failed to read uploaded image",
		})
		return
	}

	result, err := h.extractor.Extract(ctx, image, header.Filename)
	if err != nil {
		span.RecordError(err)
		h.metrics.ObserveUpload("error")
		h.logger.Error("report extraction failed", "error", err, "filename", header.Filename, "provider", h.provider)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Analysis failed",
			"message": err.Error(),
		})
		return
	}

	id := h.newID()
	resp := analyzeResponse{
		Success:   true,
		ID:        id,
		Timestamp: h.now().Format(timestampLayout),
		Data:      result,
	}

	// The analysis is the product; a persistence failure downgrades to a
	// warning rather than discarding a completed extraction.
	if h.saver == nil {
		resp.Warning = "Analysis completed but failed to save to database"
	} else if err := h.saver.Save(ctx, id, result); err != nil {
		span.RecordError(err)
		h.logger.Error("report save failed", "error", err, "report_id", id)
		resp.Warning = "Analysis completed but failed to save to database"
	}

	h.metrics.ObserveUpload("success")
	h.logger.Info("report analyzed",
		"report_id", id,
		"test_type", result.Type,
		"parameters", len(result.Levels),
		"provider", h.provider,
	)
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Medical Report Analyzer API is running",
	})
}

// Index handles GET /: a short self-description of the API.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Medical Report Analyzer API",
		"endpoints": map[string]string{
			"POST /analyze": "Analyze a medical report image (multipart field: image)",
			"GET /health":   "Health check",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
