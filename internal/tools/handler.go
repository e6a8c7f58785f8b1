// Package tools exposes the appointment and report operations as
// webhook endpoints for the external conversational runtime. Every
// operation answers 200 with descriptive text: failures are narrated to
// the caller, never raised, so a session can't crash mid-dialogue.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lunahealth/hospital-assistant/internal/agent"
	"github.com/lunahealth/hospital-assistant/internal/appointments"
	"github.com/lunahealth/hospital-assistant/internal/observability/metrics"
	"github.com/lunahealth/hospital-assistant/internal/reports"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

// conversationIDHeader carries the runtime's session identifier so tool
// invocations can be attributed to one transcript.
const conversationIDHeader = "X-Conversation-Id"

// ReportFinder looks up stored reports by id.
type ReportFinder interface {
	FindByID(ctx context.Context, id string) ([]reports.StoredReport, error)
}

// Handler serves the tool-call surface.
type Handler struct {
	booking    *appointments.Service
	reports    ReportFinder
	transcript *TranscriptStore
	metrics    *metrics.AnalysisMetrics
	logger     *logging.Logger
}

// NewHandler creates the tool-call handler. transcript and m may be nil.
func NewHandler(booking *appointments.Service, finder ReportFinder, transcript *TranscriptStore, m *metrics.AnalysisMetrics, logger *logging.Logger) *Handler {
	if booking == nil {
		panic("tools: booking service cannot be nil")
	}
	if finder == nil {
		panic("tools: report finder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		booking:    booking,
		reports:    finder,
		transcript: transcript,
		metrics:    m,
		logger:     logger,
	}
}

type toolResponse struct {
	Result string `json:"result"`
}

type availabilityRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// CheckAvailability handles check_appointment_availability.
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, timeOfDay := normalizeSlot(req.Date, req.Time)
	var result string
	switch {
	case date == "" || timeOfDay == "":
		result = "I need both a date and a time to check availability. Please provide the date as YYYY-MM-DD and the time as HH:MM."
	default:
		available, err := h.booking.CheckAvailability(r.Context(), appointments.Slot{Date: date, Time: timeOfDay})
		switch {
		case err != nil:
			// Soft failure: the conversation proceeds optimistically
			// rather than aborting on a row-store fault.
			h.logger.Error("availability check failed", "error", err, "date", date, "time", timeOfDay)
			result = fmt.Sprintf("I apologize, but I couldn't check availability at the moment: %v. Let's proceed and I'll note your preferred time.", err)
		case available:
			result = fmt.Sprintf("AVAILABLE: The time slot on %s at %s is available for booking.", date, timeOfDay)
		default:
			result = fmt.Sprintf("UNAVAILABLE: The time slot on %s at %s is already booked. Please choose a different date or time.", date, timeOfDay)
		}
	}

	h.record(r, "check_appointment_availability", map[string]string{"date": req.Date, "time": req.Time}, result)
	writeToolResult(w, result)
}

type bookingRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	AppointmentType string `json:"appointment_type"`
	Date            string `json:"date"`
	Time            string `json:"time"`
}

// SaveAppointment handles save_appointment_to_sheet.
func (h *Handler) SaveAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, timeOfDay := normalizeSlot(req.Date, req.Time)
	var result string
	switch {
	case req.Name == "" || req.Email == "" || date == "" || timeOfDay == "":
		result = "I'm missing some booking details. I need the patient's name, email, appointment type, date, and time."
	default:
		res, err := h.booking.Book(r.Context(), appointments.BookingRequest{
			Name:            req.Name,
			Email:           req.Email,
			AppointmentType: req.AppointmentType,
			Date:            date,
			Time:            timeOfDay,
		})
		switch {
		case err != nil:
			h.logger.Error("booking failed", "error", err, "date", date, "time", timeOfDay)
			result = fmt.Sprintf("I apologize, but there was an error saving your appointment: %v. Please contact our office directly.", err)
		case res.Conflict:
			result = "ERROR: This time slot was just booked by someone else. Please choose a different time."
		default:
			result = fmt.Sprintf("Appointment successfully booked for %s on %s at %s. Confirmation will be sent to %s.", req.Name, date, timeOfDay, req.Email)
		}
	}

	h.record(r, "save_appointment_to_sheet", map[string]string{
		"name": req.Name, "email": req.Email, "appointment_type": req.AppointmentType,
		"date": req.Date, "time": req.Time,
	}, result)
	writeToolResult(w, result)
}

type lookupRequest struct {
	UserID string `json:"user_id"`
}

// LookupReports handles lookup_user_reports.
func (h *Handler) LookupReports(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var result string
	switch {
	case req.UserID == "":
		result = "I need a Report ID to look up your results. May I have your Report ID?"
	default:
		matches, err := h.reports.FindByID(r.Context(), req.UserID)
		switch {
		case err != nil:
			h.logger.Error("report lookup failed", "error", err, "report_id", req.UserID)
			h.metrics.ObserveLookup("error")
			result = fmt.Sprintf("I apologize, but I encountered an error retrieving your reports: %v. Please try again or contact our office for assistance.", err)
		case len(matches) == 0:
			h.metrics.ObserveLookup("not_found")
			result = reports.NotFoundMessage(req.UserID)
		default:
			h.metrics.ObserveLookup("found")
			result = reports.Render(req.UserID, matches)
		}
	}

	h.record(r, "lookup_user_reports", map[string]string{"user_id": req.UserID}, result)
	writeToolResult(w, result)
}

// Definitions serves the tool schemas the runtime registers.
func (h *Handler) Definitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tools": Definitions()})
}

// Instructions serves the fixed Luna policy document.
func (h *Handler) Instructions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(agent.Instructions))
}

// Transcript serves a conversation's tool-invocation transcript.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	if h.transcript == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "transcripts not enabled"})
		return
	}
	conversationID := chi.URLParam(r, "conversationID")
	entries, err := h.transcript.List(r.Context(), conversationID)
	if err != nil {
		h.logger.Error("transcript read failed", "error", err, "conversation_id", conversationID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load transcript"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"conversation_id": conversationID,
		"entries":         entries,
	})
}

// normalizeSlot applies the date/time normalization rules so natural
// phrasing from the runtime still lands on the canonical slot key. Raw
// values pass through unchanged when they don't parse; the stored side
// is never normalized.
func normalizeSlot(date, timeOfDay string) (string, string) {
	if normalized, err := agent.NormalizeDate(date); err == nil {
		date = normalized
	}
	if normalized, err := agent.NormalizeTime(timeOfDay); err == nil {
		timeOfDay = normalized
	}
	return date, timeOfDay
}

func (h *Handler) record(r *http.Request, tool string, args map[string]string, result string) {
	if h.transcript == nil {
		return
	}
	conversationID := r.Header.Get(conversationIDHeader)
	if conversationID == "" {
		return
	}
	entry := TranscriptEntry{Tool: tool, Args: args, Result: result, At: time.Now().UTC()}
	if err := h.transcript.Append(r.Context(), conversationID, entry); err != nil {
		h.logger.Error("transcript append failed", "error", err, "conversation_id", conversationID, "tool", tool)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

func writeToolResult(w http.ResponseWriter, result string) {
	writeJSON(w, http.StatusOK, toolResponse{Result: result})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
