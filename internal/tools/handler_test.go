package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunahealth/hospital-assistant/internal/appointments"
	"github.com/lunahealth/hospital-assistant/internal/reports"
	"github.com/lunahealth/hospital-assistant/internal/sheets"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

// stubFinder returns canned report matches.
type stubFinder struct {
	matches []reports.StoredReport
	err     error
}

func (s *stubFinder) FindByID(context.Context, string) ([]reports.StoredReport, error) {
	return s.matches, s.err
}

type failingRowStore struct{ err error }

func (f *failingRowStore) Rows(context.Context) ([][]string, error)     { return nil, f.err }
func (f *failingRowStore) Append(context.Context, []string) error       { return f.err }
func (f *failingRowStore) InsertHeader(context.Context, []string) error { return f.err }

func newBookingService(store sheets.RowStore) *appointments.Service {
	return appointments.NewService(store, nil, nil, logging.New("error"))
}

func newAppointmentsStore(rows ...[]string) *sheets.Memory {
	all := [][]string{appointments.Header}
	all = append(all, rows...)
	return sheets.NewMemoryWithRows(all)
}

func callTool(t *testing.T, handlerFunc http.HandlerFunc, body string, headers map[string]string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handlerFunc(w, req)

	if w.Code != http.StatusOK {
		return w, ""
	}
	var resp toolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp.Result
}

func TestCheckAvailabilityFreeSlot(t *testing.T) {
	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, nil, nil, logging.New("error"))

	w, result := callTool(t, h.CheckAvailability, `{"date":"2025-03-01","time":"10:00"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AVAILABLE: The time slot on 2025-03-01 at 10:00 is available for booking.", result)
}

func TestCheckAvailabilityBookedSlot(t *testing.T) {
	store := newAppointmentsStore([]string{"", "Bob", "b@x.com", "Physical Examination", "2025-03-01", "10:00"})
	h := NewHandler(newBookingService(store), &stubFinder{}, nil, nil, logging.New("error"))

	_, result := callTool(t, h.CheckAvailability, `{"date":"2025-03-01","time":"10:00"}`, nil)
	assert.Equal(t, "UNAVAILABLE: The time slot on 2025-03-01 at 10:00 is already booked. Please choose a different date or time.", result)
}

func TestCheckAvailabilityNormalizesNaturalLanguage(t *testing.T) {
	store := newAppointmentsStore([]string{"", "", "", "", "2024-12-15", "14:30"})
	h := NewHandler(newBookingService(store), &stubFinder{}, nil, nil, logging.New("error"))

	_, result := callTool(t, h.CheckAvailability, `{"date":"December 15, 2024","time":"2:30 PM"}`, nil)
	assert.True(t, strings.HasPrefix(result, "UNAVAILABLE:"), "got %q", result)
}

func TestCheckAvailabilityStoreFaultDegradesGracefully(t *testing.T) {
	h := NewHandler(newBookingService(&failingRowStore{err: errors.New("quota exceeded")}), &stubFinder{}, nil, nil, logging.New("error"))

	w, result := callTool(t, h.CheckAvailability, `{"date":"2025-03-01","time":"10:00"}`, nil)
	// A row-store fault must never fail the caller: HTTP 200 with an apology.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, result, "I apologize")
	assert.Contains(t, result, "Let's proceed")
}

func TestCheckAvailabilityMissingParams(t *testing.T) {
	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, nil, nil, logging.New("error"))

	_, result := callTool(t, h.CheckAvailability, `{"date":"2025-03-01"}`, nil)
	assert.Contains(t, result, "I need both a date and a time")
}

func TestCheckAvailabilityInvalidJSON(t *testing.T) {
	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, nil, nil, logging.New("error"))

	w, _ := callTool(t, h.CheckAvailability, `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveAppointmentSuccess(t *testing.T) {
	store := newAppointmentsStore()
	h := NewHandler(newBookingService(store), &stubFinder{}, nil, nil, logging.New("error"))

	_, result := callTool(t, h.SaveAppointment,
		`{"name":"Alice","email":"a@x.com","appointment_type":"General Checkup","date":"2025-03-01","time":"10:00"}`, nil)
	assert.Equal(t, "Appointment successfully booked for Alice on 2025-03-01 at 10:00. Confirmation will be sent to a@x.com.", result)
	assert.Equal(t, 2, store.Len())
}

func TestSaveAppointmentConflict(t *testing.T) {
	store := newAppointmentsStore()
	h := NewHandler(newBookingService(store), &stubFinder{}, nil, nil, logging.New("error"))

	_, first := callTool(t, h.SaveAppointment,
		`{"name":"Alice","email":"a@x.com","appointment_type":"General Checkup","date":"2025-03-01","time":"10:00"}`, nil)
	assert.Contains(t, first, "successfully booked")

	_, second := callTool(t, h.SaveAppointment,
		`{"name":"Mallory","email":"m@x.com","appointment_type":"Consultation","date":"2025-03-01","time":"10:00"}`, nil)
	assert.Equal(t, "ERROR: This time slot was just booked by someone else. Please choose a different time.", second)

	// No second row was appended for the occupied slot.
	assert.Equal(t, 2, store.Len())
}

func TestSaveAppointmentStoreFault(t *testing.T) {
	h := NewHandler(newBookingService(&failingRowStore{err: errors.New("network down")}), &stubFinder{}, nil, nil, logging.New("error"))

	w, result := callTool(t, h.SaveAppointment,
		`{"name":"Alice","email":"a@x.com","appointment_type":"General Checkup","date":"2025-03-01","time":"10:00"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, result, "error saving your appointment")
	assert.Contains(t, result, "contact our office")
}

func TestLookupReportsNotFound(t *testing.T) {
	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, nil, nil, logging.New("error"))

	_, result := callTool(t, h.LookupReports, `{"user_id":"42"}`, nil)
	assert.Contains(t, result, "couldn't find any reports for ID 42")
}

func TestLookupReportsRendersAllMatches(t *testing.T) {
	finder := &stubFinder{matches: []reports.StoredReport{
		{ID: "42", TestType: "Blood Test", ParameterNames: "Hemoglobin", Values: "14.2 g/dL", ReferenceRanges: "13.5-17.5 g/dL"},
		{ID: "42", TestType: "Lipid Panel", ParameterNames: "LDL", Values: "130 mg/dL", ReferenceRanges: "<100 mg/dL"},
	}}
	h := NewHandler(newBookingService(newAppointmentsStore()), finder, nil, nil, logging.New("error"))

	_, result := callTool(t, h.LookupReports, `{"user_id":"42"}`, nil)
	assert.Contains(t, result, "I found 2 report(s) for ID 42")
	assert.Contains(t, result, "Report 1: Blood Test")
	assert.Contains(t, result, "Report 2: Lipid Panel")
}

func TestLookupReportsStoreFault(t *testing.T) {
	finder := &stubFinder{err: errors.New("auth expired")}
	h := NewHandler(newBookingService(newAppointmentsStore()), finder, nil, nil, logging.New("error"))

	w, result := callTool(t, h.LookupReports, `{"user_id":"42"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, result, "error retrieving your reports")
}

func TestToolInvocationsRecordedInTranscript(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	transcript := NewTranscriptStore(client)

	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, transcript, nil, logging.New("error"))

	headers := map[string]string{conversationIDHeader: "conv-9"}
	callTool(t, h.CheckAvailability, `{"date":"2025-03-01","time":"10:00"}`, headers)
	callTool(t, h.LookupReports, `{"user_id":"42"}`, headers)

	entries, err := transcript.List(context.Background(), "conv-9")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "check_appointment_availability", entries[0].Tool)
	assert.Equal(t, "lookup_user_reports", entries[1].Tool)
	assert.Contains(t, entries[0].Result, "AVAILABLE")
}

func TestDefinitionsEndpoint(t *testing.T) {
	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, nil, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	w := httptest.NewRecorder()
	h.Definitions(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Tools []ToolDefinition `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tools, 3)
	assert.Equal(t, "check_appointment_availability", resp.Tools[0].Name)
}

func TestInstructionsEndpoint(t *testing.T) {
	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, nil, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/agent/instructions", nil)
	w := httptest.NewRecorder()
	h.Instructions(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Luna")
	assert.Contains(t, w.Body.String(), "check_appointment_availability")
}

func TestTranscriptEndpointDisabled(t *testing.T) {
	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, nil, nil, logging.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/tools/transcript/conv-1", nil)
	w := httptest.NewRecorder()
	h.Transcript(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTranscriptEndpoint(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	transcript := NewTranscriptStore(client)
	require.NoError(t, transcript.Append(context.Background(), "conv-1", TranscriptEntry{Tool: "lookup_user_reports", Result: "ok"}))

	h := NewHandler(newBookingService(newAppointmentsStore()), &stubFinder{}, transcript, nil, logging.New("error"))

	r := chi.NewRouter()
	r.Get("/tools/transcript/{conversationID}", h.Transcript)

	req := httptest.NewRequest(http.MethodGet, "/tools/transcript/conv-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ConversationID string            `json:"conversation_id"`
		Entries        []TranscriptEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "conv-1", resp.ConversationID)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "lookup_user_reports", resp.Entries[0].Tool)
}
