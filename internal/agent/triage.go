package agent

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Urgency is the outcome of a deterministic symptom assessment.
type Urgency string

const (
	// UrgencyEmergency means the patient should go to the hospital now.
	UrgencyEmergency Urgency = "emergency"
	// UrgencyAppointment means a doctor should see the patient soon.
	UrgencyAppointment Urgency = "appointment"
	// UrgencyHomeCare means the symptoms can be managed at home.
	UrgencyHomeCare Urgency = "home_care"
)

// AppointmentTypes enumerates the bookable appointment categories.
var AppointmentTypes = []string{
	"General Checkup",
	"Physical Examination",
	"Specialist Consultation",
	"Follow-up Visit",
	"Other",
}

// emergencySymptoms require an immediate hospital visit.
var emergencySymptoms = []string{
	"chest pain",
	"chest pressure",
	"difficulty breathing",
	"shortness of breath",
	"allergic reaction",
	"swelling face",
	"swelling throat",
	"uncontrolled bleeding",
	"stroke",
	"facial drooping",
	"arm weakness",
	"speech difficulty",
	"head injury",
	"loss of consciousness",
	"unconscious",
	"fever in infant",
	"severe abdominal pain",
	"suicidal",
	"broken bone",
	"deformity",
	"severe burn",
	"poisoning",
	"overdose",
}

// homeCareSymptoms can usually be managed without a visit.
var homeCareSymptoms = []string{
	"common cold",
	"runny nose",
	"sore throat",
	"minor headache",
	"mild headache",
	"mild fever",
	"minor cut",
	"scrape",
	"mild indigestion",
	"muscle soreness",
	"sore muscles",
}

// Assess maps a symptom description onto an urgency level using the
// triage tables. Unrecognized symptoms default to recommending an
// appointment: when in doubt, err on the side of caution.
func Assess(description string) Urgency {
	lowered := strings.ToLower(description)

	for _, symptom := range emergencySymptoms {
		if strings.Contains(lowered, symptom) {
			return UrgencyEmergency
		}
	}
	for _, symptom := range homeCareSymptoms {
		if strings.Contains(lowered, symptom) {
			return UrgencyHomeCare
		}
	}
	return UrgencyAppointment
}

// IsAppointmentType reports whether label names a known appointment
// category (case-insensitive).
func IsAppointmentType(label string) bool {
	trimmed := strings.TrimSpace(label)
	for _, t := range AppointmentTypes {
		if strings.EqualFold(trimmed, t) {
			return true
		}
	}
	return false
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"01/02/2006",
}

// NormalizeDate converts a natural-language date into the canonical
// YYYY-MM-DD form the booking tools expect. Ordinal suffixes ("15th
// December 2024") are accepted.
func NormalizeDate(raw string) (string, error) {
	cleaned := strings.TrimSpace(ordinalSuffix.ReplaceAllString(raw, "$1"))
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("agent: unrecognized date %q", raw)
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"3:04 pm",
	"3pm",
}

// NormalizeTime converts a 12- or 24-hour time into canonical HH:MM.
func NormalizeTime(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("agent: unrecognized time %q", raw)
}
