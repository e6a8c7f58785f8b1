package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessEmergency(t *testing.T) {
	cases := []string{
		"I have severe chest pain and I'm sweating",
		"my father shows signs of a stroke, facial drooping",
		"she took an overdose of sleeping pills",
		"uncontrolled bleeding from a deep cut",
		"Difficulty Breathing since an hour ago",
	}
	for _, c := range cases {
		assert.Equal(t, UrgencyEmergency, Assess(c), "description=%q", c)
	}
}

func TestAssessHomeCare(t *testing.T) {
	cases := []string{
		"just a common cold with a runny nose",
		"mild headache after working all day",
		"muscle soreness from the gym",
	}
	for _, c := range cases {
		assert.Equal(t, UrgencyHomeCare, Assess(c), "description=%q", c)
	}
}

func TestAssessDefaultsToAppointment(t *testing.T) {
	cases := []string{
		"a strange rash on my arm for two weeks",
		"persistent fever for three days",
		"something feels off",
	}
	for _, c := range cases {
		assert.Equal(t, UrgencyAppointment, Assess(c), "description=%q", c)
	}
}

func TestIsAppointmentType(t *testing.T) {
	assert.True(t, IsAppointmentType("General Checkup"))
	assert.True(t, IsAppointmentType("general checkup"))
	assert.True(t, IsAppointmentType(" Follow-up Visit "))
	assert.False(t, IsAppointmentType("Dental Cleaning"))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-12-15", "2024-12-15"},
		{"December 15, 2024", "2024-12-15"},
		{"15th December 2024", "2024-12-15"},
		{"Dec 1, 2025", "2025-12-01"},
		{"03/01/2025", "2025-03-01"},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}

	_, err := NormalizeDate("sometime next week")
	assert.Error(t, err)
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"14:30", "14:30"},
		{"2:30 PM", "14:30"},
		{"2:30PM", "14:30"},
		{"9:05 AM", "09:05"},
		{"3 PM", "15:00"},
	}
	for _, tt := range tests {
		got, err := NormalizeTime(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}

	_, err := NormalizeTime("in the afternoon")
	assert.Error(t, err)
}

func TestInstructionsMentionAllTools(t *testing.T) {
	assert.Contains(t, Instructions, "check_appointment_availability")
	assert.Contains(t, Instructions, "save_appointment_to_sheet")
	assert.Contains(t, Instructions, "lookup_user_reports")
}
