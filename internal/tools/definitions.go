package tools

// ToolParameter describes one argument of a tool.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ToolDefinition is the schema the conversational runtime registers for
// one callable tool.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`
}

// Definitions returns the schemas of every tool exposed to the
// conversational runtime.
func Definitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "check_appointment_availability",
			Description: "Check if a specific date and time slot is available for booking.",
			Parameters: []ToolParameter{
				{Name: "date", Type: "string", Description: "Appointment date in format YYYY-MM-DD", Required: true},
				{Name: "time", Type: "string", Description: "Appointment time in format HH:MM (24-hour format)", Required: true},
			},
		},
		{
			Name:        "save_appointment_to_sheet",
			Description: "Save appointment details after confirming availability.",
			Parameters: []ToolParameter{
				{Name: "name", Type: "string", Description: "Patient's full name", Required: true},
				{Name: "email", Type: "string", Description: "Patient's email address", Required: true},
				{Name: "appointment_type", Type: "string", Description: `Type of appointment (e.g., "General Checkup", "Physical", "Consultation")`, Required: true},
				{Name: "date", Type: "string", Description: "Appointment date in format YYYY-MM-DD", Required: true},
				{Name: "time", Type: "string", Description: "Appointment time in format HH:MM", Required: true},
			},
		},
		{
			Name:        "lookup_user_reports",
			Description: "Look up all medical reports for a specific user.",
			Parameters: []ToolParameter{
				{Name: "user_id", Type: "string", Description: "The unique user/report identifier to search for", Required: true},
			},
		},
	}
}
