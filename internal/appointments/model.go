// Package appointments implements the availability-checked booking
// protocol against the shared appointment row store. The store is the
// single source of truth for booked slots; a slot is the (date, time)
// pair and matching is exact string equality against stored rows.
package appointments

// Sheet column names. The availability scan consumes the Date and Time
// columns of every existing row; the commit appends a full row in
// Header order.
const (
	ColumnTimestamp = "Timestamp"
	ColumnName      = "Name"
	ColumnEmail     = "Email"
	ColumnType      = "Appointment Type"
	ColumnDate      = "Date"
	ColumnTime      = "Time"
)

// Header is the appointments sheet header row.
var Header = []string{ColumnTimestamp, ColumnName, ColumnEmail, ColumnType, ColumnDate, ColumnTime}

// Slot identifies one bookable appointment window.
type Slot struct {
	Date string // ISO calendar date, YYYY-MM-DD
	Time string // 24-hour HH:MM
}

// BookingRequest carries the patient details for a commit.
type BookingRequest struct {
	Name            string
	Email           string
	AppointmentType string
	Date            string
	Time            string
}

// BookingResult is the outcome of a commit attempt.
type BookingResult struct {
	// Conflict is true when the slot was taken between the availability
	// check and the commit; no row is appended in that case.
	Conflict bool
	// CreatedAt is the server-set timestamp written to the store.
	CreatedAt string
}
