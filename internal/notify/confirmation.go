package notify

import "fmt"

// NewBookingConfirmation builds the confirmation email sent to a patient
// after their appointment is booked.
func NewBookingConfirmation(name, email, appointmentType, date, timeOfDay string) EmailMessage {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your %s is confirmed for %s at %s.\n\n"+
			"If you need to change or cancel your appointment, please call our office.\n\n"+
			"Luna Hospital Assistant",
		name, appointmentType, date, timeOfDay,
	)
	return EmailMessage{
		To:      email,
		ToName:  name,
		Subject: fmt.Sprintf("Appointment confirmed for %s at %s", date, timeOfDay),
		Body:    body,
	}
}
