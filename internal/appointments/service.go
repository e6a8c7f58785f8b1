package appointments

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lunahealth/hospital-assistant/internal/notify"
	"github.com/lunahealth/hospital-assistant/internal/observability/metrics"
	"github.com/lunahealth/hospital-assistant/internal/sheets"
	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

var tracer = otel.Tracer("luna.internal.appointments")

const timestampLayout = "2006-01-02 15:04:05"

// Service implements the check-then-commit booking protocol. The two
// scans (one in CheckAvailability, an independent one in Book) are the
// entirety of the conflict-avoidance mechanism: the store offers no
// transactions, so a race between two concurrent commits for the same
// slot can still double-book. Accepted at expected booking volume.
type Service struct {
	store   sheets.RowStore
	email   notify.EmailSender
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewService creates a booking service. email and m may be nil.
func NewService(store sheets.RowStore, email notify.EmailSender, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("appointments: row store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		email:   email,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// CheckAvailability scans every existing appointment row and reports
// whether the slot is free. It has no side effects.
func (s *Service) CheckAvailability(ctx context.Context, slot Slot) (bool, error) {
	ctx, span := tracer.Start(ctx, "appointments.check_availability")
	defer span.End()
	span.SetAttributes(
		attribute.String("luna.slot_date", slot.Date),
		attribute.String("luna.slot_time", slot.Time),
	)

	taken, err := s.slotTaken(ctx, slot)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveCheck("error")
		return false, err
	}
	if taken {
		s.metrics.ObserveCheck("unavailable")
		return false, nil
	}
	s.metrics.ObserveCheck("available")
	return true, nil
}

// Book re-scans all existing rows for a conflicting slot and, if still
// free, appends the appointment with a server-set timestamp. The re-scan
// is deliberate: time may have elapsed since the availability check and
// no lock is held across the two calls, so the commit never trusts a
// prior check.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	ctx, span := tracer.Start(ctx, "appointments.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("luna.slot_date", req.Date),
		attribute.String("luna.slot_time", req.Time),
		attribute.String("luna.appointment_type", req.AppointmentType),
	)

	taken, err := s.slotTaken(ctx, Slot{Date: req.Date, Time: req.Time})
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("error")
		return nil, err
	}
	if taken {
		s.metrics.ObserveBooking("conflict")
		return &BookingResult{Conflict: true}, nil
	}

	createdAt := s.now().Format(timestampLayout)
	row := []string{createdAt, req.Name, req.Email, req.AppointmentType, req.Date, req.Time}

	start := s.now()
	if err := s.store.Append(ctx, row); err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("error")
		return nil, fmt.Errorf("appointments: failed to save booking: %w", err)
	}
	s.metrics.ObserveStoreLatency("append", s.now().Sub(start).Seconds())
	s.metrics.ObserveBooking("booked")

	s.logger.Info("appointment booked",
		"date", req.Date,
		"time", req.Time,
		"appointment_type", req.AppointmentType,
	)

	s.sendConfirmation(ctx, req)

	return &BookingResult{CreatedAt: createdAt}, nil
}

// slotTaken fetches the full record set and looks for an exact
// (date, time) match. Every call re-reads the store; freshness over
// efficiency.
func (s *Service) slotTaken(ctx context.Context, slot Slot) (bool, error) {
	start := s.now()
	records, err := sheets.Records(ctx, s.store)
	if err != nil {
		return false, fmt.Errorf("appointments: failed to read bookings: %w", err)
	}
	s.metrics.ObserveStoreLatency("scan", s.now().Sub(start).Seconds())

	for _, record := range records {
		if record[ColumnDate] == slot.Date && record[ColumnTime] == slot.Time {
			return true, nil
		}
	}
	return false, nil
}

// sendConfirmation emails the patient after a successful commit. Best
// effort: the booking is already durable, so a send failure is logged
// and never surfaced to the caller.
func (s *Service) sendConfirmation(ctx context.Context, req BookingRequest) {
	if s.email == nil {
		return
	}
	msg := notify.NewBookingConfirmation(req.Name, req.Email, req.AppointmentType, req.Date, req.Time)
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("confirmation email failed", "error", err, "email", req.Email)
	}
}
