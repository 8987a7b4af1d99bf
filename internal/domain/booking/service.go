package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinio/clinio/internal/domain/availability"
	"github.com/clinio/clinio/internal/domain/provider"
	"github.com/clinio/clinio/internal/platform/clock"
)

// ErrInvalidTransition is returned when a status change violates the
// booking lifecycle.
var ErrInvalidTransition = errors.New("status transition not allowed")

// ErrInvalidInput marks request payloads the service could not interpret,
// as opposed to valid requests the engine rejected.
var ErrInvalidInput = errors.New("invalid input")

// CreateRequest is a proposed booking. Date and time arrive as the separate
// fields the scheduling forms collect; the service combines them into one
// instant in the clinic's time zone.
type CreateRequest struct {
	ProviderID    uuid.UUID     `json:"provider_id" validate:"required"`
	PatientID     uuid.UUID     `json:"patient_id" validate:"required"`
	Date          string        `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string        `json:"time" validate:"required"`
	Price         *float64      `json:"price,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
	Status        Status        `json:"status,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
}

// RescheduleRequest moves an existing booking to a new date and time.
type RescheduleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required"`
}

// Service is the scheduling workflow around the pure availability engine:
// it fetches the provider policy and the day's bookings, runs the engine,
// persists the outcome, and translates a lost insert race back into the
// engine's slot-taken rejection after a fresh read.
type Service struct {
	bookings  Repository
	providers provider.Directory
	clk       clock.Clock

	loc           *time.Location
	defaultStatus Status
	slotMinutes   int
}

func NewService(bookings Repository, providers provider.Directory, clk clock.Clock) *Service {
	return &Service{
		bookings:      bookings,
		providers:     providers,
		clk:           clk,
		loc:           time.UTC,
		defaultStatus: StatusPending,
	}
}

// SetLocation sets the clinic time zone used to interpret dates and times.
func (s *Service) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

// SetDefaultStatus sets the initial lifecycle state for bookings created
// without an explicit status. Only pending and confirmed are meaningful
// starting states.
func (s *Service) SetDefaultStatus(status Status) error {
	if status != StatusPending && status != StatusConfirmed {
		return fmt.Errorf("default booking status must be pending or confirmed, got %q", status)
	}
	s.defaultStatus = status
	return nil
}

// SetSlotMinutes overrides the slot length for every provider. Zero keeps
// the per-policy default.
func (s *Service) SetSlotMinutes(minutes int) error {
	if minutes < 0 || minutes > 24*60 {
		return fmt.Errorf("slot minutes out of range: %d", minutes)
	}
	s.slotMinutes = minutes
	return nil
}

func (s *Service) applySlotMinutes(policy availability.Policy) availability.Policy {
	if s.slotMinutes > 0 {
		policy.SlotMinutes = s.slotMinutes
	}
	return policy
}

// Today returns the current calendar date in the clinic time zone.
func (s *Service) Today() time.Time {
	now := s.clk.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// ParseDate interprets a "2006-01-02" date in the clinic time zone.
func (s *Service) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, s.loc)
}

func (s *Service) combine(date, timeOfDay string) (time.Time, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: want YYYY-MM-DD", ErrInvalidInput, date)
	}
	tod, err := availability.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return tod.On(day), nil
}

// AvailableSlots returns the open slot instants for a provider on a date.
func (s *Service) AvailableSlots(ctx context.Context, providerID uuid.UUID, date time.Time) ([]time.Time, error) {
	policy, err := s.providers.GetPolicy(ctx, providerID)
	if err != nil {
		return nil, err
	}
	existing, err := s.bookings.ListByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	return availability.GenerateSlots(s.applySlotMinutes(policy), providerID, date, slotsOf(existing), uuid.Nil), nil
}

// Book validates and persists a new booking. The optimistic validation can
// race a concurrent insert for the same slot; the database constraint is
// authoritative, and a conflict there is re-checked against a fresh read so
// the caller always sees either success or a typed rejection.
func (s *Service) Book(ctx context.Context, req CreateRequest) (*Booking, error) {
	start, err := s.combine(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	prov, err := s.providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	policy, err := prov.Policy()
	if err != nil {
		return nil, err
	}
	policy = s.applySlotMinutes(policy)

	status := req.Status
	if status == "" {
		status = s.defaultStatus
	}
	if status != StatusPending && status != StatusConfirmed {
		return nil, fmt.Errorf("%w: initial status must be pending or confirmed, got %q", ErrInvalidInput, status)
	}
	payment := req.PaymentStatus
	if payment == "" {
		payment = PaymentUnpaid
	}
	if !payment.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, payment)
	}
	price := prov.Price
	if req.Price != nil {
		price = *req.Price
	}

	engineReq := availability.Request{
		ProviderID: req.ProviderID,
		PatientID:  req.PatientID,
		StartTime:  start,
	}

	// Two attempts: the second runs only after a lost race, against the
	// state that won it.
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.bookings.ListByProviderAndDate(ctx, req.ProviderID, start)
		if err != nil {
			return nil, err
		}
		normalized, err := availability.ValidateBooking(policy, engineReq, slotsOf(existing))
		if err != nil {
			return nil, err
		}

		b := &Booking{
			ProviderID:    req.ProviderID,
			PatientID:     req.PatientID,
			StartTime:     normalized,
			Price:         price,
			PaymentStatus: payment,
			Status:        status,
			Notes:         req.Notes,
		}
		err = s.bookings.Create(ctx, b)
		if err == nil {
			return s.bookings.GetByID(ctx, b.ID)
		}
		if !errors.Is(err, ErrSlotConflict) {
			return nil, err
		}
	}
	return nil, availability.Reject(availability.ReasonSlotTaken)
}

// Reschedule moves a booking to a new instant, running the same validation
// as Book but exempting the booking's own current slot.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, fmt.Errorf("%w: cannot reschedule a %s booking", ErrInvalidTransition, b.Status)
	}

	start, err := s.combine(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	policy, err := s.providers.GetPolicy(ctx, b.ProviderID)
	if err != nil {
		return nil, err
	}
	policy = s.applySlotMinutes(policy)

	engineReq := availability.Request{
		ProviderID:   b.ProviderID,
		PatientID:    b.PatientID,
		StartTime:    start,
		RescheduleOf: b.ID,
	}

	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.bookings.ListByProviderAndDate(ctx, b.ProviderID, start)
		if err != nil {
			return nil, err
		}
		normalized, err := availability.ValidateBooking(policy, engineReq, slotsOf(existing))
		if err != nil {
			return nil, err
		}

		err = s.bookings.Reschedule(ctx, id, normalized)
		if err == nil {
			return s.bookings.GetByID(ctx, id)
		}
		if !errors.Is(err, ErrSlotConflict) {
			return nil, err
		}
	}
	return nil, availability.Reject(availability.ReasonSlotTaken)
}

// ChangeStatus applies a lifecycle transition.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, to Status) (*Booking, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, to)
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	if err := s.bookings.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// Cancel marks the booking cancelled, which frees its slot.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.ChangeStatus(ctx, id, StatusCancelled)
}

// RecordPayment updates the payment state.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, payment PaymentStatus) (*Booking, error) {
	if !payment.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, payment)
	}
	if err := s.bookings.UpdatePayment(ctx, id, payment); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// UpdateNotes replaces the booking's free-form notes.
func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (*Booking, error) {
	if err := s.bookings.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Booking, int, error) {
	return s.bookings.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	return s.bookings.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	return s.bookings.ListByProvider(ctx, providerID, limit, offset)
}

// Delete hard-deletes a booking. Administrative cleanup only; normal flows
// cancel instead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookings.Delete(ctx, id)
}
