package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no booking exists for the given id.
var ErrNotFound = errors.New("booking not found")

// ErrSlotConflict is returned by Create and Reschedule when the database
// uniqueness constraint on (provider_id, start_time) for non-cancelled
// bookings fires. It signals a race lost after the optimistic validation
// passed; the service translates it into a slot-taken rejection after a
// fresh re-read.
var ErrSlotConflict = errors.New("another booking holds this slot")

// Repository is the persisted booking store.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// ListByProviderAndDate returns all bookings, in any lifecycle state,
	// for the provider on the calendar date containing the given instant.
	ListByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*Booking, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Booking, int, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*Booking, int, error)
	List(ctx context.Context, limit, offset int) ([]*Booking, int, error)
	Reschedule(ctx context.Context, id uuid.UUID, start time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdatePayment(ctx context.Context, id uuid.UUID, payment PaymentStatus) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) error
	// Delete removes the row entirely. Normal flows cancel instead; this
	// exists for administrative cleanup.
	Delete(ctx context.Context, id uuid.UUID) error
}
