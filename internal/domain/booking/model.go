package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinio/clinio/internal/domain/availability"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusPending: true, StatusConfirmed: true,
	StatusCompleted: true, StatusCancelled: true,
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool { return validStatuses[s] }

// Terminal reports whether s admits no further transitions. A cancelled
// booking can only be replaced by creating a new one; a completed booking
// is closed for billing.
func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusCancelled }

// CanTransition reports whether the lifecycle permits moving from one state
// to another: any live state may be cancelled, and pending or confirmed
// bookings may be confirmed or completed.
func CanTransition(from, to Status) bool {
	if from.Terminal() || !to.Valid() {
		return false
	}
	switch to {
	case StatusCancelled:
		return true
	case StatusConfirmed:
		return from == StatusPending
	case StatusCompleted:
		return from == StatusPending || from == StatusConfirmed
	}
	return false
}

// PaymentStatus tracks whether the consultation has been paid for.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var validPayments = map[PaymentStatus]bool{
	PaymentUnpaid: true, PaymentPaid: true, PaymentRefunded: true,
}

func (p PaymentStatus) Valid() bool { return validPayments[p] }

// Booking maps to the bookings table. An appointment occupies a single
// instant; its duration is implicitly one slot.
type Booking struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	ProviderID    uuid.UUID     `db:"provider_id" json:"provider_id"`
	PatientID     uuid.UUID     `db:"patient_id" json:"patient_id"`
	StartTime     time.Time     `db:"start_time" json:"start_time"`
	Price         float64       `db:"price" json:"price"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	Status        Status        `db:"status" json:"status"`
	Notes         *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Slot projects the booking into the availability engine's view.
func (b *Booking) Slot() availability.BookedSlot {
	return availability.BookedSlot{
		ID:         b.ID,
		ProviderID: b.ProviderID,
		StartTime:  b.StartTime,
		Cancelled:  b.Status == StatusCancelled,
	}
}

func slotsOf(bookings []*Booking) []availability.BookedSlot {
	slots := make([]availability.BookedSlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, b.Slot())
	}
	return slots
}
