package availability

import (
	"time"

	"github.com/google/uuid"
)

// Reason identifies why a booking request was rejected. Each reason maps to
// its own user-facing message so the caller can tell the user exactly what
// to change.
type Reason string

const (
	ReasonOutsideWorkingDays  Reason = "outside_working_days"
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonSlotTaken           Reason = "slot_taken"
)

var reasonMessages = map[Reason]string{
	ReasonOutsideWorkingDays:  "the provider does not work on the requested day",
	ReasonOutsideWorkingHours: "the requested time is outside the provider's working hours",
	ReasonSlotTaken:           "the requested time slot is already booked",
}

// Rejection is the typed result of a failed booking validation. It is an
// error value so it travels through ordinary error returns, but callers are
// expected to branch on Reason rather than treat it as a failure of the
// process.
type Rejection struct {
	Reason Reason
}

func (r *Rejection) Error() string {
	if msg, ok := reasonMessages[r.Reason]; ok {
		return msg
	}
	return string(r.Reason)
}

// Reject returns the rejection for the given reason.
func Reject(reason Reason) *Rejection { return &Rejection{Reason: reason} }

// BookedSlot is the engine's view of a persisted booking: just enough to
// decide whether an instant is occupied. Cancelled bookings never occupy
// their slot.
type BookedSlot struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	StartTime  time.Time
	Cancelled  bool
}

// Request is a proposed booking, with date and time already combined into a
// single instant. RescheduleOf carries the id of the booking being edited,
// or uuid.Nil for a new booking; the edited booking's own slot does not
// count as occupied.
type Request struct {
	ProviderID   uuid.UUID
	PatientID    uuid.UUID
	StartTime    time.Time
	RescheduleOf uuid.UUID
}

// GenerateSlots computes the bookable instants for a provider on a calendar
// date: every SlotMinutes step from FromTime up to but excluding ToTime,
// minus instants held by a live booking. Callers have historically been
// inconsistent about pre-filtering, so existing bookings are filtered here
// by provider and date regardless. The result is ordered ascending; an
// empty result is a normal outcome, not an error.
func GenerateSlots(policy Policy, providerID uuid.UUID, date time.Time, existing []BookedSlot, exclude uuid.UUID) []time.Time {
	if !policy.CoversWeekday(date.Weekday()) {
		return nil
	}

	occupied := occupiedInstants(providerID, date, existing, exclude)
	step := time.Duration(policy.slotMinutes()) * time.Minute

	var slots []time.Time
	for t := policy.FromTime.On(date); TimeOfDayOf(t).Before(policy.ToTime); t = t.Add(step) {
		if !occupied[t.Unix()] {
			slots = append(slots, t)
		}
	}
	return slots
}

// ValidateBooking decides whether a booking request is acceptable under the
// policy and the provider's existing bookings. Checks run in order: weekday,
// time of day, collision. On success it returns the normalized
// (seconds-truncated) instant to persist; on failure the error is a
// *Rejection carrying the reason. The function is pure; persistence and
// the authoritative uniqueness constraint remain the caller's concern.
func ValidateBooking(policy Policy, req Request, existing []BookedSlot) (time.Time, error) {
	start := normalize(req.StartTime)

	if !policy.CoversWeekday(start.Weekday()) {
		return time.Time{}, Reject(ReasonOutsideWorkingDays)
	}
	if !policy.CoversTime(TimeOfDayOf(start)) {
		return time.Time{}, Reject(ReasonOutsideWorkingHours)
	}

	occupied := occupiedInstants(req.ProviderID, start, existing, req.RescheduleOf)
	if occupied[start.Unix()] {
		return time.Time{}, Reject(ReasonSlotTaken)
	}
	return start, nil
}

// occupiedInstants collects the normalized instants held by live bookings
// for the given provider on the given calendar date, excluding the booking
// being edited.
func occupiedInstants(providerID uuid.UUID, date time.Time, existing []BookedSlot, exclude uuid.UUID) map[int64]bool {
	occupied := make(map[int64]bool, len(existing))
	for _, b := range existing {
		if b.Cancelled || b.ProviderID != providerID {
			continue
		}
		if exclude != uuid.Nil && b.ID == exclude {
			continue
		}
		start := normalize(b.StartTime).In(date.Location())
		if !sameDate(start, date) {
			continue
		}
		occupied[start.Unix()] = true
	}
	return occupied
}

// normalize truncates an instant to minute granularity.
func normalize(t time.Time) time.Time { return t.Truncate(time.Minute) }

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
