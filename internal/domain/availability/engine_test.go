package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func weekdayPolicy() Policy {
	return Policy{
		FromWeekday: time.Monday,
		ToWeekday:   time.Friday,
		FromTime:    TimeOfDay{Hour: 8},
		ToTime:      TimeOfDay{Hour: 18},
		SlotMinutes: 30,
	}
}

// aWednesday is 2025-06-11, a Wednesday.
func aWednesday() time.Time {
	return time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected *Rejection, got %v", err)
	}
	return rej.Reason
}

func TestGenerateSlots_FullDay(t *testing.T) {
	provider := uuid.New()
	slots := GenerateSlots(weekdayPolicy(), provider, aWednesday(), nil, uuid.Nil)

	if len(slots) != 20 {
		t.Fatalf("expected 20 slots for 08:00-18:00 at 30m, got %d", len(slots))
	}
	first := time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)
	last := time.Date(2025, 6, 11, 17, 30, 0, 0, time.UTC)
	if !slots[0].Equal(first) {
		t.Errorf("first slot = %v, want %v", slots[0], first)
	}
	if !slots[len(slots)-1].Equal(last) {
		t.Errorf("last slot = %v, want %v (18:00 must be excluded)", slots[len(slots)-1], last)
	}
	for i := 1; i < len(slots); i++ {
		if got := slots[i].Sub(slots[i-1]); got != 30*time.Minute {
			t.Fatalf("slots %d and %d are %v apart, want 30m", i-1, i, got)
		}
	}
}

func TestGenerateSlots_OffDay(t *testing.T) {
	provider := uuid.New()
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	if slots := GenerateSlots(weekdayPolicy(), provider, sunday, nil, uuid.Nil); len(slots) != 0 {
		t.Errorf("expected no slots on an off day, got %d", len(slots))
	}
}

func TestGenerateSlots_SkipsBookedInstant(t *testing.T) {
	provider := uuid.New()
	nineAM := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	existing := []BookedSlot{
		{ID: uuid.New(), ProviderID: provider, StartTime: nineAM},
	}

	slots := GenerateSlots(weekdayPolicy(), provider, aWednesday(), existing, uuid.Nil)
	if len(slots) != 19 {
		t.Fatalf("expected 19 slots with one booked, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Equal(nineAM) {
			t.Fatal("booked 09:00 slot must not be offered")
		}
	}
}

func TestGenerateSlots_CancelledBookingFreesSlot(t *testing.T) {
	provider := uuid.New()
	nineAM := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	existing := []BookedSlot{
		{ID: uuid.New(), ProviderID: provider, StartTime: nineAM, Cancelled: true},
	}

	slots := GenerateSlots(weekdayPolicy(), provider, aWednesday(), existing, uuid.Nil)
	if len(slots) != 20 {
		t.Fatalf("expected cancelled booking to free its slot, got %d slots", len(slots))
	}
}

func TestGenerateSlots_FiltersOtherProvidersAndDates(t *testing.T) {
	provider := uuid.New()
	nineAM := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	existing := []BookedSlot{
		// same instant, different provider
		{ID: uuid.New(), ProviderID: uuid.New(), StartTime: nineAM},
		// same provider, previous day; callers sometimes pass unfiltered sets
		{ID: uuid.New(), ProviderID: provider, StartTime: nineAM.AddDate(0, 0, -1)},
	}

	slots := GenerateSlots(weekdayPolicy(), provider, aWednesday(), existing, uuid.Nil)
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d: other providers and dates must not occupy", len(slots))
	}
}

func TestGenerateSlots_ExcludesEditedBooking(t *testing.T) {
	provider := uuid.New()
	editing := uuid.New()
	nineAM := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	existing := []BookedSlot{
		{ID: editing, ProviderID: provider, StartTime: nineAM},
	}

	slots := GenerateSlots(weekdayPolicy(), provider, aWednesday(), existing, editing)
	found := false
	for _, s := range slots {
		if s.Equal(nineAM) {
			found = true
		}
	}
	if !found {
		t.Error("the edited booking's own slot must remain available")
	}
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	provider := uuid.New()
	existing := []BookedSlot{
		{ID: uuid.New(), ProviderID: provider, StartTime: time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC)},
	}

	first := GenerateSlots(weekdayPolicy(), provider, aWednesday(), existing, uuid.Nil)
	second := GenerateSlots(weekdayPolicy(), provider, aWednesday(), existing, uuid.Nil)
	if len(first) != len(second) {
		t.Fatalf("repeated calls disagree: %d vs %d slots", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("slot %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestValidateBooking_BeforeOpening(t *testing.T) {
	provider := uuid.New()
	req := Request{
		ProviderID: provider,
		PatientID:  uuid.New(),
		StartTime:  time.Date(2025, 6, 11, 7, 30, 0, 0, time.UTC),
	}

	_, err := ValidateBooking(weekdayPolicy(), req, nil)
	if got := reasonOf(t, err); got != ReasonOutsideWorkingHours {
		t.Errorf("reason = %v, want %v", got, ReasonOutsideWorkingHours)
	}
}

func TestValidateBooking_AtClosing(t *testing.T) {
	req := Request{
		ProviderID: uuid.New(),
		PatientID:  uuid.New(),
		StartTime:  time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC),
	}

	_, err := ValidateBooking(weekdayPolicy(), req, nil)
	if got := reasonOf(t, err); got != ReasonOutsideWorkingHours {
		t.Errorf("reason = %v, want %v", got, ReasonOutsideWorkingHours)
	}
}

func TestValidateBooking_OffDay(t *testing.T) {
	req := Request{
		ProviderID: uuid.New(),
		PatientID:  uuid.New(),
		// 2025-06-08 is a Sunday
		StartTime: time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC),
	}

	_, err := ValidateBooking(weekdayPolicy(), req, nil)
	if got := reasonOf(t, err); got != ReasonOutsideWorkingDays {
		t.Errorf("reason = %v, want %v", got, ReasonOutsideWorkingDays)
	}
}

func TestValidateBooking_Collision(t *testing.T) {
	provider := uuid.New()
	nineAM := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	existing := []BookedSlot{
		{ID: uuid.New(), ProviderID: provider, StartTime: nineAM},
	}
	req := Request{ProviderID: provider, PatientID: uuid.New(), StartTime: nineAM}

	_, err := ValidateBooking(weekdayPolicy(), req, existing)
	if got := reasonOf(t, err); got != ReasonSlotTaken {
		t.Errorf("reason = %v, want %v", got, ReasonSlotTaken)
	}
}

func TestValidateBooking_CancelledCollisionAccepted(t *testing.T) {
	provider := uuid.New()
	nineAM := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	existing := []BookedSlot{
		{ID: uuid.New(), ProviderID: provider, StartTime: nineAM, Cancelled: true},
	}
	req := Request{ProviderID: provider, PatientID: uuid.New(), StartTime: nineAM}

	start, err := ValidateBooking(weekdayPolicy(), req, existing)
	if err != nil {
		t.Fatalf("expected cancelled booking's slot to be accepted: %v", err)
	}
	if !start.Equal(nineAM) {
		t.Errorf("accepted instant = %v, want %v", start, nineAM)
	}
}

func TestValidateBooking_SelfCollisionExcluded(t *testing.T) {
	provider := uuid.New()
	editing := uuid.New()
	nineAM := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	existing := []BookedSlot{
		{ID: editing, ProviderID: provider, StartTime: nineAM},
	}
	req := Request{
		ProviderID:   provider,
		PatientID:    uuid.New(),
		StartTime:    nineAM,
		RescheduleOf: editing,
	}

	if _, err := ValidateBooking(weekdayPolicy(), req, existing); err != nil {
		t.Errorf("resubmitting a booking's own slot must be accepted, got %v", err)
	}
}

func TestValidateBooking_TruncatesSeconds(t *testing.T) {
	req := Request{
		ProviderID: uuid.New(),
		PatientID:  uuid.New(),
		StartTime:  time.Date(2025, 6, 11, 9, 0, 42, 500, time.UTC),
	}

	start, err := ValidateBooking(weekdayPolicy(), req, nil)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	want := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("normalized instant = %v, want %v", start, want)
	}
}

func TestBookingScenario_EndToEnd(t *testing.T) {
	provider := uuid.New()
	policy := weekdayPolicy()
	day := aWednesday()

	slots := GenerateSlots(policy, provider, day, nil, uuid.Nil)
	if len(slots) != 20 {
		t.Fatalf("expected 20 open slots, got %d", len(slots))
	}
	eightAM := time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)
	if !slots[0].Equal(eightAM) {
		t.Fatalf("first slot = %v, want %v", slots[0], eightAM)
	}

	first := Request{ProviderID: provider, PatientID: uuid.New(), StartTime: eightAM}
	start, err := ValidateBooking(policy, first, nil)
	if err != nil {
		t.Fatalf("first booking rejected: %v", err)
	}

	booked := []BookedSlot{{ID: uuid.New(), ProviderID: provider, StartTime: start}}
	second := Request{ProviderID: provider, PatientID: uuid.New(), StartTime: eightAM}
	_, err = ValidateBooking(policy, second, booked)
	if got := reasonOf(t, err); got != ReasonSlotTaken {
		t.Errorf("second booking reason = %v, want %v", got, ReasonSlotTaken)
	}
}
