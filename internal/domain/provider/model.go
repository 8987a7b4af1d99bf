package provider

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinio/clinio/internal/domain/availability"
)

// Provider maps to the providers table. Working hours are stored as an
// inclusive weekday range plus "HH:MM" wall-clock bounds, exactly as the
// scheduling engine consumes them.
type Provider struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"full_name"`
	Specialty   *string   `db:"specialty" json:"specialty,omitempty"`
	Price       float64   `db:"price" json:"price"`
	FromWeekday int       `db:"from_weekday" json:"from_weekday"`
	ToWeekday   int       `db:"to_weekday" json:"to_weekday"`
	FromTime    string    `db:"from_time" json:"from_time"`
	ToTime      string    `db:"to_time" json:"to_time"`
	Active      *bool     `db:"active" json:"active,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Policy converts the stored working-hours columns into the engine's policy
// value, validating them on the way out so a bad row surfaces as an error
// instead of silently producing no slots.
func (p *Provider) Policy() (availability.Policy, error) {
	from, err := availability.ParseTimeOfDay(p.FromTime)
	if err != nil {
		return availability.Policy{}, fmt.Errorf("provider %s from_time: %w", p.ID, err)
	}
	to, err := availability.ParseTimeOfDay(p.ToTime)
	if err != nil {
		return availability.Policy{}, fmt.Errorf("provider %s to_time: %w", p.ID, err)
	}
	policy := availability.Policy{
		FromWeekday: time.Weekday(p.FromWeekday),
		ToWeekday:   time.Weekday(p.ToWeekday),
		FromTime:    from,
		ToTime:      to,
		SlotMinutes: availability.DefaultSlotMinutes,
	}
	if err := policy.Validate(); err != nil {
		return availability.Policy{}, fmt.Errorf("provider %s policy: %w", p.ID, err)
	}
	return policy, nil
}

// PolicyUpdate carries the editable working-hours fields.
type PolicyUpdate struct {
	FromWeekday int    `json:"from_weekday"`
	ToWeekday   int    `json:"to_weekday"`
	FromTime    string `json:"from_time" validate:"required"`
	ToTime      string `json:"to_time" validate:"required"`
}

// Validate parses and checks the update as an engine policy.
func (u PolicyUpdate) Validate() error {
	from, err := availability.ParseTimeOfDay(u.FromTime)
	if err != nil {
		return err
	}
	to, err := availability.ParseTimeOfDay(u.ToTime)
	if err != nil {
		return err
	}
	policy := availability.Policy{
		FromWeekday: time.Weekday(u.FromWeekday),
		ToWeekday:   time.Weekday(u.ToWeekday),
		FromTime:    from,
		ToTime:      to,
		SlotMinutes: availability.DefaultSlotMinutes,
	}
	return policy.Validate()
}
