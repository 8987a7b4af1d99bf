package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSlotMinutes is the clinic-wide appointment slot granularity.
const DefaultSlotMinutes = 30

// TimeOfDay is a wall-clock time at minute granularity. Seconds are always
// truncated, both when parsing and when reading from a time.Time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (or "HH:MM:SS", seconds ignored).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// TimeOfDayOf extracts the wall-clock time from t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int { return t.Hour*60 + t.Minute }

// Before reports whether t is strictly earlier in the day than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes() < o.minutes() }

// On places the wall-clock time onto the given calendar date, in the
// date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// Policy is a provider's recurring weekly availability window: an inclusive
// weekday range (which may wrap across the week boundary, e.g. Friday through
// Monday) and an inclusive-start/exclusive-end working window on each
// eligible day.
type Policy struct {
	FromWeekday time.Weekday
	ToWeekday   time.Weekday
	FromTime    TimeOfDay
	ToTime      TimeOfDay
	SlotMinutes int
}

// Validate checks the policy invariants. Overnight windows (ToTime at or
// before FromTime) are not supported.
func (p Policy) Validate() error {
	if p.FromWeekday < time.Sunday || p.FromWeekday > time.Saturday {
		return fmt.Errorf("from_weekday out of range: %d", p.FromWeekday)
	}
	if p.ToWeekday < time.Sunday || p.ToWeekday > time.Saturday {
		return fmt.Errorf("to_weekday out of range: %d", p.ToWeekday)
	}
	if !p.FromTime.Before(p.ToTime) {
		return fmt.Errorf("working window %s-%s is empty or crosses midnight", p.FromTime, p.ToTime)
	}
	if p.SlotMinutes < 0 {
		return fmt.Errorf("slot minutes must not be negative, got %d", p.SlotMinutes)
	}
	return nil
}

// CoversWeekday reports whether the weekday falls inside the policy's range.
// When FromWeekday > ToWeekday the range wraps the week boundary, so the two
// bounds are tested disjunctively instead.
func (p Policy) CoversWeekday(w time.Weekday) bool {
	if p.FromWeekday <= p.ToWeekday {
		return w >= p.FromWeekday && w <= p.ToWeekday
	}
	return w >= p.FromWeekday || w <= p.ToWeekday
}

// CoversTime reports whether the wall-clock time falls inside the working
// window. The start is inclusive, the end exclusive.
func (p Policy) CoversTime(t TimeOfDay) bool {
	return !t.Before(p.FromTime) && t.Before(p.ToTime)
}

func (p Policy) slotMinutes() int {
	if p.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return p.SlotMinutes
}
