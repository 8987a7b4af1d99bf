package availability

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:00", want: TimeOfDay{Hour: 8}},
		{in: "17:30", want: TimeOfDay{Hour: 17, Minute: 30}},
		{in: "00:00", want: TimeOfDay{}},
		{in: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		// seconds are truncated, not rejected
		{in: "09:15:45", want: TimeOfDay{Hour: 9, Minute: 15}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayOn(t *testing.T) {
	date := time.Date(2025, 6, 11, 15, 42, 7, 0, time.UTC)
	got := TimeOfDay{Hour: 8, Minute: 30}.On(date)
	want := time.Date(2025, 6, 11, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestCoversWeekday_NonWrapping(t *testing.T) {
	// Monday through Friday
	p := Policy{FromWeekday: time.Monday, ToWeekday: time.Friday}

	for w := time.Monday; w <= time.Friday; w++ {
		if !p.CoversWeekday(w) {
			t.Errorf("expected %v to be covered", w)
		}
	}
	for _, w := range []time.Weekday{time.Sunday, time.Saturday} {
		if p.CoversWeekday(w) {
			t.Errorf("expected %v to be outside the range", w)
		}
	}
}

func TestCoversWeekday_Wrapping(t *testing.T) {
	// Friday through Monday, wrapping the week boundary
	p := Policy{FromWeekday: time.Friday, ToWeekday: time.Monday}

	for _, w := range []time.Weekday{time.Friday, time.Saturday, time.Sunday, time.Monday} {
		if !p.CoversWeekday(w) {
			t.Errorf("expected %v to be covered by wraparound range", w)
		}
	}
	for _, w := range []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday} {
		if p.CoversWeekday(w) {
			t.Errorf("expected %v to be outside the wraparound range", w)
		}
	}
}

func TestCoversWeekday_SingleDay(t *testing.T) {
	p := Policy{FromWeekday: time.Wednesday, ToWeekday: time.Wednesday}
	if !p.CoversWeekday(time.Wednesday) {
		t.Error("expected Wednesday to be covered")
	}
	if p.CoversWeekday(time.Thursday) {
		t.Error("expected Thursday to be outside a single-day range")
	}
}

func TestCoversTime(t *testing.T) {
	p := Policy{
		FromTime: TimeOfDay{Hour: 8},
		ToTime:   TimeOfDay{Hour: 18},
	}

	cases := []struct {
		tod  TimeOfDay
		want bool
	}{
		{TimeOfDay{Hour: 8}, true},             // start inclusive
		{TimeOfDay{Hour: 17, Minute: 59}, true},
		{TimeOfDay{Hour: 18}, false},           // end exclusive
		{TimeOfDay{Hour: 7, Minute: 59}, false},
		{TimeOfDay{Hour: 23}, false},
	}
	for _, tc := range cases {
		if got := p.CoversTime(tc.tod); got != tc.want {
			t.Errorf("CoversTime(%v) = %v, want %v", tc.tod, got, tc.want)
		}
	}
}

func TestPolicyValidate(t *testing.T) {
	valid := Policy{
		FromWeekday: time.Monday,
		ToWeekday:   time.Friday,
		FromTime:    TimeOfDay{Hour: 8},
		ToTime:      TimeOfDay{Hour: 18},
		SlotMinutes: 30,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid policy rejected: %v", err)
	}

	overnight := valid
	overnight.FromTime = TimeOfDay{Hour: 22}
	overnight.ToTime = TimeOfDay{Hour: 6}
	if err := overnight.Validate(); err == nil {
		t.Error("expected overnight window to be rejected")
	}

	empty := valid
	empty.ToTime = empty.FromTime
	if err := empty.Validate(); err == nil {
		t.Error("expected empty window to be rejected")
	}
}
