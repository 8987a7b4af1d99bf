package clock

import "time"

// Clock supplies the current instant. Services take a Clock instead of
// calling time.Now so tests can pin "today".
type Clock interface {
	Now() time.Time
}

// System is the real clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
