// Package clock abstracts the current time behind a small interface so that
// business logic can be tested with a deterministic clock.
package clock

import "time"

// Clocker provides the current time.
type Clocker interface {
	Now() time.Time
}

// System is the production Clocker backed by time.Now.
type System struct{}

// New returns a System clock.
func New() *System {
	return &System{}
}

// Now returns the current system time.
func (*System) Now() time.Time {
	return time.Now()
}

// Static is a Clocker that always returns the same instant. Test helper.
type Static struct {
	// At is the instant returned by Now.
	At time.Time
}

// Now returns the configured instant.
func (s Static) Now() time.Time {
	return s.At
}
