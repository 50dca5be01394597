package ports

import "time"

// Clock abstracts wall-clock time so timestamps in the domain are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now returns the function's current time.
func (f ClockFunc) Now() time.Time {
	return f()
}
