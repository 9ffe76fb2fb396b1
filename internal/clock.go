package internal

import "time"

// Clock is the single time source shared by the limiter and the OTP store.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading, so
// elapsed-time comparisons are immune to wall-clock steps.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockOrSystem returns c, or SystemClock when c is nil.
func ClockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}
