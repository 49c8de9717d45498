package driver

import (
	"time"

	"github.com/vhive-serverless/cpubench/pkg/common"
)

// Clock returns a monotonic reading relative to an arbitrary fixed origin.
type Clock interface {
	Now() (time.Duration, error)
}

type MonotonicClock struct {
	origin time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now relies on the monotonic component that time.Now attaches, so wall
// clock adjustments do not leak into the measurements.
func (c *MonotonicClock) Now() (time.Duration, error) {
	return time.Since(c.origin), nil
}

// ClockError matches common.ErrClockFailure and unwraps to the clock's own
// error.
type ClockError struct {
	Cause error
}

func (e *ClockError) Error() string {
	return common.ErrClockFailure.Error() + ": " + e.Cause.Error()
}

func (e *ClockError) Is(target error) bool {
	return target == common.ErrClockFailure
}

func (e *ClockError) Unwrap() error {
	return e.Cause
}
