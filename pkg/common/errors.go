package common

import "github.com/pkg/errors"

var (
	ErrZeroSeed             = errors.New("xorshift32 seed must be non-zero")
	ErrInvalidConfiguration = errors.New("invalid benchmark configuration")
	ErrClockFailure         = errors.New("monotonic clock read failed")
	ErrDigestMismatch       = errors.New("digest differs between repeats")
)
