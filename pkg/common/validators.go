package common

import "github.com/pkg/errors"

func CheckSeed(seed uint32) error {
	if seed == 0 {
		return errors.Wrap(ErrInvalidConfiguration, ErrZeroSeed.Error())
	}
	return nil
}

func CheckIterations(name string, n uint64) error {
	if n == 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "%s must be positive", name)
	}
	return nil
}

func CheckRepeats(warmup, repeats int) error {
	if warmup < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "warmup must not be negative, got %d", warmup)
	}
	if repeats <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "repeats must be positive, got %d", repeats)
	}
	return nil
}

// Validate reports the first invalid field. Nothing is timed before it passes.
func (p RunParameters) Validate() error {
	if err := CheckSeed(p.Seed); err != nil {
		return err
	}
	if err := CheckIterations("n1", p.N1); err != nil {
		return err
	}
	if err := CheckIterations("n2", p.N2); err != nil {
		return err
	}
	return CheckRepeats(p.Warmup, p.Repeats)
}
