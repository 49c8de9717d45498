//go:build !linux

package driver

import "github.com/pkg/errors"

func pinToCPU(cpu int) (func(), error) {
	return nil, errors.Errorf("pinning to CPU %d is only supported on Linux", cpu)
}
