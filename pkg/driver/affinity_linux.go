//go:build linux

package driver

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// pinToCPU locks the calling goroutine to its thread and restricts the thread
// to a single CPU. The returned function restores the previous affinity.
func pinToCPU(cpu int) (func(), error) {
	runtime.LockOSThread()

	var previous unix.CPUSet
	if err := unix.SchedGetaffinity(0, &previous); err != nil {
		runtime.UnlockOSThread()
		return nil, errors.Wrap(err, "reading CPU affinity")
	}

	var cpuset unix.CPUSet
	cpuset.Set(cpu)
	if err := unix.SchedSetaffinity(0, &cpuset); err != nil {
		runtime.UnlockOSThread()
		return nil, errors.Wrapf(err, "setting CPU affinity to %d", cpu)
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &previous)
		runtime.UnlockOSThread()
	}, nil
}
