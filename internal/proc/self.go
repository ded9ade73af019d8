package proc

import (
	"os"
	"time"
)

// Self returns a snapshot of the calling process. The calling process always
// exists and can read itself, so Self degrades to an identity-only snapshot
// instead of failing if the platform inspector reports an error.
func Self() Snapshot {
	pid := Pid(os.Getpid())
	snap, err := Get(pid)
	if err == nil {
		return snap
	}

	name := ""
	if exe, err := os.Executable(); err == nil {
		name = exe
	}
	return Snapshot{
		PID:        pid,
		Name:       name,
		Cmdline:    os.Args,
		Status:     StatusRunning,
		SampleTime: time.Now(),
	}
}

// Limit is one resource ceiling of the calling process.
type Limit struct {
	Current uint64
	Max     uint64
}

// Limits collects the calling process's resource ceilings that a shell wants
// to warn about before exhausting them. Read-only; this package never alters
// limits.
type Limits struct {
	// OpenFiles is the ceiling on simultaneously open file descriptors.
	OpenFiles Limit

	// AddressSpace is the ceiling on total virtual memory, when enforced.
	AddressSpace Limit
}

// SelfLimits reports the calling process's resource limits. Platforms without
// a limit model return ErrUnsupported.
func SelfLimits() (Limits, error) {
	return selfLimits()
}
