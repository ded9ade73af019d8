// Package proc provides an OS-neutral view of running processes: point-in-time
// snapshots, resource sampling between two snapshots, and access to the calling
// process's own state. Each supported operating system contributes its own
// inspector implementation, selected at build time; callers see one contract.
//
// Field availability differs by platform and by caller privilege. Every
// Snapshot field that any supported OS may be unable to produce is a pointer;
// nil means "not available", which is distinct from zero and must be preserved
// by consumers.
package proc

import (
	"strconv"
	"time"
)

// Pid identifies a process. The operating system reuses identifiers after a
// process exits, so a Pid is only meaningful for as long as the process it was
// observed on is alive.
type Pid int

func (p Pid) String() string {
	return strconv.Itoa(int(p))
}

// Status classifies a process's scheduling state. Native states that do not
// map onto one of the named values are reported as StatusUnknown; an
// unclassifiable state is never an error.
type Status string

const (
	StatusRunning  Status = "running"
	StatusSleeping Status = "sleeping"
	StatusStopped  Status = "stopped"
	StatusZombie   Status = "zombie"
	StatusUnknown  Status = "unknown"
)

// Snapshot captures one process's attributes at a single instant. Snapshots
// are plain values: they hold no OS handle and are never mutated after the
// inspector returns them.
type Snapshot struct {
	PID       Pid
	ParentPid *Pid

	Name    string
	Cmdline []string

	Status Status
	Owner  *string

	StartTime *time.Time

	// UserTime and SystemTime are cumulative since process start.
	UserTime   time.Duration
	SystemTime time.Duration

	ResidentBytes uint64
	VirtualBytes  *uint64

	ThreadCount *int

	// SampleTime is the wall-clock instant the snapshot was taken. It is
	// always set and orders two snapshots of the same pid for sampling.
	SampleTime time.Time
}

// CPUTime returns the total cumulative CPU time consumed by the process.
func (s Snapshot) CPUTime() time.Duration {
	return s.UserTime + s.SystemTime
}
