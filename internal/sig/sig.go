// Package sig delivers control signals to a process or process group in an
// OS-appropriate way. On platforms with a native signal model the mapping is
// direct; elsewhere interrupts become console control events and termination
// falls back to ending each member of the target group individually.
//
// A target that no longer exists at send time yields proc.ErrNotFound. That
// is the ordinary race of job control, and callers treat it as "already
// gone" rather than a failure.
package sig

import "github.com/Paintersrp/sysq/internal/proc"

// Signal names the portable control semantics a shell needs. Interrupt asks
// politely (Ctrl-C semantics), Terminate requests shutdown, Kill is not
// catchable by the target.
type Signal int

const (
	Interrupt Signal = iota
	Terminate
	Kill
)

func (s Signal) String() string {
	switch s {
	case Interrupt:
		return "interrupt"
	case Terminate:
		return "terminate"
	case Kill:
		return "kill"
	default:
		return "unknown"
	}
}

// Target addresses either a single process or a whole process group. The two
// identifier spaces must never be confused, so the distinction is carried
// explicitly instead of being encoded in the sign of a number.
type Target struct {
	id    proc.Pid
	group bool
}

// Process targets one process.
func Process(pid proc.Pid) Target {
	return Target{id: pid}
}

// Group targets every current member of a process group. Membership is
// resolved at send time, not when the Target is built.
func Group(pgid proc.Pid) Target {
	return Target{id: pgid, group: true}
}

// Pid returns the process or group identifier the target addresses.
func (t Target) Pid() proc.Pid {
	return t.id
}

// IsGroup reports whether the target addresses a process group.
func (t Target) IsGroup() bool {
	return t.group
}

func (t Target) kind() string {
	if t.group {
		return "process group"
	}
	return "process"
}

// Send delivers the signal to the target. proc.ErrNotFound reports the target
// was already gone; proc.ErrPermissionDenied that the caller may not signal
// it; proc.ErrUnsupported that the platform cannot express the request.
func Send(target Target, signal Signal) error {
	if target.id <= 0 {
		return proc.ErrNotFound
	}
	return send(target, signal)
}
