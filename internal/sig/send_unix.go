//go:build linux || darwin

package sig

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/Paintersrp/sysq/internal/proc"
)

var signals = map[Signal]unix.Signal{
	Interrupt: unix.SIGINT,
	Terminate: unix.SIGTERM,
	Kill:      unix.SIGKILL,
}

// send maps the portable signal onto kill(2). A group target is addressed as
// the negated group id, which the kernel fans out to every current member.
func send(target Target, signal Signal) error {
	sig, ok := signals[signal]
	if !ok {
		return fmt.Errorf("signal %v: %w", signal, proc.ErrUnsupported)
	}

	pid := int(target.id)
	if target.group {
		pid = -pid
	}

	err := unix.Kill(pid, sig)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ESRCH):
		return fmt.Errorf("%v %v: %w", target.kind(), target.id, proc.ErrNotFound)
	case errors.Is(err, unix.EPERM):
		return fmt.Errorf("%v %v: %w", target.kind(), target.id, proc.ErrPermissionDenied)
	default:
		return fmt.Errorf("signal %v %v: %w", target.kind(), target.id, err)
	}
}
