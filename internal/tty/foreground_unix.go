//go:build linux || darwin

package tty

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/Paintersrp/sysq/internal/proc"
)

// Open acquires the calling process's controlling terminal. It fails when the
// process has none (daemonized, or run with a detached stdio).
func Open() (*Terminal, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open controlling terminal: %w", err)
	}
	return &Terminal{f: f, owned: true}, nil
}

// Foreground returns the process group currently granted control of the
// terminal, or nil when the descriptor has no foreground group (not a
// terminal, or the terminal is detached from any session).
func (t *Terminal) Foreground() (*proc.Pid, error) {
	pgid, err := unix.IoctlGetInt(int(t.f.Fd()), unix.TIOCGPGRP)
	switch {
	case err == nil:
		group := proc.Pid(pgid)
		return &group, nil
	case errors.Is(err, unix.ENOTTY), errors.Is(err, unix.ENXIO):
		return nil, nil
	default:
		return nil, fmt.Errorf("query foreground group: %w", err)
	}
}

// SetForeground transfers control of the terminal to the given process group.
// The caller's process must belong to the terminal's session.
func (t *Terminal) SetForeground(group proc.Pid) error {
	if group <= 0 {
		return fmt.Errorf("process group %d: %w", group, proc.ErrNotFound)
	}
	err := unix.IoctlSetPointerInt(int(t.f.Fd()), unix.TIOCSPGRP, int(group))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ESRCH), errors.Is(err, unix.EINVAL):
		return fmt.Errorf("process group %d: %w", group, proc.ErrNotFound)
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.ENOTTY):
		return fmt.Errorf("set foreground group: %w", proc.ErrPermissionDenied)
	default:
		return fmt.Errorf("set foreground group: %w", err)
	}
}

// OwnGroup returns the calling process's own process group id, the value a
// shell compares against Foreground before routing an interrupt.
func OwnGroup() proc.Pid {
	return proc.Pid(unix.Getpgrp())
}
