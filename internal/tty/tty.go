// Package tty resolves which process group currently owns a controlling
// terminal. A shell must know, before delivering an interrupt, whether it owns
// the terminal or whether a launched job does; answering that wrongly either
// does nothing or kills the shell itself.
//
// Ownership changes asynchronously with job control, so results are never
// cached: every query goes to the terminal, and transient OS errors are
// surfaced rather than retried.
package tty

import (
	"os"

	"golang.org/x/term"
)

// Terminal wraps an open descriptor onto a (controlling) terminal. Terminals
// built by Open own their descriptor and release it on Close; terminals
// adapting a caller's descriptor never close it.
type Terminal struct {
	f     *os.File
	owned bool
}

// FromFile adapts an already-open descriptor, typically os.Stdin. The caller
// retains ownership of the file: Close on the returned Terminal leaves the
// descriptor open.
func FromFile(f *os.File) *Terminal {
	return &Terminal{f: f}
}

// Close releases the descriptor when the Terminal owns it.
func (t *Terminal) Close() error {
	if !t.owned {
		return nil
	}
	return t.f.Close()
}

// Fd exposes the raw descriptor.
func (t *Terminal) Fd() uintptr {
	return t.f.Fd()
}

// IsTerminal reports whether the descriptor refers to a terminal at all.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.f.Fd()))
}
