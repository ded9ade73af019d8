//go:build linux || darwin

package tty

import (
	"errors"
	"os"
	"testing"

	"github.com/Paintersrp/sysq/internal/proc"
)

func TestForegroundOnNonTerminal(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	defer f.Close()

	terminal := FromFile(f)
	if terminal.IsTerminal() {
		t.Fatalf("%s reported as a terminal", os.DevNull)
	}

	group, err := terminal.Foreground()
	if err != nil {
		t.Fatalf("Foreground on non-terminal returned error: %v", err)
	}
	if group != nil {
		t.Fatalf("Foreground on non-terminal = %d, want none", *group)
	}
}

func TestSetForegroundRejectsNonPositiveGroup(t *testing.T) {
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	defer f.Close()

	terminal := FromFile(f)
	if err := terminal.SetForeground(0); !errors.Is(err, proc.ErrNotFound) {
		t.Fatalf("SetForeground(0) error = %v, want ErrNotFound", err)
	}
}

func TestOwnGroupPositive(t *testing.T) {
	if got := OwnGroup(); got <= 0 {
		t.Fatalf("OwnGroup = %d, want positive", got)
	}
}

func TestForegroundOnControllingTerminal(t *testing.T) {
	terminal, err := Open()
	if err != nil {
		t.Skip("no controlling terminal in this environment")
	}
	defer terminal.Close()

	group, err := terminal.Foreground()
	if err != nil {
		t.Fatalf("Foreground returned error: %v", err)
	}
	if group == nil {
		t.Fatalf("controlling terminal has no foreground group")
	}
	// The test binary runs in the foreground of whoever launched it, so the
	// owning group is our own.
	if got, want := *group, OwnGroup(); got != want {
		t.Fatalf("foreground group = %d, want own group %d", got, want)
	}
}
