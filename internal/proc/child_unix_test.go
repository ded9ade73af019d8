//go:build linux || darwin

package proc

import (
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestChildSnapshot(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	pid := Pid(cmd.Process.Pid)
	snap, err := Get(pid)
	if err != nil {
		t.Fatalf("Get(child) returned error: %v", err)
	}

	if snap.Status != StatusRunning && snap.Status != StatusSleeping {
		t.Fatalf("child status = %q, want running or sleeping", snap.Status)
	}
	if snap.ParentPid == nil {
		t.Fatalf("child snapshot missing parent pid")
	}
	if got, want := *snap.ParentPid, Pid(os.Getpid()); got != want {
		t.Fatalf("child parent pid = %d, want %d", got, want)
	}
}

func TestTerminatedChildEventuallyNotFound(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}

	pid := Pid(cmd.Process.Pid)
	if err := cmd.Process.Kill(); err != nil {
		t.Fatalf("kill child: %v", err)
	}
	// Wait reaps the child; before that it remains visible as a zombie.
	_ = cmd.Wait()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := Get(pid); errors.Is(err, ErrNotFound) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("Get(%d) still succeeds after child was reaped", pid)
}

func TestBusyChildCPUPercent(t *testing.T) {
	if testing.Short() {
		t.Skip("timing-sensitive scenario skipped in short mode")
	}

	cmd := exec.Command("/bin/sh", "-c", "while :; do :; done")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start busy child: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	pid := Pid(cmd.Process.Pid)

	// Let the shell finish exec before the first sample.
	time.Sleep(100 * time.Millisecond)

	first, err := Get(pid)
	if err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	time.Sleep(500 * time.Millisecond)
	second, err := Get(pid)
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}

	percent, err := CPUPercent(first, second, 1)
	if err != nil {
		t.Fatalf("CPUPercent returned error: %v", err)
	}
	// A busy loop should sit near 100; scheduling jitter on a loaded host
	// pulls it down, clock-tick rounding can push it slightly over.
	if percent < 50 || percent > 115 {
		t.Fatalf("busy child cpu percent = %.1f, want roughly 100", percent)
	}
}

func TestSelfLimits(t *testing.T) {
	limits, err := SelfLimits()
	if err != nil {
		t.Fatalf("SelfLimits returned error: %v", err)
	}
	if limits.OpenFiles.Current == 0 {
		t.Fatalf("open-file limit is zero")
	}
	if limits.OpenFiles.Max < limits.OpenFiles.Current {
		t.Fatalf("open-file hard limit %d below soft limit %d",
			limits.OpenFiles.Max, limits.OpenFiles.Current)
	}
}
