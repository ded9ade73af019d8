//go:build windows

package sig

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Paintersrp/sysq/internal/proc"
)

// send translates the portable signals for a platform without kill(2).
// Interrupt becomes a console control event addressed to the target's process
// group, which requires the sender to share a console with it. Terminate and
// Kill end every current member of the target's process tree directly,
// best-effort: membership is enumerated at send time because it can change
// between decision and delivery.
func send(target Target, signal Signal) error {
	if signal == Interrupt {
		return sendCtrlBreak(target.id)
	}
	return terminateTree(target)
}

// sendCtrlBreak posts CTRL_BREAK to the console process group. A bare pid is
// addressed as its own group, which holds for group leaders started with
// CREATE_NEW_PROCESS_GROUP.
func sendCtrlBreak(pid proc.Pid) error {
	err := windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(pid))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, windows.ERROR_INVALID_PARAMETER):
		return fmt.Errorf("process group %v: %w", pid, proc.ErrNotFound)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return fmt.Errorf("process group %v: %w", pid, proc.ErrPermissionDenied)
	default:
		return fmt.Errorf("interrupt process group %v: %w", pid, err)
	}
}

// terminateTree ends the target process and, for group targets, every process
// that currently descends from it. The member set comes from one toolhelp
// snapshot taken at send time; members that exit before their turn are simply
// already gone.
func terminateTree(target Target) error {
	pids := []proc.Pid{target.id}
	if target.group {
		members, err := descendants(target.id)
		if err != nil {
			return err
		}
		pids = append(pids, members...)
	}

	var firstErr error
	delivered := false
	for _, pid := range pids {
		err := terminate(pid)
		switch {
		case err == nil:
			delivered = true
		case errors.Is(err, proc.ErrNotFound):
			// already gone
		case firstErr == nil:
			firstErr = err
		}
	}
	if delivered || firstErr != nil {
		return firstErr
	}
	return fmt.Errorf("%v %v: %w", target.kind(), target.id, proc.ErrNotFound)
}

func terminate(pid proc.Pid) error {
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_INVALID_PARAMETER):
			return fmt.Errorf("process %v: %w", pid, proc.ErrNotFound)
		case errors.Is(err, windows.ERROR_ACCESS_DENIED):
			return fmt.Errorf("process %v: %w", pid, proc.ErrPermissionDenied)
		default:
			return fmt.Errorf("open process %v: %w", pid, err)
		}
	}
	defer windows.CloseHandle(h)

	if err := windows.TerminateProcess(h, 1); err != nil {
		return fmt.Errorf("terminate process %v: %w", pid, err)
	}
	return nil
}

// descendants walks one toolhelp snapshot and collects every pid reachable
// from root through parent links.
func descendants(root proc.Pid) ([]proc.Pid, error) {
	handle, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("create process snapshot: %w", err)
	}
	defer windows.CloseHandle(handle)

	parents := map[proc.Pid]proc.Pid{}
	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	for err = windows.Process32First(handle, &entry); err == nil; err = windows.Process32Next(handle, &entry) {
		if entry.ProcessID != 0 {
			parents[proc.Pid(entry.ProcessID)] = proc.Pid(entry.ParentProcessID)
		}
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return nil, fmt.Errorf("walk process snapshot: %w", err)
	}

	members := map[proc.Pid]struct{}{root: {}}
	// Parent links form a forest; a few passes settle deep chains.
	for changed := true; changed; {
		changed = false
		for pid, ppid := range parents {
			if _, ok := members[pid]; ok {
				continue
			}
			if _, ok := members[ppid]; ok {
				members[pid] = struct{}{}
				changed = true
			}
		}
	}

	var pids []proc.Pid
	for pid := range members {
		if pid != root {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}
