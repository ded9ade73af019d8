//go:build windows

package proc

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// listProcesses walks one system-wide toolhelp snapshot, augmenting each entry
// with counters from a per-process handle. The snapshot handle and every
// process handle are released before returning, whatever path is taken; an
// entry the caller may not open still yields the toolhelp portion of its
// snapshot.
func listProcesses() ([]Snapshot, error) {
	handle, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("create process snapshot: %w", err)
	}
	defer windows.CloseHandle(handle)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var snaps []Snapshot
	for err = windows.Process32First(handle, &entry); err == nil; err = windows.Process32Next(handle, &entry) {
		if entry.ProcessID == 0 { // system idle pseudo-process
			continue
		}
		snaps = append(snaps, fromEntry(&entry))
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return nil, fmt.Errorf("walk process snapshot: %w", err)
	}
	return snaps, nil
}

// inspect locates the pid in a fresh toolhelp snapshot and augments it.
func inspect(pid Pid) (Snapshot, error) {
	handle, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("create process snapshot: %w", err)
	}
	defer windows.CloseHandle(handle)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	for err = windows.Process32First(handle, &entry); err == nil; err = windows.Process32Next(handle, &entry) {
		if Pid(entry.ProcessID) == pid {
			return fromEntry(&entry), nil
		}
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return Snapshot{}, fmt.Errorf("walk process snapshot: %w", err)
	}
	return Snapshot{}, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
}

// fromEntry converts a toolhelp entry, augmenting it with times, memory
// counters, liveness, and owner from a per-process query handle. Augmentation
// is best-effort: a denied OpenProcess leaves those fields absent rather than
// failing the entry.
func fromEntry(entry *windows.ProcessEntry32) Snapshot {
	snap := Snapshot{
		PID:        Pid(entry.ProcessID),
		Name:       windows.UTF16ToString(entry.ExeFile[:]),
		Status:     StatusUnknown,
		SampleTime: time.Now(),
	}
	if entry.ParentProcessID > 0 {
		ppid := Pid(entry.ParentProcessID)
		snap.ParentPid = &ppid
	}
	if entry.Threads > 0 {
		threads := int(entry.Threads)
		snap.ThreadCount = &threads
	}

	h, err := windows.OpenProcess(
		windows.PROCESS_QUERY_LIMITED_INFORMATION,
		false,
		entry.ProcessID,
	)
	if err != nil {
		return snap
	}
	defer windows.CloseHandle(h)

	// STILL_ACTIVE: the exit code slot of a process that has not exited.
	const stillActive = 259

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err == nil && code == stillActive {
		snap.Status = StatusRunning
	}

	var creation, exit, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(h, &creation, &exit, &kernel, &user); err == nil {
		snap.UserTime = filetimeDuration(user)
		snap.SystemTime = filetimeDuration(kernel)
		start := time.Unix(0, creation.Nanoseconds())
		snap.StartTime = &start
	}

	var counters windows.PROCESS_MEMORY_COUNTERS
	if err := windows.GetProcessMemoryInfo(h, &counters, uint32(unsafe.Sizeof(counters))); err == nil {
		snap.ResidentBytes = uint64(counters.WorkingSetSize)
		vsize := uint64(counters.PagefileUsage)
		snap.VirtualBytes = &vsize
	}

	if owner, err := processOwner(h); err == nil {
		snap.Owner = &owner
	}

	return snap
}

// filetimeDuration converts a FILETIME span, counted in 100ns units.
func filetimeDuration(ft windows.Filetime) time.Duration {
	ticks := uint64(ft.HighDateTime)<<32 | uint64(ft.LowDateTime)
	return time.Duration(ticks) * 100
}

// processOwner resolves the account name of the process token's user SID.
func processOwner(h windows.Handle) (string, error) {
	var token windows.Token
	if err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token); err != nil {
		return "", err
	}
	defer token.Close()

	tu, err := token.GetTokenUser()
	if err != nil {
		return "", err
	}
	account, domain, _, err := tu.User.Sid.LookupAccount("")
	if err != nil {
		return "", err
	}
	if domain != "" {
		return domain + `\` + account, nil
	}
	return account, nil
}
