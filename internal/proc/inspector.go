package proc

import (
	"runtime"
	"sync"
)

// List enumerates every process visible at the caller's privilege level. A
// process that exits between enumeration and inspection is skipped silently;
// the listing as a whole only fails when the process table itself cannot be
// read.
func List() ([]Snapshot, error) {
	return listProcesses()
}

// Get returns a snapshot of one process. ErrNotFound reports that the pid does
// not currently exist. When the OS denies access to privileged fields but pid
// and status are still readable, Get returns a partial snapshot with the
// denied fields left nil; ErrPermissionDenied is returned only when nothing
// can be read at all.
func Get(pid Pid) (Snapshot, error) {
	if pid <= 0 {
		return Snapshot{}, ErrNotFound
	}
	return inspect(pid)
}

var coresOnce = sync.OnceValue(runtime.NumCPU)

// Cores returns the logical core count, computed once per process.
func Cores() int {
	return coresOnce()
}
