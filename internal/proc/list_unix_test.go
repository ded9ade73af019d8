//go:build linux || darwin

package proc

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCollectSnapshotsSkipsFailedEntries(t *testing.T) {
	inspected := make([]Pid, 0, 5)
	inspectPid := func(pid Pid) (Snapshot, error) {
		inspected = append(inspected, pid)
		switch pid {
		case 2:
			return Snapshot{}, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
		case 3:
			// An unreadable or corrupt record is not a sentinel error; it
			// still may not abort the walk.
			return Snapshot{}, errors.New("malformed stat record")
		case 4:
			return Snapshot{}, fmt.Errorf("pid %d: %w", pid, ErrPermissionDenied)
		}
		return Snapshot{PID: pid, Status: StatusRunning, SampleTime: time.Now()}, nil
	}

	snaps := collectSnapshots([]Pid{1, 2, 3, 4, 5}, inspectPid)

	if len(inspected) != 5 {
		t.Fatalf("inspected %d pids, want all 5", len(inspected))
	}
	if len(snaps) != 2 {
		t.Fatalf("collected %d snapshots, want 2", len(snaps))
	}
	if snaps[0].PID != 1 || snaps[1].PID != 5 {
		t.Fatalf("collected pids %d and %d, want 1 and 5", snaps[0].PID, snaps[1].PID)
	}
}
