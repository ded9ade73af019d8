//go:build linux || darwin

package proc

// listProcesses enumerates pids first and inspects each one afterwards, the
// natural shape for process-table interfaces that are indexed by pid. Only a
// failure to read the table itself aborts the listing.
func listProcesses() ([]Snapshot, error) {
	pids, err := listPids()
	if err != nil {
		return nil, err
	}
	return collectSnapshots(pids, inspect), nil
}

// collectSnapshots inspects each pid, skipping every entry that cannot be
// snapshotted. Processes exit mid-walk, turn unreadable, or expose records
// the parser rejects; none of those may cost the caller the rest of the
// table.
func collectSnapshots(pids []Pid, inspectPid func(Pid) (Snapshot, error)) []Snapshot {
	snaps := make([]Snapshot, 0, len(pids))
	for _, pid := range pids {
		snap, err := inspectPid(pid)
		if err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps
}
