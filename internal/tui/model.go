package tui

import (
	"sort"
	"strings"

	"github.com/Paintersrp/sysq/internal/proc"
)

// Row is one rendered process line in the top view.
type Row struct {
	PID        proc.Pid
	Name       string
	Owner      string
	Status     proc.Status
	Resident   uint64
	Threads    *int
	CPUPercent float64
	HasCPU     bool
}

// model folds successive listings into renderable rows. The CPU column needs
// two samples of the same pid, so the first listing after start (and the
// first sighting of any new pid) renders without a percentage.
type model struct {
	prev  map[proc.Pid]proc.Snapshot
	cores int
}

func newModel(cores int) *model {
	if cores < 1 {
		cores = 1
	}
	return &model{prev: map[proc.Pid]proc.Snapshot{}, cores: cores}
}

// update rates the new listing against the previous one and replaces it.
func (m *model) update(snaps []proc.Snapshot) []Row {
	rows := make([]Row, 0, len(snaps))
	next := make(map[proc.Pid]proc.Snapshot, len(snaps))

	for _, snap := range snaps {
		row := Row{
			PID:      snap.PID,
			Name:     snap.Name,
			Status:   snap.Status,
			Resident: snap.ResidentBytes,
			Threads:  snap.ThreadCount,
		}
		if snap.Owner != nil {
			row.Owner = *snap.Owner
		}
		if old, ok := m.prev[snap.PID]; ok {
			if delta, err := proc.Sample(old, snap, m.cores); err == nil {
				row.CPUPercent = delta.CPUPercent
				row.HasCPU = true
			}
		}
		rows = append(rows, row)
		next[snap.PID] = snap
	}

	m.prev = next
	return rows
}

// sortKeys cycled by the view, in order.
var sortKeys = []string{"cpu", "rss", "pid", "name"}

func sortRows(rows []Row, key string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch key {
		case "rss":
			return a.Resident > b.Resident
		case "name":
			return a.Name < b.Name
		case "pid":
			return a.PID < b.PID
		default: // cpu
			if a.CPUPercent != b.CPUPercent {
				return a.CPUPercent > b.CPUPercent
			}
			return a.Resident > b.Resident
		}
	})
}

func nextSortKey(key string) string {
	for i, k := range sortKeys {
		if k == key {
			return sortKeys[(i+1)%len(sortKeys)]
		}
	}
	return sortKeys[0]
}

func filterRows(rows []Row, filter string) []Row {
	if filter == "" {
		return rows
	}
	filter = strings.ToLower(filter)
	filtered := rows[:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), filter) ||
			strings.Contains(strings.ToLower(row.Owner), filter) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
