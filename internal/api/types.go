// Package api defines the wire types served by the sysq HTTP endpoint. The
// endpoint is read only: it reports what the process table looks like from
// this binary's privilege level and never reaches into other processes.
package api

import (
	"time"

	"github.com/Paintersrp/sysq/internal/proc"
)

// ProcessReport is the JSON shape of one process snapshot. Optional fields
// stay pointers so a consumer can tell "not readable here" from zero.
type ProcessReport struct {
	Pid           proc.Pid    `json:"pid"`
	ParentPid     *proc.Pid   `json:"parent_pid,omitempty"`
	Name          string      `json:"name"`
	Cmdline       []string    `json:"cmdline,omitempty"`
	Status        proc.Status `json:"status"`
	Owner         *string     `json:"owner,omitempty"`
	StartTime     *time.Time  `json:"start_time,omitempty"`
	UserSeconds   float64     `json:"user_seconds"`
	SystemSeconds float64     `json:"system_seconds"`
	ResidentBytes uint64      `json:"resident_bytes"`
	VirtualBytes  *uint64     `json:"virtual_bytes,omitempty"`
	ThreadCount   *int        `json:"thread_count,omitempty"`
	SampleTime    time.Time   `json:"sample_time"`
}

// NewProcessReport converts a snapshot into its wire shape.
func NewProcessReport(snap proc.Snapshot) ProcessReport {
	return ProcessReport{
		Pid:           snap.PID,
		ParentPid:     snap.ParentPid,
		Name:          snap.Name,
		Cmdline:       snap.Cmdline,
		Status:        snap.Status,
		Owner:         snap.Owner,
		StartTime:     snap.StartTime,
		UserSeconds:   snap.UserTime.Seconds(),
		SystemSeconds: snap.SystemTime.Seconds(),
		ResidentBytes: snap.ResidentBytes,
		VirtualBytes:  snap.VirtualBytes,
		ThreadCount:   snap.ThreadCount,
		SampleTime:    snap.SampleTime,
	}
}

// ListReport aggregates one full process-table listing.
type ListReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Count       int             `json:"count"`
	Processes   []ProcessReport `json:"processes"`
}

// NewListReport converts a listing into its wire shape.
func NewListReport(snaps []proc.Snapshot) *ListReport {
	reports := make([]ProcessReport, 0, len(snaps))
	for _, snap := range snaps {
		reports = append(reports, NewProcessReport(snap))
	}
	return &ListReport{
		GeneratedAt: time.Now().UTC(),
		Count:       len(reports),
		Processes:   reports,
	}
}

// Querier is the slice of the process table the HTTP server needs.
type Querier interface {
	ListProcesses() ([]proc.Snapshot, error)
	GetProcess(proc.Pid) (proc.Snapshot, error)
}

// TableQuerier serves queries from the live process table.
type TableQuerier struct{}

func (TableQuerier) ListProcesses() ([]proc.Snapshot, error) {
	return proc.List()
}

func (TableQuerier) GetProcess(pid proc.Pid) (proc.Snapshot, error) {
	return proc.Get(pid)
}
