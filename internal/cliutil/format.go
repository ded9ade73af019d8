// Package cliutil holds presentation helpers shared by the sysq commands:
// rendering optional snapshot fields, humanizing sizes and durations, and
// encoding structured diagnostic records.
package cliutil

import (
	"fmt"
	"time"

	units "github.com/docker/go-units"

	"github.com/Paintersrp/sysq/internal/proc"
)

// absent stands in for fields the platform or privilege level did not yield.
const absent = "-"

// FormatBytes renders a byte count in humanized binary units.
func FormatBytes(n uint64) string {
	return units.BytesSize(float64(n))
}

// FormatBytesPtr renders an optional byte count; absence is not zero.
func FormatBytesPtr(n *uint64) string {
	if n == nil {
		return absent
	}
	return FormatBytes(*n)
}

// FormatPidPtr renders an optional pid.
func FormatPidPtr(pid *proc.Pid) string {
	if pid == nil {
		return absent
	}
	return pid.String()
}

// FormatIntPtr renders an optional count.
func FormatIntPtr(n *int) string {
	if n == nil {
		return absent
	}
	return fmt.Sprintf("%d", *n)
}

// FormatOwner renders an optional owner name.
func FormatOwner(owner *string) string {
	if owner == nil || *owner == "" {
		return absent
	}
	return *owner
}

// FormatStart renders an optional start time as an age relative to now.
func FormatStart(start *time.Time) string {
	if start == nil {
		return absent
	}
	age := time.Since(*start)
	if age < 0 {
		age = 0
	}
	return units.HumanDuration(age)
}

// FormatCPUTime renders cumulative CPU time in a compact mm:ss.cc form.
func FormatCPUTime(d time.Duration) string {
	d = d.Round(10 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := d % time.Minute
	return fmt.Sprintf("%d:%05.2f", minutes, seconds.Seconds())
}

// FormatPercent renders a CPU percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f", p)
}
