package proc

import (
	"fmt"
	"time"
)

// Delta holds rates derived from two snapshots of the same process.
type Delta struct {
	// CPUPercent is total CPU-seconds consumed per wall-clock second,
	// scaled to percent. A process saturating two cores reports ~200.
	CPUPercent float64

	// Elapsed is the wall-clock interval between the two snapshots.
	Elapsed time.Duration
}

// CPUPercent computes the CPU utilisation of a process between two snapshots.
// The percentage reflects total CPU time across all cores and is deliberately
// not divided by the core count; the result is clamped to [0, 100*cores] to
// absorb clock-tick rounding. A negative CPU-time delta means the pid was
// reused by a different process between the samples and yields 0.
//
// Both snapshots must describe the same pid and cur must have been taken
// strictly after prev, otherwise ErrInvalidSampleOrder is returned. Very short
// intervals amplify rounding noise; the caller owns the interval.
func CPUPercent(prev, cur Snapshot, cores int) (float64, error) {
	if prev.PID != cur.PID {
		return 0, fmt.Errorf("%w: snapshots describe pids %d and %d", ErrInvalidSampleOrder, prev.PID, cur.PID)
	}
	if !cur.SampleTime.After(prev.SampleTime) {
		return 0, fmt.Errorf("%w: second snapshot not taken after first", ErrInvalidSampleOrder)
	}
	if cores < 1 {
		cores = 1
	}

	busy := cur.CPUTime() - prev.CPUTime()
	if busy < 0 {
		return 0, nil
	}
	elapsed := cur.SampleTime.Sub(prev.SampleTime)

	percent := 100 * busy.Seconds() / elapsed.Seconds()
	if max := 100 * float64(cores); percent > max {
		percent = max
	}
	return percent, nil
}

// Sample computes the full rate delta between two snapshots of one process.
func Sample(prev, cur Snapshot, cores int) (Delta, error) {
	percent, err := CPUPercent(prev, cur, cores)
	if err != nil {
		return Delta{}, err
	}
	return Delta{
		CPUPercent: percent,
		Elapsed:    cur.SampleTime.Sub(prev.SampleTime),
	}, nil
}
