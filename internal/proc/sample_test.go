package proc

import (
	"errors"
	"testing"
	"time"
)

func snapshotAt(pid Pid, at time.Time, cpu time.Duration) Snapshot {
	return Snapshot{
		PID:        pid,
		Status:     StatusRunning,
		UserTime:   cpu / 2,
		SystemTime: cpu - cpu/2,
		SampleTime: at,
	}
}

func TestCPUPercent(t *testing.T) {
	base := time.Now()

	tests := []struct {
		name    string
		old     Snapshot
		new     Snapshot
		cores   int
		want    float64
		wantErr error
	}{
		{
			name:  "half core busy",
			old:   snapshotAt(42, base, 0),
			new:   snapshotAt(42, base.Add(time.Second), 500*time.Millisecond),
			cores: 4,
			want:  50,
		},
		{
			name:  "two cores busy",
			old:   snapshotAt(42, base, 0),
			new:   snapshotAt(42, base.Add(time.Second), 2*time.Second),
			cores: 4,
			want:  200,
		},
		{
			name:  "clamped to core ceiling",
			old:   snapshotAt(42, base, 0),
			new:   snapshotAt(42, base.Add(100*time.Millisecond), 250*time.Millisecond),
			cores: 2,
			want:  200,
		},
		{
			name:  "pid reuse yields zero",
			old:   snapshotAt(42, base, 10*time.Second),
			new:   snapshotAt(42, base.Add(time.Second), time.Second),
			cores: 4,
			want:  0,
		},
		{
			name:    "different pids",
			old:     snapshotAt(42, base, 0),
			new:     snapshotAt(43, base.Add(time.Second), time.Second),
			cores:   4,
			wantErr: ErrInvalidSampleOrder,
		},
		{
			name:    "equal sample times",
			old:     snapshotAt(42, base, 0),
			new:     snapshotAt(42, base, time.Second),
			cores:   4,
			wantErr: ErrInvalidSampleOrder,
		},
		{
			name:    "reversed sample times",
			old:     snapshotAt(42, base.Add(time.Second), 0),
			new:     snapshotAt(42, base, time.Second),
			cores:   4,
			wantErr: ErrInvalidSampleOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CPUPercent(tt.old, tt.new, tt.cores)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CPUPercent error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CPUPercent returned error: %v", err)
			}
			if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
				t.Fatalf("CPUPercent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCPUPercentBounds(t *testing.T) {
	base := time.Now()
	intervals := []time.Duration{time.Millisecond, 100 * time.Millisecond, time.Second, time.Minute}
	busies := []time.Duration{0, time.Millisecond, time.Second, time.Hour}

	for _, interval := range intervals {
		for _, busy := range busies {
			old := snapshotAt(7, base, 0)
			cur := snapshotAt(7, base.Add(interval), busy)
			got, err := CPUPercent(old, cur, 8)
			if err != nil {
				t.Fatalf("CPUPercent(%v busy over %v) returned error: %v", busy, interval, err)
			}
			if got < 0 || got > 800 {
				t.Fatalf("CPUPercent(%v busy over %v) = %v, want within [0, 800]", busy, interval, got)
			}
		}
	}
}

func TestSampleReportsElapsed(t *testing.T) {
	base := time.Now()
	old := snapshotAt(9, base, 0)
	cur := snapshotAt(9, base.Add(250*time.Millisecond), 125*time.Millisecond)

	delta, err := Sample(old, cur, 1)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	if got, want := delta.Elapsed, 250*time.Millisecond; got != want {
		t.Fatalf("unexpected elapsed: got %v want %v", got, want)
	}
	if delta.CPUPercent < 49 || delta.CPUPercent > 51 {
		t.Fatalf("unexpected cpu percent: got %v want ~50", delta.CPUPercent)
	}
}

func TestSampleZeroCoresTreatedAsOne(t *testing.T) {
	base := time.Now()
	old := snapshotAt(3, base, 0)
	cur := snapshotAt(3, base.Add(time.Second), 5*time.Second)

	got, err := CPUPercent(old, cur, 0)
	if err != nil {
		t.Fatalf("CPUPercent returned error: %v", err)
	}
	if got != 100 {
		t.Fatalf("CPUPercent = %v, want clamp at 100 for one core", got)
	}
}
