//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// statLine builds a /proc/<pid>/stat record with the given comm and state and
// fixed counters: utime 150, stime 50, 4 threads, start 7000 ticks, vsize
// 1048576, rss 256 pages.
func statLine(comm, state string) string {
	return "1234 (" + comm + ") " + state +
		" 1 1234 1234 0 -1 4194304 100 0 0 0 150 50 0 0 20 0 4 0 7000 1048576 256 18446744073709551615 0 0 0 0 0 0 0 0 0 0 0 0 17 0 0 0 0 0 0"
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		name       string
		comm       string
		state      string
		wantComm   string
		wantStatus Status
	}{
		{name: "running", comm: "sysq", state: "R", wantComm: "sysq", wantStatus: StatusRunning},
		{name: "sleeping", comm: "bash", state: "S", wantComm: "bash", wantStatus: StatusSleeping},
		{name: "uninterruptible counts as sleeping", comm: "jbd2/sda1-8", state: "D", wantComm: "jbd2/sda1-8", wantStatus: StatusSleeping},
		{name: "stopped", comm: "vi", state: "T", wantComm: "vi", wantStatus: StatusStopped},
		{name: "zombie", comm: "defunct", state: "Z", wantComm: "defunct", wantStatus: StatusZombie},
		{name: "unclassified state", comm: "odd", state: "W", wantComm: "odd", wantStatus: StatusUnknown},
		{name: "comm with spaces and parens", comm: "tmux: server (1)", state: "S", wantComm: "tmux: server (1)", wantStatus: StatusSleeping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := parseStat([]byte(statLine(tt.comm, tt.state)))
			if err != nil {
				t.Fatalf("parseStat returned error: %v", err)
			}
			if st.comm != tt.wantComm {
				t.Fatalf("comm = %q, want %q", st.comm, tt.wantComm)
			}
			if st.status != tt.wantStatus {
				t.Fatalf("status = %q, want %q", st.status, tt.wantStatus)
			}
			if st.ppid != 1 {
				t.Fatalf("ppid = %d, want 1", st.ppid)
			}
			if st.utime != 150 || st.stime != 50 {
				t.Fatalf("cpu ticks = %d/%d, want 150/50", st.utime, st.stime)
			}
			if st.threads != 4 {
				t.Fatalf("threads = %d, want 4", st.threads)
			}
			if st.startTicks != 7000 {
				t.Fatalf("startTicks = %d, want 7000", st.startTicks)
			}
			if st.vsize != 1048576 {
				t.Fatalf("vsize = %d, want 1048576", st.vsize)
			}
			if st.rssPages != 256 {
				t.Fatalf("rssPages = %d, want 256", st.rssPages)
			}
		})
	}
}

func TestParseStatMalformed(t *testing.T) {
	for _, record := range []string{"", "1234", "1234 (truncated", "1234 (x) R 1"} {
		if _, err := parseStat([]byte(record)); err == nil {
			t.Fatalf("parseStat(%q) succeeded, want error", record)
		}
	}
}

func TestReadKeyValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status")
	content := "Name:\tsleep\nUmask:\t0022\nState:\tS (sleeping)\nUid:\t1000\t1000\t1000\t1000\nThreads:\t1\nEmpty:\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write status fixture: %v", err)
	}

	m, err := readKeyValues(path)
	if err != nil {
		t.Fatalf("readKeyValues returned error: %v", err)
	}
	if got, want := m["Uid"], "1000"; got != want {
		t.Fatalf("Uid = %q, want %q", got, want)
	}
	if got, want := m["State"], "S"; got != want {
		t.Fatalf("State = %q, want %q", got, want)
	}
	if _, ok := m["Empty"]; ok {
		t.Fatalf("empty value should not be recorded")
	}
}

func TestSplitNulTerminated(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []string
	}{
		{name: "empty", in: nil, want: nil},
		{name: "only terminator", in: []byte("\x00"), want: nil},
		{name: "single arg", in: []byte("sleep\x00"), want: []string{"sleep"}},
		{name: "several args", in: []byte("sleep\x0030\x00"), want: []string{"sleep", "30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitNulTerminated(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d args %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("arg %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBootTimeIsPast(t *testing.T) {
	boot := bootTime()
	if boot.IsZero() {
		t.Skip("btime not available")
	}
	if !boot.Before(time.Now()) {
		t.Fatalf("boot time %v is not in the past", boot)
	}
}
