//go:build linux

package proc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Process-wide constants, computed once on first use and safe for concurrent
// read afterwards.
var (
	// Linux reports CPU times in clock ticks. USER_HZ has been fixed at 100
	// on every architecture Go supports, and querying it portably would
	// require cgo, so the kernel's compiled-in value is used directly.
	clockTicks = sync.OnceValue(func() time.Duration {
		return time.Second / 100
	})

	pageSize = sync.OnceValue(func() uint64 {
		return uint64(os.Getpagesize())
	})

	bootTime = sync.OnceValue(readBootTime)
)

// statuses maps /proc/<pid>/stat state characters to portable statuses.
// Uninterruptible sleep and idle kernel threads count as sleeping.
var statuses = map[byte]Status{
	'R': StatusRunning,
	'S': StatusSleeping,
	'D': StatusSleeping,
	'I': StatusSleeping,
	'T': StatusStopped,
	't': StatusStopped,
	'Z': StatusZombie,
}

// listPids enumerates the numeric entries of /proc.
func listPids() ([]Pid, error) {
	dir, err := os.Open("/proc")
	if err != nil {
		return nil, fmt.Errorf("open /proc: %w", err)
	}
	names, err := dir.Readdirnames(0)
	dir.Close()
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	pids := make([]Pid, 0, len(names))
	for _, name := range names {
		if n, err := strconv.Atoi(name); err == nil && n > 0 {
			pids = append(pids, Pid(n))
		}
	}
	return pids, nil
}

// inspect produces a snapshot from the pid's procfs entry. The stat record is
// mandatory; everything read afterwards only widens the snapshot and its
// absence is never an error.
func inspect(pid Pid) (Snapshot, error) {
	dir := filepath.Join("/proc", pid.String())

	buf, err := os.ReadFile(filepath.Join(dir, "stat"))
	if err != nil {
		return Snapshot{}, classifyProcErr(pid, err)
	}
	st, err := parseStat(buf)
	if err != nil {
		return Snapshot{}, fmt.Errorf("pid %d: %w", pid, err)
	}

	snap := Snapshot{
		PID:           pid,
		Name:          st.comm,
		Status:        st.status,
		UserTime:      time.Duration(st.utime) * clockTicks(),
		SystemTime:    time.Duration(st.stime) * clockTicks(),
		ResidentBytes: st.rssPages * pageSize(),
		SampleTime:    time.Now(),
	}
	if st.ppid > 0 {
		ppid := Pid(st.ppid)
		snap.ParentPid = &ppid
	}
	if st.vsize > 0 {
		vsize := st.vsize
		snap.VirtualBytes = &vsize
	}
	if st.threads > 0 {
		threads := st.threads
		snap.ThreadCount = &threads
	}
	if boot := bootTime(); !boot.IsZero() {
		start := boot.Add(time.Duration(st.startTicks) * clockTicks())
		snap.StartTime = &start
	}

	if m, err := readKeyValues(filepath.Join(dir, "status")); err == nil {
		if uid, ok := m["Uid"]; ok {
			owner := resolveUser(uid)
			snap.Owner = &owner
		}
	}

	// Empty for kernel threads and for processes whose address space the
	// caller may not read; both legitimately yield no command line.
	if args, err := os.ReadFile(filepath.Join(dir, "cmdline")); err == nil && len(args) > 0 {
		snap.Cmdline = splitNulTerminated(args)
	}

	return snap, nil
}

type statRecord struct {
	comm       string
	status     Status
	ppid       int
	utime      uint64
	stime      uint64
	threads    int
	startTicks uint64
	vsize      uint64
	rssPages   uint64
}

// parseStat decodes /proc/<pid>/stat. The comm field is parenthesised and may
// itself contain spaces and parentheses, so the record is split at the last
// closing parenthesis rather than tokenised from the front.
func parseStat(buf []byte) (statRecord, error) {
	open := bytes.IndexByte(buf, '(')
	end := bytes.LastIndexByte(buf, ')')
	if open < 0 || end < open {
		return statRecord{}, errors.New("malformed stat record")
	}

	// Fields after comm, numbered from state = field 3 of the record.
	fields := strings.Fields(string(buf[end+1:]))
	if len(fields) < 22 {
		return statRecord{}, fmt.Errorf("stat record has %d fields, want at least 24", len(fields)+2)
	}

	st := statRecord{comm: string(buf[open+1 : end])}

	st.status = StatusUnknown
	if s, ok := statuses[fields[0][0]]; ok {
		st.status = s
	}

	st.ppid, _ = strconv.Atoi(fields[1])
	st.utime, _ = strconv.ParseUint(fields[11], 10, 64)
	st.stime, _ = strconv.ParseUint(fields[12], 10, 64)
	st.threads, _ = strconv.Atoi(fields[17])
	st.startTicks, _ = strconv.ParseUint(fields[19], 10, 64)
	st.vsize, _ = strconv.ParseUint(fields[20], 10, 64)
	st.rssPages, _ = strconv.ParseUint(fields[21], 10, 64)

	return st, nil
}

// readKeyValues reads a procfs "Name:\tvalue" file into a map keyed by field
// name, keeping only the first token of each value.
func readKeyValues(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := map[string]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		k, v, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		if tokens := strings.Fields(v); len(tokens) > 0 {
			m[k] = tokens[0]
		}
	}
	return m, sc.Err()
}

func splitNulTerminated(buf []byte) []string {
	buf = bytes.TrimRight(buf, "\x00")
	if len(buf) == 0 {
		return nil
	}
	return strings.Split(string(buf), "\x00")
}

func resolveUser(uid string) string {
	if u, err := user.LookupId(uid); err == nil {
		return u.Username
	}
	return uid
}

// readBootTime extracts the btime record from /proc/stat. Process start times
// are reported relative to boot, so without it StartTime stays absent.
func readBootTime() time.Time {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return time.Time{}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[0] == "btime" {
			if sec, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
				return time.Unix(sec, 0)
			}
		}
	}
	return time.Time{}
}

func classifyProcErr(pid Pid, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ESRCH):
		return fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("pid %d: %w", pid, ErrPermissionDenied)
	default:
		return fmt.Errorf("pid %d: %w", pid, err)
	}
}
