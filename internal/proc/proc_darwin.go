//go:build darwin

package proc

/*
#include <libproc.h>
#include <sys/sysctl.h>
#include <sys/proc.h>
*/
import "C"

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os/user"
	"strconv"
	"syscall"
	"time"
	"unsafe"
)

// statuses maps BSD process states to portable statuses. SIDL marks a process
// still being created, which is closest to sleeping.
var statuses = map[C.uint]Status{
	C.SIDL:   StatusSleeping,
	C.SRUN:   StatusRunning,
	C.SSLEEP: StatusSleeping,
	C.SSTOP:  StatusStopped,
	C.SZOMB:  StatusZombie,
}

// listPids queries the kernel's task table via proc_listpids, sizing the
// buffer with a first nil call as libproc requires.
func listPids() ([]Pid, error) {
	n, err := C.proc_listpids(C.PROC_ALL_PIDS, 0, nil, 0)
	if n <= 0 {
		return nil, fmt.Errorf("proc_listpids: %w", err)
	}

	var cpid C.int
	buf := make([]C.int, n/C.int(unsafe.Sizeof(cpid))+16)
	if n, err = C.proc_listpids(C.PROC_ALL_PIDS, 0, unsafe.Pointer(&buf[0]), C.int(len(buf))*C.int(unsafe.Sizeof(cpid))); n <= 0 {
		return nil, fmt.Errorf("proc_listpids: %w", err)
	}
	n /= C.int(unsafe.Sizeof(cpid))
	if int(n) < len(buf) {
		buf = buf[:n]
	}

	// proc_listpids reports pids in descending order.
	pids := make([]Pid, 0, len(buf))
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] > 0 {
			pids = append(pids, Pid(buf[i]))
		}
	}
	return pids, nil
}

// inspect reads the pid's bsd-info and task-info structures. The bsd-info is
// mandatory; task-info requires rights the caller may not hold for other
// users' tasks, in which case the snapshot stays partial rather than failing.
func inspect(pid Pid) (Snapshot, error) {
	var bsd C.struct_proc_bsdinfo
	n, err := C.proc_pidinfo(
		C.int(pid),
		C.PROC_PIDTBSDINFO,
		0,
		unsafe.Pointer(&bsd),
		C.int(C.PROC_PIDTBSDINFO_SIZE),
	)
	if n != C.int(C.PROC_PIDTBSDINFO_SIZE) {
		return Snapshot{}, classifyProcErr(pid, err)
	}

	snap := Snapshot{
		PID:        pid,
		Name:       C.GoString(&bsd.pbi_comm[0]),
		Status:     StatusUnknown,
		SampleTime: time.Now(),
	}
	if s, ok := statuses[bsd.pbi_status]; ok {
		snap.Status = s
	}
	if bsd.pbi_ppid > 0 {
		ppid := Pid(bsd.pbi_ppid)
		snap.ParentPid = &ppid
	}
	owner := resolveUser(int(bsd.pbi_uid))
	snap.Owner = &owner
	if bsd.pbi_start_tvsec > 0 {
		start := time.Unix(int64(bsd.pbi_start_tvsec), int64(bsd.pbi_start_tvusec)*1000)
		snap.StartTime = &start
	}

	var task C.struct_proc_taskinfo
	n, _ = C.proc_pidinfo(
		C.int(pid),
		C.PROC_PIDTASKINFO,
		0,
		unsafe.Pointer(&task),
		C.int(C.PROC_PIDTASKINFO_SIZE),
	)
	if n == C.int(C.PROC_PIDTASKINFO_SIZE) {
		snap.UserTime = time.Duration(task.pti_total_user)
		snap.SystemTime = time.Duration(task.pti_total_system)
		snap.ResidentBytes = uint64(task.pti_resident_size)
		vsize := uint64(task.pti_virtual_size)
		snap.VirtualBytes = &vsize
		threads := int(task.pti_threadnum)
		snap.ThreadCount = &threads
	}

	snap.Cmdline = commandLine(pid)

	return snap, nil
}

// commandLine reads the exec arguments via the KERN_PROCARGS2 sysctl. The call
// is denied for other users' processes; an unreadable command line yields nil.
func commandLine(pid Pid) []string {
	size := C.size_t(C.ARG_MAX)
	buf := make([]byte, size)

	mib := [3]C.int{C.CTL_KERN, C.KERN_PROCARGS2, C.int(pid)}
	if rv := C.sysctl(
		(*C.int)(unsafe.Pointer(&mib)),
		3,
		unsafe.Pointer(&buf[0]),
		&size,
		unsafe.Pointer(nil),
		0,
	); rv != 0 {
		return nil
	}
	if size < 4 {
		return nil
	}

	// The buffer opens with the argument count, then the executable path,
	// then null-padded arguments followed by the environment.
	argc := int(binary.LittleEndian.Uint32(buf[:4]))
	var args []string
	for _, s := range bytes.Split(buf[4:size], []byte{0}) {
		if len(s) == 0 { // null padding between strings
			continue
		}
		if len(args) > argc { // environment follows the arguments
			break
		}
		args = append(args, string(s))
	}
	if len(args) == 0 {
		return nil
	}
	// Drop the leading executable path; argv proper follows it.
	if len(args) > 1 {
		return args[1:]
	}
	return args
}

func resolveUser(uid int) string {
	if u, err := user.LookupId(strconv.Itoa(uid)); err == nil {
		return u.Username
	}
	return strconv.Itoa(uid)
}

func classifyProcErr(pid Pid, err error) error {
	switch {
	case errors.Is(err, syscall.ESRCH), err == nil:
		return fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	case errors.Is(err, syscall.EPERM), errors.Is(err, syscall.EACCES):
		return fmt.Errorf("pid %d: %w", pid, ErrPermissionDenied)
	default:
		return fmt.Errorf("pid %d: %w", pid, err)
	}
}
