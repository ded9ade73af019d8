//go:build linux || darwin

package proc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func selfLimits() (Limits, error) {
	var nofile, as unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &nofile); err != nil {
		return Limits{}, fmt.Errorf("getrlimit RLIMIT_NOFILE: %w", err)
	}
	if err := unix.Getrlimit(unix.RLIMIT_AS, &as); err != nil {
		return Limits{}, fmt.Errorf("getrlimit RLIMIT_AS: %w", err)
	}
	return Limits{
		OpenFiles:    Limit{Current: uint64(nofile.Cur), Max: uint64(nofile.Max)},
		AddressSpace: Limit{Current: uint64(as.Cur), Max: uint64(as.Max)},
	}, nil
}
