//go:build windows

package tty

import (
	"os"

	"github.com/Paintersrp/sysq/internal/proc"
)

// Windows consoles have no foreground-process-group notion; interrupt routing
// works through console control events instead (see the sig package).

func Open() (*Terminal, error) {
	return nil, proc.ErrUnsupported
}

func (t *Terminal) Foreground() (*proc.Pid, error) {
	return nil, nil
}

func (t *Terminal) SetForeground(group proc.Pid) error {
	return proc.ErrUnsupported
}

// OwnGroup reports the process id, which doubles as the console process group
// id for group leaders created with CREATE_NEW_PROCESS_GROUP.
func OwnGroup() proc.Pid {
	return proc.Pid(os.Getpid())
}
