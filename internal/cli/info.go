package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sysq/internal/cliutil"
	"github.com/Paintersrp/sysq/internal/metrics"
	"github.com/Paintersrp/sysq/internal/proc"
)

func newInfoCmd(ctx *context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <pid>",
		Short: "Display one process snapshot in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePid(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			snap, err := proc.Get(pid)
			metrics.ObserveQuery("get", time.Since(start))
			if err != nil {
				if errors.Is(err, proc.ErrNotFound) {
					return fmt.Errorf("no such process: %d", pid)
				}
				return err
			}

			return renderSnapshot(cmd, snap)
		},
	}
	return cmd
}

func renderSnapshot(cmd *cobra.Command, snap proc.Snapshot) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Pid:\t%d\n", snap.PID)
	fmt.Fprintf(w, "Parent:\t%s\n", cliutil.FormatPidPtr(snap.ParentPid))
	fmt.Fprintf(w, "Name:\t%s\n", snap.Name)
	command := "-"
	if len(snap.Cmdline) > 0 {
		command = strings.Join(snap.Cmdline, " ")
	}
	fmt.Fprintf(w, "Command:\t%s\n", command)
	fmt.Fprintf(w, "Status:\t%s\n", snap.Status)
	fmt.Fprintf(w, "Owner:\t%s\n", cliutil.FormatOwner(snap.Owner))
	fmt.Fprintf(w, "Started:\t%s\n", cliutil.FormatStart(snap.StartTime))
	fmt.Fprintf(w, "CPU user:\t%s\n", snap.UserTime)
	fmt.Fprintf(w, "CPU system:\t%s\n", snap.SystemTime)
	fmt.Fprintf(w, "Resident:\t%s\n", cliutil.FormatBytes(snap.ResidentBytes))
	fmt.Fprintf(w, "Virtual:\t%s\n", cliutil.FormatBytesPtr(snap.VirtualBytes))
	fmt.Fprintf(w, "Threads:\t%s\n", cliutil.FormatIntPtr(snap.ThreadCount))
	fmt.Fprintf(w, "Sampled:\t%s\n", snap.SampleTime.Format(time.RFC3339))
	return w.Flush()
}

func parsePid(arg string) (proc.Pid, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid pid %q", arg)
	}
	return proc.Pid(n), nil
}
