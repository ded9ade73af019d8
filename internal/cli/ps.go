package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sysq/internal/cliutil"
	"github.com/Paintersrp/sysq/internal/metrics"
	"github.com/Paintersrp/sysq/internal/proc"
	"github.com/Paintersrp/sysq/internal/resources"
)

func newPsCmd(ctx *context) *cobra.Command {
	var sortKey string
	var quiet bool
	var minRSS string

	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List the processes visible at the current privilege level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if sortKey == "" {
				sortKey = cfg.Sort
			}
			threshold, err := resources.ParseMemory(minRSS)
			if err != nil {
				return err
			}

			start := time.Now()
			snaps, err := proc.List()
			if err != nil {
				return fmt.Errorf("list processes: %w", err)
			}
			metrics.ObserveQuery("list", time.Since(start))

			if threshold > 0 {
				kept := snaps[:0]
				for _, snap := range snaps {
					if snap.ResidentBytes >= threshold {
						kept = append(kept, snap)
					}
				}
				snaps = kept
			}
			sortSnapshots(snaps, sortKey)

			out := cmd.OutOrStdout()
			if quiet {
				for _, snap := range snaps {
					fmt.Fprintln(out, snap.PID)
				}
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			headers := make([]string, len(cfg.Columns))
			for i, col := range cfg.Columns {
				headers[i] = strings.ToUpper(col)
			}
			fmt.Fprintln(w, strings.Join(headers, "\t"))
			for _, snap := range snaps {
				cells := make([]string, len(cfg.Columns))
				for i, col := range cfg.Columns {
					cells[i] = columnValue(col, snap)
				}
				fmt.Fprintln(w, strings.Join(cells, "\t"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key: pid, name, rss or time")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print pids only")
	cmd.Flags().StringVar(&minRSS, "min-rss", "", "Hide processes resident below this size (e.g. 100Mi)")
	return cmd
}

func columnValue(col string, snap proc.Snapshot) string {
	switch col {
	case "pid":
		return snap.PID.String()
	case "ppid":
		return cliutil.FormatPidPtr(snap.ParentPid)
	case "name":
		return snap.Name
	case "user":
		return cliutil.FormatOwner(snap.Owner)
	case "status":
		return string(snap.Status)
	case "rss":
		return cliutil.FormatBytes(snap.ResidentBytes)
	case "vsz":
		return cliutil.FormatBytesPtr(snap.VirtualBytes)
	case "threads":
		return cliutil.FormatIntPtr(snap.ThreadCount)
	case "started":
		return cliutil.FormatStart(snap.StartTime)
	case "time":
		return cliutil.FormatCPUTime(snap.CPUTime())
	case "command":
		return strings.Join(snap.Cmdline, " ")
	default:
		return "-"
	}
}

// sortSnapshots orders a listing. The cpu key belongs to the top view, which
// has two samples to rate against; a single listing falls back to cumulative
// CPU time for it.
func sortSnapshots(snaps []proc.Snapshot, key string) {
	sort.SliceStable(snaps, func(i, j int) bool {
		a, b := snaps[i], snaps[j]
		switch key {
		case "name":
			return a.Name < b.Name
		case "rss":
			return a.ResidentBytes > b.ResidentBytes
		case "time", "cpu":
			return a.CPUTime() > b.CPUTime()
		default:
			return a.PID < b.PID
		}
	})
}
