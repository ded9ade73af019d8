package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sysq/internal/metrics"
	"github.com/Paintersrp/sysq/internal/proc"
)

func newSelfCmd(ctx *context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self",
		Short: "Display the calling process's own snapshot and resource limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			snap := proc.Self()
			metrics.ObserveQuery("self", time.Since(start))

			if err := renderSnapshot(cmd, snap); err != nil {
				return err
			}

			limits, err := proc.SelfLimits()
			if errors.Is(err, proc.ErrUnsupported) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read resource limits: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nOpen files:\t%d (max %d)\n", limits.OpenFiles.Current, limits.OpenFiles.Max)
			fmt.Fprintf(out, "Address space:\t%s (max %s)\n",
				formatLimitValue(limits.AddressSpace.Current),
				formatLimitValue(limits.AddressSpace.Max))
			return nil
		},
	}
	return cmd
}

// formatLimitValue renders a limit that may be RLIM_INFINITY.
func formatLimitValue(v uint64) string {
	if v == ^uint64(0) {
		return "unlimited"
	}
	return fmt.Sprintf("%d", v)
}
