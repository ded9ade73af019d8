package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sysq/internal/resources"
	"github.com/Paintersrp/sysq/internal/tui"
)

func newTopCmd(ctx *context) *cobra.Command {
	var minCPU string

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Launch the interactive process view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !supportsInteractiveOutput(cmd) {
				return fmt.Errorf("top requires an interactive terminal")
			}

			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			cores, err := resources.ParseCPU(minCPU)
			if err != nil {
				return err
			}

			ui := tui.New(
				tui.WithRefresh(cfg.Refresh.Duration),
				tui.WithSort(cfg.Sort),
				tui.WithMinCPU(cores*100),
			)
			return ui.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&minCPU, "min-cpu", "", "Hide processes using less CPU than this (cores, e.g. 0.1 or 100m)")
	return cmd
}
