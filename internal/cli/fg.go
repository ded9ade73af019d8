package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sysq/internal/tty"
)

func newFgCmd(ctx *context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fg",
		Short: "Show which process group owns the controlling terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			terminal, err := tty.Open()
			if err != nil {
				return err
			}
			defer terminal.Close()

			group, err := terminal.Foreground()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if group == nil {
				fmt.Fprintln(out, "no foreground process group")
				return nil
			}

			own := tty.OwnGroup()
			if *group == own {
				fmt.Fprintf(out, "%d (own group)\n", *group)
			} else {
				fmt.Fprintf(out, "%d\n", *group)
			}
			return nil
		},
	}
	return cmd
}
