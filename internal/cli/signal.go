package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sysq/internal/cliutil"
	"github.com/Paintersrp/sysq/internal/proc"
	"github.com/Paintersrp/sysq/internal/sig"
)

var signalNames = map[string]sig.Signal{
	"int":  sig.Interrupt,
	"term": sig.Terminate,
	"kill": sig.Kill,
}

func newSignalCmd(ctx *context) *cobra.Command {
	var group bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "signal <pid> {int|term|kill}",
		Short: "Send a control signal to a process or process group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A %-prefixed argument names a process group, shell job style;
			// --group does the same for a bare pid.
			raw := args[0]
			asGroup := group
			if strings.HasPrefix(raw, "%") {
				asGroup = true
				raw = strings.TrimPrefix(raw, "%")
			}
			pid, err := parsePid(raw)
			if err != nil {
				return err
			}
			signal, ok := signalNames[strings.ToLower(args[1])]
			if !ok {
				return fmt.Errorf("unknown signal %q (want int, term or kill)", args[1])
			}

			target := sig.Process(pid)
			if asGroup {
				target = sig.Group(pid)
			}

			err = sig.Send(target, signal)
			record := cliutil.NewLogRecord("info", "delivered")
			record.Pid = pid
			record.Target = args[1]
			switch {
			case errors.Is(err, proc.ErrNotFound):
				// The target exited before delivery. That race is the
				// normal outcome of job control, not a failure.
				record.Message = "already gone"
			case err != nil:
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				cliutil.EncodeLogRecord(enc, cmd.ErrOrStderr(), record)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), record.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&group, "group", "g", false, "Address a process group instead of a single process")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the delivery record as JSON")
	return cmd
}
