package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sysq/internal/api"
	httpapi "github.com/Paintersrp/sysq/internal/api/http"
)

func newServeCmd(ctx *context) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only process queries and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := httpapi.NewServer(httpapi.Config{
				Addr:    addr,
				Querier: api.TableQuerier{},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", server.Addr())
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to a loopback port)")
	return cmd
}
