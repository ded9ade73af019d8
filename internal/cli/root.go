// Package cli wires the sysq commands. Every command is a thin consumer of
// the introspection core: it queries, formats, and exits, leaving policy
// (when to sample, what to do about races) to the packages underneath.
package cli

import (
	stdcontext "context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/sysq/internal/config"
)

func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *context) {
	configPath := config.DefaultPath()

	root := &cobra.Command{
		Use:   "sysq",
		Short: "Process and system-resource introspection",
	}

	root.PersistentFlags().
		StringVar(&configPath, "config", configPath, "Path to the sysq configuration file")

	ctx := &context{configPath: &configPath}
	root.AddCommand(newPsCmd(ctx))
	root.AddCommand(newInfoCmd(ctx))
	root.AddCommand(newSelfCmd(ctx))
	root.AddCommand(newTopCmd(ctx))
	root.AddCommand(newFgCmd(ctx))
	root.AddCommand(newSignalCmd(ctx))
	root.AddCommand(newServeCmd(ctx))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type context struct {
	configPath *string

	mu  sync.Mutex
	cfg *config.Config
}

func (c *context) loadConfig() (config.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg != nil {
		return *c.cfg, nil
	}

	path := ""
	if c.configPath != nil {
		path = *c.configPath
	}
	if path == "" {
		cfg := config.Default()
		c.cfg = &cfg
		return cfg, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// supportsInteractiveOutput reports whether the command's stdout is a
// terminal that can host the interactive view.
func supportsInteractiveOutput(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
