// Package main provides the entry point for gitmux.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

// submain logs to stderr until the config names the log file; after that
// the terminal belongs to the UI.
func submain(ctx context.Context) int {
	logger := pslog.NewWithOptions(os.Stderr, pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.ErrorLevel})
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("gitmux failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts runOptions
	root := &cobra.Command{
		Use:           "gitmux [flags] [-- command args...]",
		Short:         "Run a coding assistant next to a live view of the git worktree",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.command = args
			return run(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.dir, "dir", "d", ".", "directory inside the git worktree to open")
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/gitmux/config.yaml)")
	flags.IntVar(&opts.split, "split", 0, "hosted pane width in percent (20-80)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info or error")

	root.AddCommand(newVersionCmd())
	return root
}
