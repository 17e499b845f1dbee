package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"parsetrace/internal/config"
	"parsetrace/internal/version"
)

// app carries state shared by subcommands once persistent flags are parsed.
type app struct {
	logger *zap.Logger
	cfg    config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop(), cfg: config.Default()}

	root := &cobra.Command{
		Use:   "parsetrace",
		Short: "Inspect match traces recorded by a parser",
		Long: `parsetrace reconstructs the call tree of a recorded parser trace and prints it
as an indented, colour-coded listing: blue for rules that were entered, green for
successful matches and red for failed attempts.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("config", "", "path to parsetrace.toml (default: search upwards)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("verbose", false, "human-readable debug logging")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// main builds the command tree and executes it, exiting with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
