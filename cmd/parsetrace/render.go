package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"parsetrace/internal/config"
	"parsetrace/internal/driver"
	"parsetrace/internal/present"
	"parsetrace/internal/traceio"
)

type renderFlags struct {
	format    string
	jobs      int
	pairs     []string
	indent    int
	positions bool
	summary   bool
	maxWidth  int
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render [flags] [<trace> [<source>]]",
		Short: "Print the reconstructed call tree of one or more traces",
		Long: `Render reconstructs each trace and prints one line per rule attempt, indented by
nesting depth. Leaf rules whose exit directly follows their entry are printed once.
Additional traces can be given with --job trace=source.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "auto", "trace format (auto|ndjson|msgpack)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "max traces processed in parallel (0=auto)")
	cmd.Flags().StringArrayVar(&f.pairs, "job", nil, "additional trace=source pair (repeatable)")
	cmd.Flags().IntVar(&f.indent, "indent", -1, "spaces per depth level (default from config)")
	cmd.Flags().BoolVar(&f.positions, "positions", false, "append line:col of each span")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print status totals after each trace")
	cmd.Flags().IntVar(&f.maxWidth, "max-width", -1, "truncate rule names to this width (default from config)")
	return cmd
}

// parseJobs merges positional arguments and --job pairs into driver jobs.
func parseJobs(args, pairs []string, format traceio.Format) ([]driver.Job, error) {
	jobs := make([]driver.Job, 0, 1+len(pairs))
	if len(args) > 0 {
		job := driver.Job{TracePath: args[0], Format: format}
		if len(args) > 1 {
			job.SourcePath = args[1]
		}
		jobs = append(jobs, job)
	}
	for _, p := range pairs {
		tracePath, sourcePath, _ := strings.Cut(p, "=")
		if strings.TrimSpace(tracePath) == "" {
			return nil, fmt.Errorf("invalid --job %q (expected trace=source)", p)
		}
		jobs = append(jobs, driver.Job{TracePath: tracePath, SourcePath: sourcePath, Format: format})
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no trace given")
	}
	return jobs, nil
}

// renderSettings applies flags on top of the loaded config.
func renderSettings(cmd *cobra.Command, cfg config.Config, f renderFlags) config.Config {
	if f.indent >= 0 {
		cfg.Render.Indent = f.indent
	}
	if f.maxWidth >= 0 {
		cfg.Render.MaxWidth = f.maxWidth
	}
	if cmd.Flags().Changed("positions") {
		cfg.Render.Positions = f.positions
	}
	if cmd.Flags().Changed("summary") {
		cfg.Render.Summary = f.summary
	}
	return cfg
}

func (a *app) runRender(cmd *cobra.Command, args []string, f renderFlags) error {
	format, err := traceio.ParseFormat(f.format)
	if err != nil {
		return err
	}
	jobs, err := parseJobs(args, f.pairs, format)
	if err != nil {
		return err
	}
	cfg := renderSettings(cmd, a.cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	useColor, err := colorFromFlags(cmd)
	if err != nil {
		return err
	}
	palette, err := present.NewPalette(cfg.Palette, useColor)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	results, err := driver.InspectAll(cmd.Context(), jobs, driver.Options{Jobs: f.jobs, Logger: a.logger})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, res := range results {
		if len(results) > 1 && !quiet {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", res.Job.TracePath)
		}
		console := present.NewConsole(out, res.Text, present.Options{
			Indent:    cfg.Render.Indent,
			Positions: cfg.Render.Positions,
			MaxWidth:  cfg.Render.MaxWidth,
			Palette:   palette,
		})
		if err := console.Present(res.Lines); err != nil {
			return err
		}
		if cfg.Render.Summary && !quiet {
			if err := present.WriteSummary(out, res.Job.TracePath, present.Count(res.Table, res.Lines), useColor); err != nil {
				return err
			}
		}
		if timings {
			printTimings(cmd.ErrOrStderr(), res)
		}
	}
	return nil
}

func printTimings(w io.Writer, res *driver.Result) {
	fmt.Fprint(w, res.Timing.Summary(res.Job.TracePath))
}
