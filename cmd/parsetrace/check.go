package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsetrace/internal/driver"
	"parsetrace/internal/forensics"
	"parsetrace/internal/traceio"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		format string
		jobs   int
		uiFlag string
	)
	cmd := &cobra.Command{
		Use:   "check [flags] <trace>...",
		Short: "Verify that traces are well nested",
		Long: `Check reconstructs every trace without printing it and reports its shape.
It fails on the first trace that is not well nested.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := traceio.ParseFormat(format)
			if err != nil {
				return err
			}
			list := make([]driver.Job, 0, len(args))
			for _, path := range args {
				list = append(list, driver.Job{TracePath: path, Format: f})
			}
			mode, err := readUIMode(uiFlag)
			if err != nil {
				return err
			}
			quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
			if err != nil {
				return fmt.Errorf("failed to get quiet flag: %w", err)
			}

			out := cmd.OutOrStdout()
			opts := driver.Options{Jobs: jobs, Logger: a.logger}
			var results []*driver.Result
			if !quiet && shouldUseTUI(mode, out) {
				results, err = runInspectWithUI(cmd.Context(), out, list, opts)
			} else {
				results, err = driver.InspectAll(cmd.Context(), list, opts)
			}
			if err != nil {
				return err
			}
			if quiet {
				return nil
			}
			for _, res := range results {
				fmt.Fprintf(out, "%s: ok, %d records, %d lines, %d collapsed, max depth %d\n",
					res.Job.TracePath, res.Table.Len(), len(res.Lines),
					forensics.Collapsed(res.Table), res.Table.MaxDepth())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "auto", "trace format (auto|ndjson|msgpack)")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "max traces processed in parallel (0=auto)")
	cmd.Flags().StringVar(&uiFlag, "ui", "auto", "show live progress (auto|on|off)")
	return cmd
}
