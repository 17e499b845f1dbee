// Package driver runs the decode, reconstruct and render pipeline over
// trace files.
package driver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"parsetrace/internal/forensics"
	"parsetrace/internal/observ"
	"parsetrace/internal/source"
	"parsetrace/internal/traceio"
)

// Job names one trace and the source text it was recorded against.
type Job struct {
	TracePath  string
	SourcePath string // optional; empty renders against an empty text
	Format     traceio.Format
}

// Options configures inspection.
type Options struct {
	Jobs     int          // max parallel traces for InspectAll (0 = GOMAXPROCS)
	Logger   *zap.Logger  // nil disables logging
	Progress ProgressSink // nil disables progress events
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Result holds one fully rendered trace.
type Result struct {
	Job    Job
	Text   *source.Text
	Table  *forensics.Table
	Lines  []forensics.Line
	Timing observ.Report
}

// Inspect loads, reconstructs and renders a single trace. Any failure is
// fatal for the trace and no partial result is returned.
func Inspect(ctx context.Context, job Job, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, stage, err := inspect(job, opts)
	if err != nil {
		opts.emit(job.TracePath, stage, StatusError, err)
		return nil, err
	}
	opts.emit(job.TracePath, StageRender, StatusDone, nil)
	return res, nil
}

// inspect runs the pipeline and reports the stage it stopped at.
func inspect(job Job, opts Options) (*Result, Stage, error) {
	log := opts.logger().With(zap.String("trace", job.TracePath))
	opts.emit(job.TracePath, StageDecode, StatusWorking, nil)
	timer := observ.NewTimer()

	var text *source.Text
	err := timer.Track("source", func() (string, error) {
		var err error
		if job.SourcePath == "" {
			text, err = source.NewText("", "")
			return "none", err
		}
		text, err = source.LoadText(job.SourcePath)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d bytes", text.Len()), nil
	})
	if err != nil {
		return nil, StageDecode, fmt.Errorf("%s: %w", job.TracePath, err)
	}

	var events []forensics.Event
	err = timer.Track("decode", func() (string, error) {
		var err error
		events, err = traceio.LoadFile(job.TracePath, job.Format)
		return fmt.Sprintf("%d events", len(events)), err
	})
	if err != nil {
		return nil, StageDecode, err
	}
	log.Debug("trace decoded", zap.Int("events", len(events)), zap.String("source", job.SourcePath))

	opts.emit(job.TracePath, StageReconstruct, StatusWorking, nil)
	var table *forensics.Table
	err = timer.Track("reconstruct", func() (string, error) {
		var err error
		table, err = forensics.Reconstruct(events)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("max depth %d", table.MaxDepth()), nil
	})
	if err != nil {
		log.Debug("reconstruction failed", zap.Error(err))
		return nil, StageReconstruct, fmt.Errorf("%s: %w", job.TracePath, err)
	}

	opts.emit(job.TracePath, StageRender, StatusWorking, nil)
	var lines []forensics.Line
	err = timer.Track("render", func() (string, error) {
		var err error
		lines, err = forensics.Render(text.Content, table)
		return fmt.Sprintf("%d lines", len(lines)), err
	})
	if err != nil {
		log.Debug("render failed", zap.Error(err))
		return nil, StageRender, fmt.Errorf("%s: %w", job.TracePath, err)
	}
	log.Debug("trace rendered",
		zap.Int("records", table.Len()),
		zap.Int("lines", len(lines)),
		zap.Int("collapsed", forensics.Collapsed(table)))

	return &Result{
		Job:    job,
		Text:   text,
		Table:  table,
		Lines:  lines,
		Timing: timer.Report(),
	}, StageRender, nil
}
