package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"parsetrace/internal/driver"
	"parsetrace/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return shouldUseColor(colorAuto, out)
	}
}

type inspectOutcome struct {
	results []*driver.Result
	err     error
}

// runInspectWithUI runs InspectAll while a progress view reads its events.
func runInspectWithUI(ctx context.Context, out io.Writer, jobs []driver.Job, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan inspectOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.InspectAll(ctx, jobs, optsCopy)
		outcomeCh <- inspectOutcome{results: res, err: err}
		close(events)
	}()

	traces := make([]string, 0, len(jobs))
	for _, job := range jobs {
		traces = append(traces, job.TracePath)
	}
	model := ui.NewProgressModel("checking traces", traces, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// Drain so the producer never blocks if the view quit early.
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
