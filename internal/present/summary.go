package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"parsetrace/internal/forensics"
)

// Totals counts what a rendered trace contains.
type Totals struct {
	Records   int
	Lines     int
	Opened    int
	Matched   int
	Failed    int
	Collapsed int
	MaxDepth  int
}

// Count tallies lines rendered from t.
func Count(t *forensics.Table, lines []forensics.Line) Totals {
	tot := Totals{
		Records:   t.Len(),
		Lines:     len(lines),
		Collapsed: forensics.Collapsed(t),
		MaxDepth:  t.MaxDepth(),
	}
	for _, l := range lines {
		switch l.Status {
		case forensics.StatusOpened:
			tot.Opened++
		case forensics.StatusMatched:
			tot.Matched++
		case forensics.StatusFailed:
			tot.Failed++
		}
	}
	return tot
}

// WriteSummary prints a short totals block under title.
func WriteSummary(w io.Writer, title string, tot Totals, styled bool) error {
	titleStyle := lipgloss.NewStyle()
	matchedStyle := lipgloss.NewStyle()
	failedStyle := lipgloss.NewStyle()
	if styled {
		titleStyle = titleStyle.Bold(true).Foreground(lipgloss.Color("7"))
		matchedStyle = matchedStyle.Foreground(lipgloss.Color("2"))
		failedStyle = failedStyle.Foreground(lipgloss.Color("1"))
	}

	rows := []struct {
		name  string
		value int
		style lipgloss.Style
	}{
		{"records", tot.Records, lipgloss.NewStyle()},
		{"lines", tot.Lines, lipgloss.NewStyle()},
		{"opened", tot.Opened, lipgloss.NewStyle()},
		{"matched", tot.Matched, matchedStyle},
		{"failed", tot.Failed, failedStyle},
		{"collapsed", tot.Collapsed, lipgloss.NewStyle()},
		{"max depth", tot.MaxDepth, lipgloss.NewStyle()},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		name := runewidth.FillRight(r.name, 10)
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(" ")
		b.WriteString(r.style.Render(fmt.Sprintf("%d", r.value)))
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
