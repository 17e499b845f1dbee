// Package present writes rendered traces for people to read.
package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"parsetrace/internal/forensics"
	"parsetrace/internal/source"
)

// Sink accepts rendered lines in display order.
type Sink interface {
	Present(lines []forensics.Line) error
}

// Options controls console layout.
type Options struct {
	Indent    int  // spaces per depth level
	Positions bool // append source positions
	MaxWidth  int  // label display width limit, 0 = unlimited
	Palette   Palette
}

var _ Sink = (*Console)(nil)

// Console writes one text line per rendered line.
type Console struct {
	w    io.Writer
	text *source.Text
	opts Options
}

// NewConsole returns a Console writing to w. text may be nil when
// positions are not requested.
func NewConsole(w io.Writer, text *source.Text, opts Options) *Console {
	return &Console{w: w, text: text, opts: opts}
}

// Present writes lines to the underlying writer.
func (c *Console) Present(lines []forensics.Line) error {
	var sb strings.Builder
	for _, l := range lines {
		sb.Reset()
		sb.WriteString(strings.Repeat(" ", l.Indent*c.opts.Indent))

		label := l.Label
		if c.opts.MaxWidth > 0 {
			label = runewidth.Truncate(label, c.opts.MaxWidth, "…")
		}
		if col := c.opts.Palette.forStatus(l.Status); col != nil {
			sb.WriteString(col.Sprint(label))
		} else {
			sb.WriteString(label)
		}

		if c.opts.Positions && c.text != nil {
			sb.WriteString(" @")
			sb.WriteString(c.position(l))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(c.w, sb.String()); err != nil {
			return fmt.Errorf("failed to write trace line: %w", err)
		}
	}
	return nil
}

// position formats the source location of l as line:col, or
// line:col-line:col for a successful match. Columns are display columns.
func (c *Console) position(l forensics.Line) string {
	start := c.format(l.Start)
	if !l.HasEnd {
		return start
	}
	return start + "-" + c.format(l.End)
}

func (c *Console) format(off forensics.Pos) string {
	lc := c.text.LineCol(uint32(off))
	return fmt.Sprintf("%d:%d", lc.Line, DisplayColumn(c.text, lc))
}

// DisplayColumn converts the 1-based byte column of pos into a
// 1-based display column, accounting for wide and multi-byte runes.
func DisplayColumn(text *source.Text, pos source.LineCol) int {
	line, ok := text.Line(pos.Line)
	if !ok {
		return int(pos.Col)
	}
	prefix := int(pos.Col) - 1
	if prefix > len(line) {
		prefix = len(line)
	}
	return runewidth.StringWidth(line[:prefix]) + 1
}
