package present

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"parsetrace/internal/config"
	"parsetrace/internal/forensics"
	"parsetrace/internal/source"
)

func renderSample(t *testing.T, text string) (*forensics.Table, []forensics.Line) {
	t.Helper()
	table, err := forensics.Reconstruct([]forensics.Event{
		forensics.Enter("A", 0),
		forensics.Enter("B", 0),
		forensics.Match("B", 0, 1),
		forensics.Enter("C", 2),
		forensics.Fail("C", 2),
		forensics.Match("A", 0, 5),
	})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	lines, err := forensics.Render(text, table)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return table, lines
}

func plainPalette(t *testing.T) Palette {
	t.Helper()
	p, err := NewPalette(config.Default().Palette, false)
	if err != nil {
		t.Fatalf("NewPalette() error = %v", err)
	}
	return p
}

func TestConsole_Plain(t *testing.T) {
	const src = "a\nbcd"
	_, lines := renderSample(t, src)
	text, err := source.NewText("in", src)
	if err != nil {
		t.Fatalf("NewText() error = %v", err)
	}

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "indent only",
			opts: Options{Indent: 2},
			want: "A\n  B\n  C\nA\n",
		},
		{
			name: "with positions",
			opts: Options{Indent: 1, Positions: true},
			want: "A @1:1\n B @1:1-1:2\n C @2:1\nA @1:1-2:4\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Palette = plainPalette(t)
			var buf bytes.Buffer
			if err := NewConsole(&buf, text, tt.opts).Present(lines); err != nil {
				t.Fatalf("Present() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Present() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsole_Colored(t *testing.T) {
	_, lines := renderSample(t, "")
	p, err := NewPalette(config.Default().Palette, true)
	if err != nil {
		t.Fatalf("NewPalette() error = %v", err)
	}
	var buf bytes.Buffer
	if err := NewConsole(&buf, nil, Options{Indent: 2, Palette: p}).Present(lines); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"\x1b[34mA", "\x1b[32mB", "\x1b[31mC"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestConsole_Truncates(t *testing.T) {
	lines := []forensics.Line{{Label: "very_long_rule_name", Status: forensics.StatusFailed}}
	var buf bytes.Buffer
	opts := Options{MaxWidth: 6, Palette: plainPalette(t)}
	if err := NewConsole(&buf, nil, opts).Present(lines); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if got, want := buf.String(), "very_…\n"; got != want {
		t.Errorf("Present() = %q, want %q", got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want color.Attribute
		ok   bool
	}{
		{"red", color.FgRed, true},
		{" Blue ", color.FgBlue, true},
		{"hi-green", color.FgHiGreen, true},
		{"hi-white", color.FgHiWhite, true},
		{"orange", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.name)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v", tt.name, got, err)
		}
	}
	if _, err := NewPalette(config.Palette{Opened: "blue", Matched: "teal", Failed: "red"}, false); err == nil ||
		!strings.Contains(err.Error(), "palette.matched") {
		t.Errorf("NewPalette() error = %v, want palette.matched", err)
	}
}

func TestDisplayColumn(t *testing.T) {
	text, err := source.NewText("w", "日本x\nab")
	if err != nil {
		t.Fatalf("NewText() error = %v", err)
	}
	// "日本" is six bytes wide in UTF-8 and four cells wide on screen.
	if got := DisplayColumn(text, source.LineCol{Line: 1, Col: 7}); got != 5 {
		t.Errorf("DisplayColumn(1:7) = %d, want 5", got)
	}
	if got := DisplayColumn(text, source.LineCol{Line: 2, Col: 2}); got != 2 {
		t.Errorf("DisplayColumn(2:2) = %d, want 2", got)
	}
}

func TestSummary(t *testing.T) {
	table, lines := renderSample(t, "")
	tot := Count(table, lines)
	want := Totals{Records: 6, Lines: 4, Opened: 1, Matched: 2, Failed: 1, Collapsed: 2, MaxDepth: 1}
	if tot != want {
		t.Errorf("Count() = %+v, want %+v", tot, want)
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, "trace.ndjson", tot, false); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"trace.ndjson", "matched", "collapsed", "max depth"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}
}
