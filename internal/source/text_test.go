package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestText_LineCol(t *testing.T) {
	tests := []struct {
		name    string
		content string
		off     uint32
		want    LineCol
	}{
		{"empty text", "", 0, LineCol{1, 1}},
		{"single line start", "abc", 0, LineCol{1, 1}},
		{"single line end", "abc", 3, LineCol{1, 4}},
		{"newline belongs to its line", "ab\ncd", 2, LineCol{1, 3}},
		{"first byte of second line", "ab\ncd", 3, LineCol{2, 1}},
		{"last line", "ab\ncd\nef", 7, LineCol{3, 2}},
		{"consecutive newlines", "a\n\n\nb", 3, LineCol{3, 1}},
		{"past the end clamps", "ab\ncd", 99, LineCol{2, 3}},
		{"crlf keeps carriage return on the line", "ab\r\ncd", 2, LineCol{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewText("t", tt.content)
			if err != nil {
				t.Fatalf("NewText() error = %v", err)
			}
			if got := text.LineCol(tt.off); got != tt.want {
				t.Errorf("LineCol(%d) = %v, want %v", tt.off, got, tt.want)
			}
		})
	}
}

func TestText_Line(t *testing.T) {
	text, err := NewText("t", "first\nsecond\n")
	if err != nil {
		t.Fatalf("NewText() error = %v", err)
	}
	if got := text.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	tests := []struct {
		n    uint32
		want string
		ok   bool
	}{
		{0, "", false},
		{1, "first", true},
		{2, "second", true},
		{3, "", true},
		{4, "", false},
	}
	for _, tt := range tests {
		got, ok := text.Line(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Line(%d) = %q, %v; want %q, %v", tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestText_Snippet(t *testing.T) {
	text, err := NewText("t", "let x = 1")
	if err != nil {
		t.Fatalf("NewText() error = %v", err)
	}
	tests := []struct {
		span Span
		want string
	}{
		{Span{Start: 4, End: 5}, "x"},
		{Span{Start: 0, End: 3}, "let"},
		{Span{Start: 8, End: 100}, "1"},
		{Span{Start: 50, End: 60}, ""},
		{Span{Start: 5, End: 4}, ""},
	}
	for _, tt := range tests {
		if got := text.Snippet(tt.span); got != tt.want {
			t.Errorf("Snippet(%v) = %q, want %q", tt.span, got, tt.want)
		}
	}
}

func TestSpan(t *testing.T) {
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Errorf("zero-length span should be empty")
	}
	if got := (Span{Start: 2, End: 7}).Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := (Span{Start: 7, End: 2}).Len(); got != 0 {
		t.Errorf("inverted span Len() = %d, want 0", got)
	}
}

func TestLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("a\nb"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	text, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if text.Path != path || text.Content != "a\nb" {
		t.Errorf("LoadText() = %q %q", text.Path, text.Content)
	}
	if _, err := LoadText(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("LoadText(missing) expected error")
	}
}
