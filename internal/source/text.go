package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// Text is a traced source with a precomputed newline index. Offsets are raw
// bytes of the content as given; nothing is normalized, so offsets recorded
// by a producer stay valid.
type Text struct {
	Path    string
	Content string
	lineIdx []uint32
}

// NewText indexes content. It fails only when content is too large to be
// addressed by 32-bit offsets.
func NewText(path, content string) (*Text, error) {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, fmt.Errorf("%s: source too large: %w", path, err)
	}
	return &Text{
		Path:    path,
		Content: content,
		lineIdx: buildLineIndex(content),
	}, nil
}

// LoadText reads and indexes a file.
func LoadText(path string) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return NewText(path, string(data))
}

// Len returns the content length in bytes.
func (t *Text) Len() uint32 {
	return uint32(len(t.Content)) //nolint:gosec // bounded in NewText
}

// LineCount returns the number of lines; an empty text has one empty line.
func (t *Text) LineCount() int {
	return len(t.lineIdx) + 1
}

// LineCol resolves a byte offset. Offsets past the end resolve to the
// position just after the last byte.
func (t *Text) LineCol(off uint32) LineCol {
	if off > t.Len() {
		off = t.Len()
	}
	return toLineCol(t.lineIdx, off)
}

// Line returns the content of 1-based line n without its terminating
// newline, or false when n is out of range.
func (t *Text) Line(n uint32) (string, bool) {
	if n == 0 || int(n) > t.LineCount() {
		return "", false
	}
	start := uint32(0)
	if n > 1 {
		start = t.lineIdx[n-2] + 1
	}
	end := t.Len()
	if int(n) <= len(t.lineIdx) {
		end = t.lineIdx[n-1]
	}
	return t.Content[start:end], true
}

// Snippet returns the bytes covered by sp, clamped to the content.
func (t *Text) Snippet(sp Span) string {
	start, end := sp.Start, sp.End
	if end > t.Len() {
		end = t.Len()
	}
	if start > end {
		start = end
	}
	return t.Content[start:end]
}
