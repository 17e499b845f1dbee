package source

// LineCol represents a human-readable position in a source text.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Span is a half-open byte range [Start, End) of a source text.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}
