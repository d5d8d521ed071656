package xmlpull

// Span is a half-open byte range [Start, End) into the shared source buffer.
// All tokenizer output references the source through spans instead of copying.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// In returns the text the span covers in src.
func (s Span) In(src string) string {
	return src[s.Start:s.End]
}

// Position is a location in the source buffer. Line and Column are 1-based;
// Column counts runes, not bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}
