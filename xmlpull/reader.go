package xmlpull

import "strings"

// Reader holds the whole decoded markup text in memory and provides the
// navigation and search primitives the tokenizer is built on: substring access
// by absolute byte range, forward literal search, quote-aware search, and
// incremental line/column counting.
//
// It is not a streaming reader: the buffer is immutable after construction and
// all returned spans stay valid for the lifetime of the Reader.
type Reader struct {
	// input is the complete source text. Never mutated.
	input string

	// pos is the current cursor position, a byte offset into input.
	pos int

	// line and column track the location of the last offset passed to
	// CountLinesTo. 1-based; column counts runes.
	line   int
	column int

	// lastCounted is the offset up to which lines have been counted.
	// CountLinesTo only ever moves it forward.
	lastCounted int

	// marker remembers a byte position in the markup, used to capture the raw
	// text between two accepted tags.
	marker int
}

// NewReader returns a Reader over the given decoded text.
func NewReader(text string) *Reader {
	return &Reader{
		input:  text,
		line:   1,
		column: 1,
	}
}

// String returns the complete source text.
func (r *Reader) String() string {
	return r.input
}

// Size returns the length of the source text in bytes.
func (r *Reader) Size() int {
	return len(r.input)
}

// Position returns the current cursor position.
func (r *Reader) Position() int {
	return r.pos
}

// SetPosition moves the cursor to the byte offset pos.
func (r *Reader) SetPosition(pos int) {
	r.pos = pos
}

// CharAt returns the byte at the given offset.
func (r *Reader) CharAt(pos int) byte {
	return r.input[pos]
}

// Substring returns the text between the two byte offsets, including the byte
// at from and excluding the byte at to.
func (r *Reader) Substring(from, to int) string {
	return r.input[from:to]
}

// SetMarker stores pos as the position marker.
func (r *Reader) SetMarker(pos int) {
	r.marker = pos
}

// Marker returns the stored position marker.
func (r *Reader) Marker() int {
	return r.marker
}

// MarkerSpan returns the span from the position marker to the byte offset to.
// If to precedes the marker the span is empty. If to is negative the span
// extends to the end of the input.
func (r *Reader) MarkerSpan(to int) Span {
	if to < 0 {
		to = len(r.input)
	}
	if to < r.marker {
		to = r.marker
	}
	return Span{Start: r.marker, End: to}
}

// FindChar finds ch starting at the current cursor position. Returns -1 when
// not found.
func (r *Reader) FindChar(ch byte) int {
	return r.FindCharFrom(ch, r.pos)
}

// FindCharFrom finds ch starting at the given position. Returns -1 when not
// found.
func (r *Reader) FindCharFrom(ch byte, from int) int {
	if i := strings.IndexByte(r.input[from:], ch); i >= 0 {
		return from + i
	}
	return -1
}

// FindStringFrom finds the literal s starting at the given position. Returns
// -1 when not found.
func (r *Reader) FindStringFrom(s string, from int) int {
	if i := strings.Index(r.input[from:], s); i >= 0 {
		return from + i
	}
	return -1
}

// FindOutOfQuotes finds ch starting at the given position, ignoring
// occurrences inside a single- or double-quoted string. A quote character
// preceded by a backslash does not toggle the quote state. If the end of the
// input is reached while still inside quotes, an ErrUnterminatedQuote syntax
// error is returned, positioned at the offending quote. Returns -1 when ch is
// not found outside quotes.
func (r *Reader) FindOutOfQuotes(ch byte, from int) (int, error) {
	var quote byte
	var quotePos int
	var prev byte
	for i := from; i < len(r.input); i++ {
		c := r.input[i]
		if quote == 0 {
			if c == '\'' || c == '"' {
				quote = c
				quotePos = i
			}
		} else if c == quote && prev != '\\' {
			quote = 0
		}
		if c == ch && quote == 0 {
			return i, nil
		}
		prev = c
	}
	if quote != 0 {
		return -1, &SyntaxError{Err: ErrUnterminatedQuote, Pos: r.PositionAt(quotePos)}
	}
	return -1, nil
}

// CountLinesTo advances the line/column counters up to the byte offset end.
// Counting is memoized: it resumes where the previous call left off, so
// offsets must be non-decreasing across calls. Offsets before the last counted
// position are ignored.
func (r *Reader) CountLinesTo(end int) {
	if end <= r.lastCounted {
		return
	}
	for _, ch := range r.input[r.lastCounted:end] {
		switch ch {
		case '\n':
			r.line++
			r.column = 1
		case '\r':
			// Ignored; \r\n counts as one line break.
		default:
			r.column++
		}
	}
	r.lastCounted = end
}

// LineNumber returns the line of the last offset passed to CountLinesTo.
func (r *Reader) LineNumber() int {
	return r.line
}

// ColumnNumber returns the column of the last offset passed to CountLinesTo.
func (r *Reader) ColumnNumber() int {
	return r.column
}

// PositionAt counts lines up to offset and returns the full source position.
// Like CountLinesTo, offset must not precede earlier counted offsets.
func (r *Reader) PositionAt(offset int) Position {
	r.CountLinesTo(offset)
	return Position{Offset: offset, Line: r.line, Column: r.column}
}
