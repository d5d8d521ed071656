package xmlpull

import (
	"fmt"

	"golang.org/x/net/html"
)

// scanAttributes scans tag attributes over src[from:to], the inner tag text
// past the element name. It returns the attributes in document order and the
// offset at which scanning stopped (to, unless a '/' was hit).
//
// Values must be quoted with ' or "; the quote character itself cannot be
// escaped inside the value. HTML entities in values are unescaped: when that
// changes the bytes the attribute stores an owned decoded string, otherwise it
// keeps a zero-copy span. Duplicate keys are a fatal error.
func scanAttributes(r *Reader, from, to int) ([]Attr, int, error) {
	src := r.input
	var attrs []Attr
	pos := from

	for {
		for pos < to && isSpace(src[pos]) {
			pos++
		}
		if pos >= to || src[pos] == '/' {
			return attrs, pos, nil
		}

		// Key: maximal run of non-whitespace, non-'=' characters.
		keyStart := pos
		for pos < to && !isSpace(src[pos]) && src[pos] != '=' {
			pos++
		}
		key := Span{Start: keyStart, End: pos}

		for pos < to && isSpace(src[pos]) {
			pos++
		}

		a := Attr{src: src, key: key}
		if pos < to && src[pos] == '=' {
			pos++
			for pos < to && isSpace(src[pos]) {
				pos++
			}
			if pos >= to || (src[pos] != '\'' && src[pos] != '"') {
				return nil, pos, &SyntaxError{
					Err:    ErrAttrValueUnquoted,
					Pos:    r.PositionAt(pos),
					Detail: fmt.Sprintf("attribute %q", key.In(src)),
				}
			}
			quote := src[pos]
			pos++
			valStart := pos
			for pos < to && src[pos] != quote {
				pos++
			}
			if pos >= to {
				return nil, pos, &SyntaxError{
					Err:    ErrUnterminatedQuote,
					Pos:    r.PositionAt(valStart - 1),
					Detail: fmt.Sprintf("attribute %q", key.In(src)),
				}
			}
			a.value = Span{Start: valStart, End: pos}
			a.hasValue = true
			pos++ // closing quote

			raw := a.value.In(src)
			if dec := html.UnescapeString(raw); dec != raw {
				a.ownedValue = dec
				a.decoded = true
			}
		}

		for _, prev := range attrs {
			if prev.Key() == a.Key() {
				return nil, pos, &SyntaxError{
					Err: ErrDuplicateAttribute,
					Pos: r.PositionAt(keyStart),
					Detail: fmt.Sprintf("key %q, prior value %q, new value %q",
						a.Key(), prev.Value(), a.Value()),
				}
			}
		}
		attrs = append(attrs, a)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
