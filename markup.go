// Package markup tokenizes HTML/XML-like template markup and assembles the
// result into an ordered document model: spans of raw markup interleaved with
// promoted component tags. The hand-written tokenizer lives in the xmlpull
// subpackage; this package adds the filter pipeline and the assembler that
// decides which tags are significant enough to keep as structure.
//
// One Parse call handles exactly one document in a single forward pass. The
// produced Markup shares the decoded source buffer with every element in it:
// raw markup and unmodified tags are zero-copy views, and WriteTo reproduces
// an unmodified document byte for byte.
package markup

import (
	"io"
)

// Markup is the parsed document: the shared source buffer plus the ordered
// element sequence a renderer walks once in document order. It is immutable
// after Parse returns.
type Markup struct {
	// Source is the decoded markup text all element spans point into.
	Source string

	// Encoding is the resolved encoding name for byte-stream input, empty
	// when the input was pre-decoded text.
	Encoding string

	// Elements is the final ordered sequence.
	Elements []Element
}

// WriteTo writes the document to w: raw markup spans verbatim from the source
// buffer, modified tags re-serialized, everything else copied byte for byte.
func (m *Markup) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, el := range m.Elements {
		var s string
		switch e := el.(type) {
		case *RawMarkup:
			s = e.Span.In(m.Source)
		case *ComponentTag:
			s = e.Tag.String()
		case *SpecialTag:
			s = e.Token.Span.In(m.Source)
		}
		n, err := io.WriteString(w, s)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Tags returns the promoted component tags in document order.
func (m *Markup) Tags() []*ComponentTag {
	var tags []*ComponentTag
	for _, el := range m.Elements {
		if ct, ok := el.(*ComponentTag); ok {
			tags = append(tags, ct)
		}
	}
	return tags
}
