package xmlpull

import (
	"strings"

	"golang.org/x/net/html"
)

// TagType discriminates the three element tag kinds.
type TagType int

const (
	// Open is a start tag like <div>.
	Open TagType = iota
	// Close is an end tag like </div>.
	Close
	// OpenClose is a self-contained tag like <div/>.
	OpenClose
)

func (t TagType) String() string {
	switch t {
	case Open:
		return "open"
	case Close:
		return "close"
	case OpenClose:
		return "open-close"
	}
	return "unknown"
}

// Attr is a single tag attribute. The key is always a zero-copy span into the
// source buffer; the value is a span too unless HTML entity unescaping changed
// the bytes, in which case an owned decoded string is stored instead.
type Attr struct {
	src        string
	key        Span
	value      Span
	ownedKey   string // set for synthesized attributes
	ownedValue string // set when the value no longer matches the source bytes
	decoded    bool   // ownedValue is authoritative
	hasValue   bool   // false for boolean attributes like <input disabled>
}

// Key returns the attribute name.
func (a Attr) Key() string {
	if a.ownedKey != "" {
		return a.ownedKey
	}
	return a.key.In(a.src)
}

// Value returns the attribute value, empty for boolean attributes.
func (a Attr) Value() string {
	if a.decoded {
		return a.ownedValue
	}
	return a.value.In(a.src)
}

// HasValue reports whether the attribute had an explicit value.
func (a Attr) HasValue() bool {
	return a.hasValue
}

// IsDecoded reports whether the value holds an owned decoded string instead of
// a zero-copy span.
func (a Attr) IsDecoded() bool {
	return a.decoded
}

// KeySpan returns the span of the key in the source buffer. Zero for
// synthesized attributes.
func (a Attr) KeySpan() Span {
	return a.key
}

// ValueSpan returns the span of the raw value in the source buffer. Only
// meaningful when IsDecoded is false.
func (a Attr) ValueSpan() Span {
	return a.value
}

// Tag is the zero-copy model of one element tag. For tags produced by the
// tokenizer all spans index into the shared source buffer; tags synthesized by
// filters own their text instead and are always marked modified.
type Tag struct {
	src       string // buffer the spans index into
	raw       Span   // whole tag text including brackets
	pos       Position
	length    int // length in the document; 0 for synthesized tags
	typ       TagType
	name      Span
	namespace Span
	hasNS     bool
	ownedName string // set for synthesized tags
	ownedNS   string
	attrs     []Attr
	modified  bool
}

// NewTag creates a synthesized tag that has no backing source text. The
// namespace may be empty. Synthesized tags are modified by construction: they
// must be re-serialized, never copied from the buffer.
func NewTag(namespace, name string, typ TagType) *Tag {
	return &Tag{
		typ:       typ,
		ownedName: name,
		ownedNS:   namespace,
		hasNS:     namespace != "",
		modified:  true,
	}
}

// Type returns the tag kind.
func (t *Tag) Type() TagType {
	return t.typ
}

// SetType changes the tag kind and marks the tag modified.
func (t *Tag) SetType(tt TagType) {
	if t.typ != tt {
		t.typ = tt
		t.modified = true
	}
}

// IsOpen reports whether the tag is a start tag.
func (t *Tag) IsOpen() bool { return t.typ == Open }

// IsClose reports whether the tag is an end tag.
func (t *Tag) IsClose() bool { return t.typ == Close }

// IsOpenClose reports whether the tag is self-contained.
func (t *Tag) IsOpenClose() bool { return t.typ == OpenClose }

// Name returns the local tag name.
func (t *Tag) Name() string {
	if t.ownedName != "" {
		return t.ownedName
	}
	return t.name.In(t.src)
}

// Namespace returns the namespace prefix, or "" when the name is unqualified.
func (t *Tag) Namespace() string {
	if !t.hasNS {
		return ""
	}
	if t.ownedNS != "" {
		return t.ownedNS
	}
	return t.namespace.In(t.src)
}

// Raw returns the original tag text including brackets, or "" for synthesized
// tags.
func (t *Tag) Raw() string {
	if t.src == "" {
		return ""
	}
	return t.raw.In(t.src)
}

// Pos returns the position of the opening '<' in the document. Synthesized
// tags carry the anchor position assigned by the filter that created them.
func (t *Tag) Pos() Position {
	return t.pos
}

// SetPos anchors a synthesized tag at the given document position.
func (t *Tag) SetPos(pos Position) {
	t.pos = pos
}

// Length returns the tag length in the document, 0 for synthesized tags.
func (t *Tag) Length() int {
	return t.length
}

// Attrs returns the attributes in document order.
func (t *Tag) Attrs() []Attr {
	return t.attrs
}

// Attr returns the value of the named attribute and whether it is present.
// Keys are case-sensitive.
func (t *Tag) Attr(key string) (string, bool) {
	for _, a := range t.attrs {
		if a.Key() == key {
			return a.Value(), true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (t *Tag) HasAttr(key string) bool {
	_, ok := t.Attr(key)
	return ok
}

// SetAttr sets an attribute to an owned value, replacing an existing one with
// the same key, and marks the tag modified.
func (t *Tag) SetAttr(key, value string) {
	t.modified = true
	for i, a := range t.attrs {
		if a.Key() == key {
			t.attrs[i].ownedValue = value
			t.attrs[i].decoded = true
			t.attrs[i].hasValue = true
			return
		}
	}
	t.attrs = append(t.attrs, Attr{
		ownedKey:   key,
		ownedValue: value,
		decoded:    true,
		hasValue:   true,
	})
}

// RemoveAttr deletes the named attribute and marks the tag modified. Reports
// whether the attribute was present.
func (t *Tag) RemoveAttr(key string) bool {
	for i, a := range t.attrs {
		if a.Key() == key {
			t.attrs = append(t.attrs[:i], t.attrs[i+1:]...)
			t.modified = true
			return true
		}
	}
	return false
}

// Modified reports whether the tag must be re-serialized instead of copied
// verbatim from the source buffer.
func (t *Tag) Modified() bool {
	return t.modified
}

// SetModified marks the tag as modified.
func (t *Tag) SetModified(modified bool) {
	t.modified = modified
}

// String serializes the tag. Unmodified tags reproduce their original source
// bytes exactly; modified and synthesized tags are rebuilt from the model.
func (t *Tag) String() string {
	if !t.modified && t.src != "" {
		return t.Raw()
	}
	var b strings.Builder
	b.WriteByte('<')
	if t.typ == Close {
		b.WriteByte('/')
	}
	if ns := t.Namespace(); ns != "" {
		b.WriteString(ns)
		b.WriteByte(':')
	}
	b.WriteString(t.Name())
	for _, a := range t.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key())
		if a.HasValue() {
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Value()))
			b.WriteByte('"')
		}
	}
	if t.typ == OpenClose {
		b.WriteByte('/')
	}
	b.WriteByte('>')
	return b.String()
}
