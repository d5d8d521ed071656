package markup

import (
	"github.com/dpotapov/go-markup/xmlpull"
)

// Element is one entry of the final document sequence: either a span of raw
// markup, a promoted component tag, or a special construct such as a comment
// or CDATA section kept by a filter.
type Element interface {
	element()
}

// RawMarkup is plain markup text that does not interact with component logic:
// body text plus any tags that were not promoted. It is a zero-copy span into
// the shared source buffer.
type RawMarkup struct {
	Span xmlpull.Span
}

func (*RawMarkup) element() {}

// ComponentTag is a significant tag promoted into the final sequence: it
// carries a component identifier, closes a tag that does, or was modified by a
// filter. Insignificant tags are coalesced into the surrounding RawMarkup
// instead.
type ComponentTag struct {
	// Tag is the underlying tag model.
	Tag *xmlpull.Tag

	// ID is the component identifier, usually taken from the reserved
	// namespace id attribute. Empty for insignificant tags.
	ID string

	// OpenTag links a Close tag to the Open tag it matches. Nil for open tags
	// and for close tags with no matching open.
	OpenTag *ComponentTag

	// Closes is the index of the matching Open element in the final sequence,
	// or -1 when there is none or the open tag was not promoted. Kept as a
	// plain index to avoid cyclic references between elements.
	Closes int
}

func newComponentTag(tag *xmlpull.Tag) *ComponentTag {
	return &ComponentTag{Tag: tag, Closes: -1}
}

func (*ComponentTag) element() {}

// SpecialTag is a comment, conditional comment, CDATA section, processing
// instruction, doctype or other <!...> construct. Special tags reach the
// final sequence only when a filter marks their tag modified; otherwise they
// are coalesced into raw markup like any insignificant tag.
type SpecialTag struct {
	Token xmlpull.Token
}

func (*SpecialTag) element() {}
