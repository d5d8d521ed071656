package markup

import (
	"strings"

	"github.com/dpotapov/go-markup/xmlpull"
)

// voidElements are the HTML elements that have no close tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// OpenCloseExpander rewrites a self-contained container tag like <div/> into
// an open tag plus a synthesized close tag, so downstream consumers always
// see container content as an open/close pair. Void elements (<br/>, <img/>,
// ...) are left alone. Both produced tags are marked modified and therefore
// promoted.
//
// Not part of the default chain; enable it via Options.Filters.
type OpenCloseExpander struct{}

// Process implements Filter.
func (OpenCloseExpander) Process(el Element) (Result, error) {
	ct, ok := el.(*ComponentTag)
	if !ok || !ct.Tag.IsOpenClose() {
		return Keep(el), nil
	}
	if ct.Tag.Namespace() == "" && voidElements[strings.ToLower(ct.Tag.Name())] {
		return Keep(el), nil
	}

	raw := ct.Tag.Raw()
	ct.Tag.SetType(xmlpull.Open)

	closeTag := xmlpull.NewTag(ct.Tag.Namespace(), ct.Tag.Name(), xmlpull.Close)
	// Anchor the synthesized tag at the end of the original one so the
	// assembler's gap arithmetic stays contiguous.
	closeTag.SetPos(positionAfter(ct.Tag.Pos(), raw))

	return Replace(ct, newComponentTag(closeTag)), nil
}

// positionAfter advances pos over the raw source text, with the same line
// break rules as the reader's line counting.
func positionAfter(pos xmlpull.Position, raw string) xmlpull.Position {
	pos.Offset += len(raw)
	for _, r := range raw {
		switch r {
		case '\n':
			pos.Line++
			pos.Column = 1
		case '\r':
		default:
			pos.Column++
		}
	}
	return pos
}
