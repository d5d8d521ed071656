package markup

import (
	"fmt"
	"strings"
)

// DefaultNamespace is the reserved component namespace when Options leaves it
// empty.
const DefaultNamespace = "m"

// wellKnownTags are the element names allowed inside the reserved namespace.
var wellKnownTags = map[string]bool{
	"container": true,
	"fragment":  true,
	"extend":    true,
	"child":     true,
	"enclosure": true,
	"remove":    true,
	"head":      true,
	"link":      true,
	"body":      true,
	"border":    true,
	"panel":     true,
	"message":   true,
}

// IdentifierFilter assigns component identifiers to tags. A tag carrying the
// reserved-namespace id attribute (e.g. m:id="name") becomes significant and
// is promoted by the assembler. Tags whose element name lives in the reserved
// namespace must be well-known; those without an explicit id get a generated
// one.
//
// It is always the first filter of the chain.
type IdentifierFilter struct {
	// Namespace is the reserved namespace, DefaultNamespace when empty.
	Namespace string

	autoID int
}

// Process implements Filter.
func (f *IdentifierFilter) Process(el Element) (Result, error) {
	ct, ok := el.(*ComponentTag)
	if !ok {
		return Keep(el), nil
	}

	ns := f.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	reserved := strings.EqualFold(ct.Tag.Namespace(), ns)
	if reserved && !wellKnownTags[strings.ToLower(ct.Tag.Name())] {
		return Result{}, &TagError{
			Err:  ErrUnknownReservedTag,
			Pos:  ct.Tag.Pos(),
			Name: qualifiedName(ct.Tag),
		}
	}

	if ct.Tag.IsClose() {
		// Close tags carry no attributes; their significance follows from
		// the open tag they match.
		return Keep(el), nil
	}

	id, hasID := ct.Tag.Attr(ns + ":id")

	if reserved && !hasID {
		f.autoID++
		ct.ID = fmt.Sprintf("_%s_%s%d", ns, strings.ToLower(ct.Tag.Name()), f.autoID)
		return Keep(ct), nil
	}

	if hasID {
		if id == "" {
			return Result{}, &TagError{
				Err:  ErrEmptyIdentifier,
				Pos:  ct.Tag.Pos(),
				Name: qualifiedName(ct.Tag),
			}
		}
		ct.ID = id
	}
	return Keep(ct), nil
}
