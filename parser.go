package markup

import (
	"strings"

	"github.com/dpotapov/go-markup/xmlpull"
)

// Options configures one parse.
type Options struct {
	// Namespace is the reserved component namespace. DefaultNamespace when
	// empty.
	Namespace string

	// Filters run after the identifier filter, in order.
	Filters []Filter
}

// Parse parses pre-decoded markup text into the final element sequence.
func Parse(text string, opts *Options) (*Markup, error) {
	return newParser(text, opts).parse()
}

// ParseBytes resolves the encoding of raw markup bytes (byte order mark and
// XML declaration sniffing), decodes them and parses the result.
func ParseBytes(b []byte, opts *Options) (*Markup, error) {
	text, enc, err := xmlpull.DecodeBytes(b)
	if err != nil {
		return nil, err
	}
	m, err := Parse(text, opts)
	if err != nil {
		return nil, err
	}
	m.Encoding = enc
	return m, nil
}

// parser drives one parse: it pulls filtered elements from the pipeline,
// resolves open/close tag pairs and assembles the final sequence, merging the
// text around discarded tags into raw markup spans. One parser serves one
// document, once.
type parser struct {
	reader   *xmlpull.Reader
	pipe     *pipeline
	elements []Element

	// opens is the stack of open element tags, promoted or not, used to link
	// close tags to their open tag.
	opens []*openEntry
}

type openEntry struct {
	ct *ComponentTag
	// index of the promoted open element in the final sequence, -1 while (or
	// if never) promoted.
	index int
}

func newParser(text string, opts *Options) *parser {
	ns := ""
	var extra []Filter
	if opts != nil {
		ns = opts.Namespace
		extra = opts.Filters
	}
	r := xmlpull.NewReader(text)
	filters := make([]Filter, 0, len(extra)+1)
	filters = append(filters, &IdentifierFilter{Namespace: ns})
	filters = append(filters, extra...)
	return &parser{
		reader: r,
		pipe:   &pipeline{z: xmlpull.NewTokenizer(r), filters: filters},
	}
}

func (p *parser) parse() (*Markup, error) {
	for {
		el, err := p.pipe.next()
		if err != nil {
			return nil, err
		}
		if el == nil {
			break
		}
		switch e := el.(type) {
		case *ComponentTag:
			p.handleTag(e)
		case *SpecialTag:
			p.handleSpecial(e)
		case *RawMarkup:
			p.handleRaw(e)
		}
	}

	// Flush raw text trailing the last accepted element.
	if gap := p.reader.MarkerSpan(-1); !gap.IsEmpty() {
		p.appendRaw(gap)
	}

	return &Markup{Source: p.reader.String(), Elements: p.elements}, nil
}

// handleTag decides whether an element tag is significant and, if so,
// promotes it. A tag is significant when it carries an identifier, closes a
// tag that does, or was marked modified by a filter.
func (p *parser) handleTag(ct *ComponentTag) {
	tag := ct.Tag

	var entry *openEntry
	switch tag.Type() {
	case xmlpull.Open:
		entry = &openEntry{ct: ct, index: -1}
		p.opens = append(p.opens, entry)
	case xmlpull.Close:
		// An unmatched close tag is tolerated: it stays unlinked and is
		// promoted only under the ordinary significance rules.
		if open := p.resolveClose(tag); open != nil {
			ct.OpenTag = open.ct
			ct.Closes = open.index
		}
	}

	if ct.ID == "" && !tag.Modified() && (ct.OpenTag == nil || ct.OpenTag.ID == "") {
		return
	}
	p.promote(ct, tag.Pos().Offset, tag.Length())
	if entry != nil {
		entry.index = len(p.elements) - 1
	}
}

// handleRaw appends a raw markup span synthesized by a filter. The span
// counts as consumed source text: the marker moves past it so a tag replaced
// by raw spans is not emitted a second time by the gap logic.
func (p *parser) handleRaw(rm *RawMarkup) {
	if gap := p.reader.MarkerSpan(rm.Span.Start); !gap.IsEmpty() {
		p.appendRaw(gap)
	}
	if rm.Span.End > p.reader.Marker() {
		p.reader.SetMarker(rm.Span.End)
	}
	p.appendRaw(rm.Span)
}

// handleSpecial promotes a special construct only when a filter marked it
// modified; otherwise it stays part of the surrounding raw text.
func (p *parser) handleSpecial(st *SpecialTag) {
	if st.Token.Tag == nil || !st.Token.Tag.Modified() {
		return
	}
	p.promote(st, st.Token.Span.Start, st.Token.Span.Len())
}

// promote appends el to the final sequence, first emitting the raw markup gap
// between the previously accepted element and this one.
func (p *parser) promote(el Element, offset, length int) {
	if gap := p.reader.MarkerSpan(offset); !gap.IsEmpty() {
		p.appendRaw(gap)
	}
	p.reader.SetMarker(offset + length)
	p.elements = append(p.elements, el)
}

// appendRaw appends a raw markup span, extending the previous element when
// the two ranges are byte-contiguous.
func (p *parser) appendRaw(span xmlpull.Span) {
	if len(p.elements) > 0 {
		if last, ok := p.elements[len(p.elements)-1].(*RawMarkup); ok && last.Span.End == span.Start {
			last.Span.End = span.End
			return
		}
	}
	p.elements = append(p.elements, &RawMarkup{Span: span})
}

// resolveClose pops the open stack down to the entry the close tag matches
// and returns it, or nil when nothing matches.
func (p *parser) resolveClose(tag *xmlpull.Tag) *openEntry {
	for i := len(p.opens) - 1; i >= 0; i-- {
		open := p.opens[i].ct.Tag
		if strings.EqualFold(open.Name(), tag.Name()) &&
			strings.EqualFold(open.Namespace(), tag.Namespace()) {
			entry := p.opens[i]
			p.opens = p.opens[:i]
			return entry
		}
	}
	return nil
}
