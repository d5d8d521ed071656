package markup

import (
	"github.com/dpotapov/go-markup/xmlpull"
)

// pipeline pulls tokens from the tokenizer, wraps them as elements and runs
// them through the filter chain. Elements synthesized by Replace results are
// buffered FIFO and re-enter the chain from the first filter on later pulls.
type pipeline struct {
	z       *xmlpull.Tokenizer
	filters []Filter
	pending []Element
}

// next returns the next filtered element, or nil when both the tokenizer and
// the pending buffer are exhausted.
func (p *pipeline) next() (Element, error) {
	for {
		var el Element

		if len(p.pending) > 0 {
			el = p.pending[0]
			p.pending = p.pending[1:]
		} else {
			// Pull tokens until something filterable appears. Body text is
			// not filtered: the assembler derives it from byte ranges.
			for el == nil {
				tok, err := p.z.Next()
				if err != nil {
					return nil, err
				}
				switch tok.Type {
				case xmlpull.EndToken:
					return nil, nil
				case xmlpull.BodyToken:
					continue
				case xmlpull.TagToken:
					el = newComponentTag(tok.Tag)
				default:
					el = &SpecialTag{Token: tok}
				}
			}
		}

		el, kept, err := p.run(el, 0)
		if err != nil {
			return nil, err
		}
		if kept {
			return el, nil
		}
	}
}

// run passes el through the filters starting at index from. Reports whether
// the element survived the chain.
func (p *pipeline) run(el Element, from int) (Element, bool, error) {
	for i := from; i < len(p.filters); i++ {
		res, err := p.filters[i].Process(el)
		if err != nil {
			return nil, false, err
		}
		switch res.action {
		case keepAction:
			el = res.elements[0]
		case dropAction:
			return nil, false, nil
		case replaceAction:
			if len(res.elements) == 0 {
				return nil, false, nil
			}
			el = res.elements[0]
			p.pending = append(p.pending, res.elements[1:]...)
		}
	}
	return el, true, nil
}
