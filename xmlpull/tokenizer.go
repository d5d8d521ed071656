package xmlpull

import (
	"fmt"
	"strings"
)

// TokenType classifies one unit of the tokenizer's forward pass.
type TokenType int

const (
	// EndToken marks the end of the input. Next keeps returning it once the
	// buffer is exhausted.
	EndToken TokenType = iota
	// BodyToken is raw text between two tags, including skipped script/style
	// bodies.
	BodyToken
	// TagToken is an element tag: <name>, </name> or <name/>.
	TagToken
	// CommentToken is <!-- ... -->.
	CommentToken
	// ConditionalCommentToken is a down-level-revealed conditional comment
	// opener like <!--[if IE]>. Its span covers the whole construct up to
	// "]-->", but the enclosed markup is still tokenized by subsequent calls.
	ConditionalCommentToken
	// ConditionalCommentEndifToken is <![endif]--> in any of its spellings.
	ConditionalCommentEndifToken
	// CdataToken is <![CDATA[ ... ]]>.
	CdataToken
	// ProcessingInstructionToken is <? ... >.
	ProcessingInstructionToken
	// DoctypeToken is <!DOCTYPE ... >.
	DoctypeToken
	// SpecialToken is any other <! ... > construct.
	SpecialToken
)

func (t TokenType) String() string {
	switch t {
	case EndToken:
		return "end"
	case BodyToken:
		return "body"
	case TagToken:
		return "tag"
	case CommentToken:
		return "comment"
	case ConditionalCommentToken:
		return "conditional comment"
	case ConditionalCommentEndifToken:
		return "conditional comment endif"
	case CdataToken:
		return "cdata"
	case ProcessingInstructionToken:
		return "processing instruction"
	case DoctypeToken:
		return "doctype"
	case SpecialToken:
		return "special"
	}
	return "unknown"
}

// Token is one classified unit from the forward pass. Span covers the whole
// construct in the source buffer. Payload narrows it to the interesting part
// for CDATA sections, doctypes and processing instructions; for everything
// else it equals Span. Tag is populated for TagToken and, with name and
// attributes left empty, for the special-family tokens so that downstream
// filters can treat all non-body tokens uniformly.
type Token struct {
	Type    TokenType
	Span    Span
	Payload Span
	Tag     *Tag
	Pos     Position
}

// Tokenizer is the forward-only lexical state machine. One instance serves
// exactly one document, one token per Next call; it is not reusable and not
// safe for concurrent use.
type Tokenizer struct {
	input *Reader

	// skipUntil holds the name of a raw-text element (script or style) whose
	// body must be skipped verbatim by the next call. Empty when disarmed.
	skipUntil string
}

// NewTokenizer returns a Tokenizer reading from r.
func NewTokenizer(r *Reader) *Tokenizer {
	return &Tokenizer{input: r}
}

// Reader returns the underlying reader. The caller uses it for the position
// marker mechanism that captures inter-tag text.
func (z *Tokenizer) Reader() *Reader {
	return z.input
}

// Next returns the next token and leaves the cursor just past it. At the end
// of the buffer it returns an EndToken, idempotently on repeated calls. Any
// returned error is fatal to the parse.
func (z *Tokenizer) Next() (Token, error) {
	r := z.input

	if r.Position() == r.Size() {
		return Token{Type: EndToken, Pos: Position{Offset: r.Size(), Line: r.LineNumber(), Column: r.ColumnNumber()}}, nil
	}

	if z.skipUntil != "" {
		return z.skipRawText()
	}

	pos := r.Position()
	open := r.FindChar('<')

	if r.CharAt(pos) != '<' {
		// Body text up to the next tag, or to the end of the input.
		end := open
		if end < 0 {
			end = r.Size()
		}
		span := Span{Start: pos, End: end}
		tok := Token{Type: BodyToken, Span: span, Payload: span, Pos: r.PositionAt(pos)}
		r.SetPosition(end)
		return tok, nil
	}

	tagPos := r.PositionAt(open)

	// For <! and <? constructs the closing bracket is the next plain '>'.
	// For ordinary tags a '>' inside a quoted attribute value must not
	// terminate the tag.
	closing := -1
	if open+1 < r.Size() {
		switch r.CharAt(open + 1) {
		case '!', '?':
			closing = r.FindCharFrom('>', open)
		default:
			var err error
			closing, err = r.FindOutOfQuotes('>', open)
			if err != nil {
				return Token{}, err
			}
		}
	}
	if closing < 0 {
		return Token{}, &SyntaxError{Err: ErrNoCloseBracket, Pos: tagPos}
	}

	inner := r.Substring(open+1, closing)
	if inner == "" {
		return Token{}, &SyntaxError{Err: ErrEmptyTag, Pos: tagPos}
	}

	if inner[0] == '!' || inner[0] == '?' {
		return z.specialTag(open, closing, inner, tagPos)
	}
	return z.elementTag(open, closing, inner, tagPos)
}

// skipRawText consumes the body of an armed raw-text element (script/style)
// verbatim. It searches for the literal closing tag, emits everything before
// it as a single body token and leaves the cursor at the closing tag so it is
// tokenized normally by the next call.
func (z *Tokenizer) skipRawText() (Token, error) {
	r := z.input
	start := r.Position()
	name := z.skipUntil

	for search := start; ; {
		lt := r.FindStringFrom("</", search)
		if lt < 0 {
			return Token{}, &SyntaxError{
				Err:    ErrUnterminatedRawText,
				Pos:    r.PositionAt(start),
				Detail: fmt.Sprintf("element %q", name),
			}
		}
		nameEnd := lt + 2 + len(name)
		if nameEnd < r.Size() &&
			strings.EqualFold(r.Substring(lt+2, nameEnd), name) &&
			r.CharAt(nameEnd) == '>' {
			span := Span{Start: start, End: lt}
			tok := Token{Type: BodyToken, Span: span, Payload: span, Pos: r.PositionAt(start)}
			r.SetPosition(lt)
			z.skipUntil = ""
			return tok, nil
		}
		search = lt + 2
	}
}

// specialTag handles <!-- ... -->, conditional comments, <![CDATA[ ... ]]>,
// <? ... >, <!DOCTYPE ... > and any other <! ... > construct. open and closing
// are the offsets of the brackets found so far; inner is the text between
// them.
func (z *Tokenizer) specialTag(open, closing int, inner string, tagPos Position) (Token, error) {
	r := z.input

	mk := func(typ TokenType, span, payload Span) Token {
		tag := &Tag{
			src:    r.input,
			raw:    span,
			pos:    tagPos,
			length: span.Len(),
			typ:    Open,
		}
		return Token{Type: typ, Span: span, Payload: payload, Tag: tag, Pos: tagPos}
	}

	switch {
	case strings.HasPrefix(inner, "!--"):
		// Down-level-revealed endif spelled as a comment, e.g. <!--<![endif]-->.
		if strings.Contains(inner, "![endif]--") {
			span := Span{Start: open, End: closing + 1}
			r.SetPosition(closing + 1)
			return mk(ConditionalCommentEndifToken, span, span), nil
		}
		// Conditional comment opener: the enclosed markup is NOT swallowed.
		// The span covers the construct up to "]-->" but the cursor advances
		// only past the opener's '>'.
		if strings.HasPrefix(inner, "!--[if ") && strings.HasSuffix(inner, "]") {
			end := r.FindStringFrom("]-->", open+1)
			if end < 0 {
				return Token{}, &SyntaxError{Err: ErrUnclosedComment, Pos: tagPos}
			}
			span := Span{Start: open, End: end + len("]-->")}
			r.SetPosition(closing + 1)
			return mk(ConditionalCommentToken, span, span), nil
		}
		// Plain comment. It may contain '>', so search for the full
		// terminator instead of trusting closing.
		end := r.FindStringFrom("-->", open+1)
		if end < 0 {
			return Token{}, &SyntaxError{Err: ErrUnclosedComment, Pos: tagPos}
		}
		span := Span{Start: open, End: end + len("-->")}
		r.SetPosition(span.End)
		return mk(CommentToken, span, span), nil

	case inner == "![endif]--":
		span := Span{Start: open, End: closing + 1}
		r.SetPosition(closing + 1)
		return mk(ConditionalCommentEndifToken, span, span), nil

	case strings.HasPrefix(inner, "![CDATA["):
		// The section ends at the first '>' preceded by "]]". The first
		// candidate is the bracket already found.
		gt := closing
		for !strings.HasSuffix(r.Substring(open, gt), "]]") {
			gt = r.FindCharFrom('>', gt+1)
			if gt < 0 {
				return Token{}, &SyntaxError{Err: ErrUnclosedCdata, Pos: tagPos}
			}
		}
		span := Span{Start: open, End: gt + 1}
		payload := Span{Start: open + len("<![CDATA["), End: gt - len("]]")}
		r.SetPosition(gt + 1)
		return mk(CdataToken, span, payload), nil

	case inner[0] == '?':
		span := Span{Start: open, End: closing + 1}
		payload := Span{Start: open + 2, End: closing}
		r.SetPosition(closing + 1)
		return mk(ProcessingInstructionToken, span, payload), nil

	case len(inner) >= len("!DOCTYPE") && strings.EqualFold(inner[:len("!DOCTYPE")], "!DOCTYPE"):
		span := Span{Start: open, End: closing + 1}
		payload := Span{Start: open + 1 + len("!DOCTYPE"), End: closing}
		r.SetPosition(closing + 1)
		return mk(DoctypeToken, span, payload), nil

	default:
		span := Span{Start: open, End: closing + 1}
		r.SetPosition(closing + 1)
		return mk(SpecialToken, span, span), nil
	}
}

// elementTag parses an ordinary element tag: its type, name, optional
// namespace prefix and attributes.
func (z *Tokenizer) elementTag(open, closing int, inner string, tagPos Position) (Token, error) {
	r := z.input

	typ := Open
	innerStart, innerEnd := open+1, closing
	switch {
	case strings.HasSuffix(inner, "/"):
		typ = OpenClose
		innerEnd--
	case strings.HasPrefix(inner, "/"):
		typ = Close
		innerStart++
	}
	if innerStart >= innerEnd {
		return Token{}, &SyntaxError{Err: ErrEmptyTag, Pos: tagPos}
	}

	if c := r.CharAt(innerStart); !isNameStart(c) {
		return Token{}, &SyntaxError{
			Err:    ErrMalformedTag,
			Pos:    tagPos,
			Detail: fmt.Sprintf("unexpected character %q", c),
		}
	}
	i := innerStart
	for i < innerEnd && isNameChar(r.CharAt(i)) {
		i++
	}
	name := Span{Start: innerStart, End: i}

	var namespace Span
	hasNS := false
	if i < innerEnd && r.CharAt(i) == ':' {
		namespace = name
		hasNS = true
		i++
		local := i
		for i < innerEnd && isNameChar(r.CharAt(i)) {
			i++
		}
		if i == local {
			return Token{}, &SyntaxError{Err: ErrMalformedTag, Pos: tagPos, Detail: "missing local name"}
		}
		name = Span{Start: local, End: i}
	}

	attrs, rest, err := scanAttributes(r, i, innerEnd)
	if err != nil {
		return Token{}, err
	}
	if rest < innerEnd {
		return Token{}, &SyntaxError{
			Err:    ErrMalformedTag,
			Pos:    r.PositionAt(rest),
			Detail: fmt.Sprintf("unparsed characters %q", r.Substring(rest, innerEnd)),
		}
	}

	// Script and style bodies are skipped verbatim until the literal closing
	// tag: the next call emits them as a single body token.
	if typ == Open {
		switch n := strings.ToLower(name.In(r.input)); n {
		case "script", "style":
			z.skipUntil = n
		}
	}

	span := Span{Start: open, End: closing + 1}
	tag := &Tag{
		src:       r.input,
		raw:       span,
		pos:       tagPos,
		length:    span.Len(),
		typ:       typ,
		name:      name,
		namespace: namespace,
		hasNS:     hasNS,
		attrs:     attrs,
	}
	r.SetPosition(closing + 1)
	return Token{Type: TagToken, Span: span, Payload: span, Tag: tag, Pos: tagPos}, nil
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_'
}

func isNameChar(b byte) bool {
	return isNameStart(b) || b >= '0' && b <= '9' || b == '-' || b == '.'
}
