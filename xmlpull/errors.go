package xmlpull

import (
	"errors"
	"fmt"
)

// Sentinel causes for syntax errors. Match with errors.Is.
var (
	ErrUnterminatedQuote   = errors.New("opening/closing quote not found")
	ErrNoCloseBracket      = errors.New("no closing bracket found")
	ErrEmptyTag            = errors.New("empty tag")
	ErrMalformedTag        = errors.New("malformed tag")
	ErrUnclosedComment     = errors.New("unclosed comment")
	ErrUnclosedCdata       = errors.New("unclosed CDATA section")
	ErrUnterminatedRawText = errors.New("unterminated raw text element")
	ErrAttrValueUnquoted   = errors.New("attribute value must be quoted")
	ErrDuplicateAttribute  = errors.New("duplicate attribute")
)

// Sentinel causes for encoding resolution errors. Match with errors.Is.
var (
	ErrEncodingMismatch    = errors.New("declared encoding conflicts with byte order mark")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrInvalidDeclaration  = errors.New("invalid XML declaration")
)

// SyntaxError is a fatal lexical error. It wraps one of the sentinel causes
// above and carries the source position where the problem was found.
type SyntaxError struct {
	Err    error
	Pos    Position
	Detail string // problem-specific context, may be empty
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%v at (line %d, column %d) position %d", e.Err, e.Pos.Line, e.Pos.Column, e.Pos.Offset)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// EncodingError is a fatal error produced while resolving the input encoding,
// before tokenization starts.
type EncodingError struct {
	Err      error
	Detected string // encoding implied by the byte order mark, if any
	Declared string // encoding named by the <?xml ?> declaration, if any
}

func (e *EncodingError) Error() string {
	switch {
	case e.Detected != "" && e.Declared != "":
		return fmt.Sprintf("%v: byte order mark says %q, declaration says %q", e.Err, e.Detected, e.Declared)
	case e.Declared != "":
		return fmt.Sprintf("%v: %q", e.Err, e.Declared)
	case e.Detected != "":
		return fmt.Sprintf("%v: %q", e.Err, e.Detected)
	}
	return e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
