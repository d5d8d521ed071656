package markup

import (
	"errors"
	"fmt"

	"github.com/dpotapov/go-markup/xmlpull"
)

// Sentinel causes for filter errors. Match with errors.Is.
var (
	ErrUnknownReservedTag = errors.New("unknown tag in reserved namespace")
	ErrEmptyIdentifier    = errors.New("empty component identifier")
)

// TagError is a fatal semantic error raised by a filter for a specific tag.
// It has the same reporting shape as a tokenizer syntax error: a sentinel
// cause plus the tag position.
type TagError struct {
	Err  error
	Pos  xmlpull.Position
	Name string // qualified tag name
}

func (e *TagError) Error() string {
	return fmt.Sprintf("%v: %q at (line %d, column %d) position %d",
		e.Err, e.Name, e.Pos.Line, e.Pos.Column, e.Pos.Offset)
}

func (e *TagError) Unwrap() error {
	return e.Err
}

func qualifiedName(tag *xmlpull.Tag) string {
	if ns := tag.Namespace(); ns != "" {
		return ns + ":" + tag.Name()
	}
	return tag.Name()
}
