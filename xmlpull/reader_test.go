package xmlpull

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindOutOfQuotes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "nested quotes",
			src:  `<a href='b \'" > a' theAtr="at'r'\"r">`,
		},
		{
			name: "quoted exclamation and brackets",
			src:  `<a href='b " >!! a<??!!' theAtr=">">`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.src)
			pos, err := r.FindOutOfQuotes('>', 0)
			require.NoError(t, err)
			require.Equal(t, byte('>'), tt.src[pos])
			require.Equal(t, len(tt.src), pos+1, "should find the final bracket")
		})
	}
}

func TestFindOutOfQuotesUnterminated(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		line   int
		column int
	}{
		{name: "missing closing quote", src: `<a href='blabla>`, line: 1, column: 9},
		{name: "missing opening quote", src: `<a href=blabla'>`, line: 1, column: 15},
		{name: "missing closing double quote", src: `<a href="blabla>`, line: 1, column: 9},
		{name: "missing opening double quote", src: `<a href=blabla"a>`, line: 1, column: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.src)
			_, err := r.FindOutOfQuotes('>', 0)
			require.ErrorIs(t, err, ErrUnterminatedQuote)

			var serr *SyntaxError
			require.True(t, errors.As(err, &serr))
			require.Equal(t, tt.line, serr.Pos.Line)
			require.Equal(t, tt.column, serr.Pos.Column)
		})
	}
}

func TestFindPrimitives(t *testing.T) {
	r := NewReader("abc<def<ghi")

	require.Equal(t, 3, r.FindChar('<'))
	require.Equal(t, -1, r.FindChar('x'))
	require.Equal(t, 7, r.FindCharFrom('<', 4))
	require.Equal(t, 4, r.FindStringFrom("def", 0))
	require.Equal(t, -1, r.FindStringFrom("def", 5))

	r.SetPosition(4)
	require.Equal(t, 7, r.FindChar('<'))
}

func TestCountLinesTo(t *testing.T) {
	r := NewReader("one\ntwo\r\nthree")

	r.CountLinesTo(4) // just past the first \n
	require.Equal(t, 2, r.LineNumber())
	require.Equal(t, 1, r.ColumnNumber())

	// Counting resumes where it left off.
	r.CountLinesTo(12) // "thr"
	require.Equal(t, 3, r.LineNumber())
	require.Equal(t, 4, r.ColumnNumber())

	// Earlier offsets are ignored, the memo only moves forward.
	r.CountLinesTo(2)
	require.Equal(t, 3, r.LineNumber())
}

func TestMarkerSpan(t *testing.T) {
	r := NewReader("0123456789")

	r.SetMarker(3)
	require.Equal(t, Span{Start: 3, End: 7}, r.MarkerSpan(7))
	require.Equal(t, Span{Start: 3, End: 10}, r.MarkerSpan(-1))
	require.True(t, r.MarkerSpan(2).IsEmpty(), "offset before the marker yields an empty span")
	require.Equal(t, "3456", r.MarkerSpan(7).In(r.String()))
}
