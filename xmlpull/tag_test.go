package xmlpull

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexTag(t *testing.T, src string) *Tag {
	t.Helper()
	tok, err := NewTokenizer(NewReader(src)).Next()
	require.NoError(t, err)
	require.Equal(t, TagToken, tok.Type)
	return tok.Tag
}

func TestTagStringUnmodified(t *testing.T) {
	// Whatever the original spelling, an untouched tag reproduces it exactly.
	for _, src := range []string{
		`<a href='x'   title="y">`,
		`<br/>`,
		`</div>`,
		`<input   DISABLED>`,
	} {
		tag := lexTag(t, src)
		assert.False(t, tag.Modified())
		assert.Equal(t, src, tag.String())
	}
}

func TestTagSetAttr(t *testing.T) {
	tag := lexTag(t, `<a href="x">`)

	tag.SetAttr("href", "y")
	assert.True(t, tag.Modified())
	assert.Equal(t, `<a href="y">`, tag.String())

	tag.SetAttr("class", "link")
	assert.Equal(t, `<a href="y" class="link">`, tag.String())
}

func TestTagSetAttrEscapesValue(t *testing.T) {
	tag := lexTag(t, `<a>`)
	tag.SetAttr("title", `a<b&"c"`)
	assert.Equal(t, `<a title="a&lt;b&amp;&#34;c&#34;">`, tag.String())
}

func TestTagRemoveAttr(t *testing.T) {
	tag := lexTag(t, `<a href="x" class="c">`)

	require.True(t, tag.RemoveAttr("href"))
	assert.True(t, tag.Modified())
	assert.Equal(t, `<a class="c">`, tag.String())

	assert.False(t, tag.RemoveAttr("missing"))
}

func TestTagSetType(t *testing.T) {
	tag := lexTag(t, `<div class="c"/>`)
	require.True(t, tag.IsOpenClose())

	tag.SetType(Open)
	assert.True(t, tag.Modified())
	assert.Equal(t, `<div class="c">`, tag.String())
}

func TestNewTag(t *testing.T) {
	tag := NewTag("", "div", Close)
	assert.True(t, tag.Modified(), "synthesized tags must be re-serialized")
	assert.Zero(t, tag.Length())
	assert.Empty(t, tag.Raw())
	assert.Equal(t, "</div>", tag.String())

	panel := NewTag("m", "panel", OpenClose)
	panel.SetAttr("m:id", "p")
	assert.Equal(t, `<m:panel m:id="p"/>`, panel.String())
}

func TestTagModifiedSerializationKeepsDecodedValues(t *testing.T) {
	tag := lexTag(t, `<a title='a&amp;b' href="x">`)
	tag.SetAttr("href", "y")

	// Re-serialization escapes the decoded title back into entity form.
	assert.Equal(t, `<a title="a&amp;b" href="y">`, tag.String())
}
