package xmlpull

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf16le(s string) []byte {
	b := make([]byte, 0, len(s)*2)
	for _, r := range s {
		b = append(b, byte(r), byte(r>>8))
	}
	return b
}

func utf16be(s string) []byte {
	b := make([]byte, 0, len(s)*2)
	for _, r := range s {
		b = append(b, byte(r>>8), byte(r))
	}
	return b
}

func utf32le(s string) []byte {
	b := make([]byte, 0, len(s)*4)
	for _, r := range s {
		b = append(b, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	}
	return b
}

func TestDecodeBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		wantText string
		wantName string
	}{
		{
			name:     "plain ascii, no bom, no declaration",
			input:    []byte("<p>hi</p>"),
			wantText: "<p>hi</p>",
			wantName: "UTF-8",
		},
		{
			name:     "utf-8 bom only",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, "<p/>"...),
			wantText: "<p/>",
			wantName: "UTF-8",
		},
		{
			name:     "utf-8 bom with matching declaration",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, `<?xml version="1.0" encoding="UTF-8"?><p/>`...),
			wantText: `<?xml version="1.0" encoding="UTF-8"?><p/>`,
			wantName: "UTF-8",
		},
		{
			name:     "declaration only",
			input:    []byte(`<?xml version="1.0" encoding="windows-1252"?><p/>`),
			wantText: `<?xml version="1.0" encoding="windows-1252"?><p/>`,
			wantName: "windows-1252",
		},
		{
			name:     "declaration with unquoted encoding value",
			input:    []byte(`<?xml version="1.0" encoding=UTF-8 ?><p/>`),
			wantText: `<?xml version="1.0" encoding=UTF-8 ?><p/>`,
			wantName: "UTF-8",
		},
		{
			name:     "declaration without encoding attribute",
			input:    []byte(`<?xml version="1.0"?><p/>`),
			wantText: `<?xml version="1.0"?><p/>`,
			wantName: "UTF-8",
		},
		{
			name:     "utf-16le bom",
			input:    append([]byte{0xFF, 0xFE}, utf16le("<p>hi</p>")...),
			wantText: "<p>hi</p>",
			wantName: "UTF-16LE",
		},
		{
			name:     "utf-16be bom with matching declaration",
			input:    append([]byte{0xFE, 0xFF}, utf16be(`<?xml version="1.0" encoding="utf-16be"?><p/>`)...),
			wantText: `<?xml version="1.0" encoding="utf-16be"?><p/>`,
			wantName: "UTF-16BE",
		},
		{
			name:     "utf-32le bom",
			input:    append([]byte{0xFF, 0xFE, 0x00, 0x00}, 'a', 0, 0, 0, 'b', 0, 0, 0),
			wantText: "ab",
			wantName: "UTF-32LE",
		},
		{
			name:     "utf-32le bom with matching declaration",
			input:    append([]byte{0xFF, 0xFE, 0x00, 0x00}, utf32le(`<?xml version="1.0" encoding="UTF-32LE"?><p/>`)...),
			wantText: `<?xml version="1.0" encoding="UTF-32LE"?><p/>`,
			wantName: "UTF-32LE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, name, err := DecodeBytes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestDecodeBytesLatin1(t *testing.T) {
	input := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?>caf`), 0xE9)
	text, name, err := DecodeBytes(input)
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1", name)
	assert.Equal(t, `<?xml version="1.0" encoding="ISO-8859-1"?>café`, text)
}

func TestDecodeBytesErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{
			name:    "bom conflicts with declaration",
			input:   append([]byte{0xEF, 0xBB, 0xBF}, `<?xml version="1.0" encoding="UTF-16"?><p/>`...),
			wantErr: ErrEncodingMismatch,
		},
		{
			name:    "unknown declared encoding",
			input:   []byte(`<?xml version="1.0" encoding="KLINGON"?><p/>`),
			wantErr: ErrUnsupportedEncoding,
		},
		{
			name:    "stray bytes before the declaration",
			input:   []byte(`  <?xml version="1.0" encoding="UTF-8"?><p/>`),
			wantErr: ErrInvalidDeclaration,
		},
		{
			name:    "declaration never closed",
			input:   []byte(`<?xml version="1.0" encoding="UTF-8"`),
			wantErr: ErrInvalidDeclaration,
		},
		{
			name:    "encoding value never closed",
			input:   []byte(`<?xml encoding="UTF-8 ?><p/>`),
			wantErr: ErrInvalidDeclaration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeBytes(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeBytesMismatchNamesBoth(t *testing.T) {
	input := append([]byte{0xFF, 0xFE}, utf16le(`<?xml version="1.0" encoding="UTF-8"?>`)...)
	_, _, err := DecodeBytes(input)
	require.ErrorIs(t, err, ErrEncodingMismatch)
	assert.Contains(t, err.Error(), "UTF-16LE")
	assert.Contains(t, err.Error(), "UTF-8")
}
