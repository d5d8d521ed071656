package xmlpull

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// sniffLen is how many characters of the input are inspected for an XML
// declaration.
const sniffLen = 80

// DecodeBytes resolves the character encoding of raw markup bytes and decodes
// them to UTF-8 text. The encoding is determined from a byte order mark, an
// <?xml ... encoding="..."?> declaration anchored at the start of the stream,
// or both; when both are present they must agree (case-insensitively). With
// neither present the input is assumed to be UTF-8.
//
// The returned name is the resolved encoding. The declaration itself is kept
// in the decoded text and tokenizes as a processing instruction.
func DecodeBytes(b []byte) (text string, name string, err error) {
	detected, bomLen := detectBOM(b)

	// The sniff window is sized in characters, not raw bytes: for UTF-16/32
	// input a full-length declaration spans 2 or 4 bytes per character and
	// must not be cut off mid-way.
	end := bomLen + sniffLen*charWidth(detected)
	if end > len(b) {
		end = len(b)
	}

	declared, err := scanDeclaration(decodeSniff(b[bomLen:end], detected))
	if err != nil {
		return "", "", err
	}

	switch {
	case detected == "" && declared == "":
		name = "UTF-8"
	case declared == "":
		name = detected
	case detected == "":
		name = declared
	case strings.EqualFold(detected, declared):
		name = detected
	default:
		return "", "", &EncodingError{Err: ErrEncodingMismatch, Detected: detected, Declared: declared}
	}

	text, err = decode(b[bomLen:], name)
	if err != nil {
		return "", "", err
	}
	return text, name, nil
}

// charWidth returns the bytes per character of a BOM-implied encoding.
func charWidth(name string) int {
	switch name {
	case "UTF-16BE", "UTF-16LE":
		return 2
	case "UTF-32BE", "UTF-32LE":
		return 4
	}
	return 1
}

// detectBOM inspects the first bytes for a byte order mark, longest first.
// Returns the implied encoding name and the length of the mark.
func detectBOM(b []byte) (string, int) {
	switch {
	case len(b) >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
		return "UTF-32BE", 4
	case len(b) >= 4 && b[0] == 0xFF && b[1] == 0xFE && b[2] == 0x00 && b[3] == 0x00:
		return "UTF-32LE", 4
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return "UTF-8", 3
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return "UTF-16BE", 2
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return "UTF-16LE", 2
	}
	return "", 0
}

// decodeSniff makes the sniff window searchable as text. For UTF-16/32 input
// the window is decoded with the BOM-implied encoding first; otherwise the
// declaration, if any, is plain ASCII already.
func decodeSniff(b []byte, detected string) string {
	if enc := utfEncoding(detected); enc != nil {
		// A truncated trailing code unit decodes to a replacement rune, which
		// cannot appear inside a declaration and is harmless to the scan.
		if s, err := enc.NewDecoder().Bytes(b); err == nil {
			return string(s)
		}
	}
	return string(b)
}

// scanDeclaration extracts the encoding name from a leading <?xml ... ?>
// declaration. The declaration must be anchored at the very start of the
// window: stray bytes before "<?xml" are a fatal error. Returns "" when there
// is no declaration or it names no encoding.
func scanDeclaration(window string) (string, error) {
	i := strings.Index(window, "<?xml")
	if i < 0 {
		return "", nil
	}
	if i > 0 {
		return "", &EncodingError{Err: ErrInvalidDeclaration}
	}
	end := strings.Index(window, "?>")
	if end < 0 {
		return "", &EncodingError{Err: ErrInvalidDeclaration}
	}
	decl := window[len("<?xml"):end]

	k := strings.Index(decl, "encoding")
	if k < 0 {
		return "", nil
	}
	rest := strings.TrimLeft(decl[k+len("encoding"):], " \t\r\n")
	if len(rest) == 0 || rest[0] != '=' {
		return "", nil
	}
	rest = strings.TrimLeft(rest[1:], " \t\r\n")
	if len(rest) == 0 {
		return "", &EncodingError{Err: ErrInvalidDeclaration}
	}
	if q := rest[0]; q == '\'' || q == '"' {
		j := strings.IndexByte(rest[1:], q)
		if j < 0 {
			return "", &EncodingError{Err: ErrInvalidDeclaration}
		}
		return rest[1 : 1+j], nil
	}
	// Unquoted value: read to the next whitespace or the end of the declaration.
	j := strings.IndexAny(rest, " \t\r\n")
	if j < 0 {
		j = len(rest)
	}
	return rest[:j], nil
}

// utfEncoding returns the x/text encoding for the UTF-16/32 family names
// handled natively, or nil for anything else.
func utfEncoding(name string) encoding.Encoding {
	switch strings.ToLower(name) {
	case "utf-16", "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-32", "utf-32be":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case "utf-32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	}
	return nil
}

// decode converts b (with any byte order mark already stripped) to UTF-8 text
// using the named encoding. Unknown names fail with ErrUnsupportedEncoding.
func decode(b []byte, name string) (string, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return string(b), nil
	}
	enc := utfEncoding(name)
	if enc == nil {
		var err error
		enc, err = ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			return "", &EncodingError{Err: ErrUnsupportedEncoding, Declared: name}
		}
	}
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &EncodingError{Err: ErrUnsupportedEncoding, Declared: name}
	}
	return string(s), nil
}
