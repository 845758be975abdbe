package parser

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection and conversion to UTF-8.
// This ensures that HTML content from any encoding (ISO-8859-1, Windows-1252, UTF-8, etc.)
// is properly converted to UTF-8 before parsing with goquery.
//
// The charset is detected from:
// 1. HTML <meta charset="..."> or <meta http-equiv="Content-Type"> tags
// 2. Byte order marks (BOM)
// 3. Heuristic detection if none of the above are present
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	return charset.NewReader(body, "")
}

// DecodeSubtitleText converts raw subtitle bytes to a UTF-8 string.
//
// A byte order mark (UTF-8 or UTF-16) always wins and is stripped. Without
// one, valid UTF-8 is kept as is and anything else goes through the same
// detection the HTML reader uses, which in practice means Windows-1252 for
// the legacy single-byte files most subtitle sites still serve.
func DecodeSubtitleText(content []byte) (string, error) {
	var fallback transform.Transformer = encoding.Nop.NewDecoder()
	if !utf8.Valid(content) {
		enc, _, _ := charset.DetermineEncoding(content, "text/plain")
		fallback = enc.NewDecoder()
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), content)
	if err != nil {
		return "", fmt.Errorf("failed to decode subtitle text: %w", err)
	}
	return string(out), nil
}
