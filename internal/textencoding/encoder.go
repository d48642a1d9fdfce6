/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"bytes"
	"strings"
)

// CharCode is a character code used in the specific encoding.
type CharCode uint16

// GlyphName is a name of a glyph.
type GlyphName string

// notdef is the name of the empty glyph. Differences entries naming it clear
// the code they apply to.
const notdef = ".notdef"

// TextEncoder defines the common methods that a text encoder implementation
// must have in pixelpdf.
type TextEncoder interface {
	// String returns a string that describes the TextEncoder instance.
	String() string

	// Encode returns the PDF representation of a string `str`.
	Encode(str string) []byte

	// Decode converts PDF encoded string to a Go unicode string.
	Decode(raw []byte) string

	// RuneToCharcode returns the PDF character code corresponding to rune `r`.
	// The bool return flag is true if there was a match, and false otherwise.
	RuneToCharcode(r rune) (CharCode, bool)

	// CharcodeToRune returns the rune corresponding to character code `code`.
	// The bool return flag is true if there was a match, and false otherwise.
	CharcodeToRune(code CharCode) (rune, bool)
}

// SimpleEncoder represents a 1 byte encoding.
type SimpleEncoder interface {
	TextEncoder

	// BaseName returns the name of the base encoding.
	BaseName() string

	// Charcodes returns a sorted slice of all character codes in the encoding.
	Charcodes() []CharCode

	// CharcodeToGlyph returns the glyph name assigned to character code
	// `code`, if any.
	CharcodeToGlyph(code CharCode) (GlyphName, bool)
}

// encodeString8bit converts a Go unicode string `raw` to a PDF encoded
// string using the encoder `enc` with one byte per character code.
func encodeString8bit(enc TextEncoder, raw string) []byte {
	var encoded bytes.Buffer
	for _, r := range raw {
		code, ok := enc.RuneToCharcode(r)
		if !ok || code > 0xff {
			continue
		}
		encoded.WriteByte(byte(code))
	}
	return encoded.Bytes()
}

// decodeString8bit converts a PDF encoded string `raw` to a Go unicode
// string using the encoder `enc` with one byte per character code.
func decodeString8bit(enc TextEncoder, raw []byte) string {
	var runes strings.Builder
	for _, b := range raw {
		r, ok := enc.CharcodeToRune(CharCode(b))
		if !ok {
			r = MissingCodeRune
		}
		runes.WriteRune(r)
	}
	return runes.String()
}
