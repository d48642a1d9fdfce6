/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"bytes"
	"strings"
)

// IdentityEncoder represents an 2-byte identity encoding, used by the
// Identity-H and Identity-V predefined CMaps.
type IdentityEncoder struct {
	baseName string
}

// NewIdentityTextEncoder returns a new IdentityEncoder based on
// predefined encoding `baseName`.
func NewIdentityTextEncoder(baseName string) IdentityEncoder {
	return IdentityEncoder{baseName: baseName}
}

// String returns a description of the encoding.
func (enc IdentityEncoder) String() string {
	return enc.baseName
}

// Encode returns the PDF representation of `str`, two bytes per rune.
func (enc IdentityEncoder) Encode(str string) []byte {
	var buf bytes.Buffer
	for _, r := range str {
		code, _ := enc.RuneToCharcode(r)
		buf.WriteByte(byte(code >> 8))
		buf.WriteByte(byte(code))
	}
	return buf.Bytes()
}

// Decode converts a PDF encoded string to a Go unicode string.
func (enc IdentityEncoder) Decode(raw []byte) string {
	var out strings.Builder
	for i := 0; i+1 < len(raw); i += 2 {
		code := CharCode(raw[i])<<8 | CharCode(raw[i+1])
		r, _ := enc.CharcodeToRune(code)
		out.WriteRune(r)
	}
	return out.String()
}

// RuneToCharcode converts the rune `r` to a character code.
func (enc IdentityEncoder) RuneToCharcode(r rune) (CharCode, bool) {
	return CharCode(r), true
}

// CharcodeToRune converts the character code `code` to a rune.
func (enc IdentityEncoder) CharcodeToRune(code CharCode) (rune, bool) {
	return rune(code), true
}
