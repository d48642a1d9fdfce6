/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"fmt"
	"sort"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
)

// FromFontDifferences converts `diffList`, a /Differences array from an
// /Encoding object to a map representation.
func FromFontDifferences(diffList *core.PdfObjectArray) (map[CharCode]GlyphName, error) {
	differences := make(map[CharCode]GlyphName)
	var n CharCode
	for _, obj := range diffList.Elements() {
		switch v := core.TraceToDirectObject(obj).(type) {
		case *core.PdfObjectInteger:
			n = CharCode(*v)
		case *core.PdfObjectName:
			differences[n] = GlyphName(*v)
			n++
		default:
			common.Log.Debug("ERROR: Bad type. obj=%s", obj)
			return nil, core.ErrTypeError
		}
	}
	return differences, nil
}

// ApplyDifferences modifies or wraps the base encoding and overlays the
// differences over it. A difference naming the empty glyph clears the code.
func ApplyDifferences(base SimpleEncoder, differences map[CharCode]GlyphName) SimpleEncoder {
	if len(differences) == 0 {
		return base
	}
	d := &differencesEncoding{
		base:        base,
		differences: differences,
		decode:      make(map[byte]rune),
		encode:      make(map[rune]byte),
	}
	for code, glyph := range differences {
		if code > 0xff {
			common.Log.Debug("ERROR: Differences code out of range. code=%d glyph=%q", code, glyph)
			continue
		}
		b := byte(code)
		if glyph == notdef {
			continue
		}
		r, ok := GlyphToRune(glyph)
		if !ok {
			common.Log.Debug("ERROR: No rune for glyph %q in Differences", glyph)
			continue
		}
		d.decode[b] = r
		d.encode[r] = b
	}
	return d
}

// differencesEncoding remaps characters of a base encoding and act as a
// pass-through for other characters.
// Assumes that an underlying encoding is 8 bit.
type differencesEncoding struct {
	base SimpleEncoder

	// differences is the glyph name overlay, kept for glyph addressing.
	differences map[CharCode]GlyphName

	// the subset of mappings with a known rune
	decode map[byte]rune
	encode map[rune]byte
}

// BaseName returns the name of the base encoding.
func (enc *differencesEncoding) BaseName() string {
	return enc.base.BaseName()
}

// String returns a description of the encoding.
func (enc *differencesEncoding) String() string {
	return fmt.Sprintf("differences(%s, %d)", enc.base.String(), len(enc.differences))
}

// Charcodes returns a sorted slice of all charcodes in this encoding.
func (enc *differencesEncoding) Charcodes() []CharCode {
	seen := make(map[CharCode]struct{})
	codes := enc.base.Charcodes()
	for _, code := range codes {
		seen[code] = struct{}{}
	}
	for b := range enc.decode {
		code := CharCode(b)
		if _, ok := seen[code]; !ok {
			codes = append(codes, code)
			seen[code] = struct{}{}
		}
	}
	sort.Slice(codes, func(i, j int) bool {
		return codes[i] < codes[j]
	})
	return codes
}

// Encode returns the PDF representation of `str`.
func (enc *differencesEncoding) Encode(str string) []byte {
	return encodeString8bit(enc, str)
}

// Decode converts a PDF encoded string to a Go unicode string.
func (enc *differencesEncoding) Decode(raw []byte) string {
	return decodeString8bit(enc, raw)
}

// RuneToCharcode returns the PDF character code corresponding to rune `r`.
func (enc *differencesEncoding) RuneToCharcode(r rune) (CharCode, bool) {
	if b, ok := enc.encode[r]; ok {
		return CharCode(b), true
	}
	return enc.base.RuneToCharcode(r)
}

// CharcodeToRune returns the rune corresponding to character code `code`.
func (enc *differencesEncoding) CharcodeToRune(code CharCode) (rune, bool) {
	if code <= 0xff {
		if r, ok := enc.decode[byte(code)]; ok {
			return r, true
		}
	}
	if glyph, ok := enc.differences[code]; ok && glyph == notdef {
		// The difference explicitly removes the glyph.
		return MissingCodeRune, false
	}
	return enc.base.CharcodeToRune(code)
}

// CharcodeToGlyph returns the glyph name assigned to character code `code`.
func (enc *differencesEncoding) CharcodeToGlyph(code CharCode) (GlyphName, bool) {
	if glyph, ok := enc.differences[code]; ok {
		if glyph == notdef {
			return "", false
		}
		return glyph, true
	}
	return enc.base.CharcodeToGlyph(code)
}
