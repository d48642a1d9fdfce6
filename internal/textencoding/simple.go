/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"fmt"
	"sort"

	"github.com/pixelpdf/pixelpdf/common"
)

// simpleEncodings maps base encoding names to constructors.
var simpleEncodings = make(map[string]func() SimpleEncoder)

// RegisterSimpleEncoding registers a SimpleEncoder constructor by PDF
// encoding name.
func RegisterSimpleEncoding(name string, fnc func() SimpleEncoder) {
	if _, ok := simpleEncodings[name]; ok {
		panic("already registered")
	}
	simpleEncodings[name] = fnc
}

func init() {
	RegisterSimpleEncoding("StandardEncoding", func() SimpleEncoder {
		return newNamedSimpleEncoder("StandardEncoding", standardEncodingNames)
	})
	RegisterSimpleEncoding("MacExpertEncoding", func() SimpleEncoder {
		return newNamedSimpleEncoder("MacExpertEncoding", macExpertEncodingNames)
	})
	RegisterSimpleEncoding("SymbolEncoding", func() SimpleEncoder {
		return newNamedSimpleEncoder("SymbolEncoding", symbolEncodingNames)
	})
	RegisterSimpleEncoding("ZapfDingbatsEncoding", func() SimpleEncoder {
		return newNamedSimpleEncoder("ZapfDingbatsEncoding", zapfDingbatsEncodingNames)
	})
}

// NewSimpleTextEncoder returns a SimpleEncoder based on the predefined
// encoding `baseName` and difference map `differences`.
func NewSimpleTextEncoder(baseName string, differences map[CharCode]GlyphName) (SimpleEncoder, error) {
	fnc, ok := simpleEncodings[baseName]
	if !ok {
		common.Log.Debug("ERROR: NewSimpleTextEncoder. Unknown encoding %q", baseName)
		return nil, fmt.Errorf("unsupported font encoding: %q", baseName)
	}
	enc := fnc()
	if len(differences) != 0 {
		enc = ApplyDifferences(enc, differences)
	}
	return enc, nil
}

// NewCustomSimpleTextEncoder returns a SimpleEncoder based on a map of glyph
// names per character code, e.g. as extracted from an embedded Type1 font
// program's /Encoding array.
func NewCustomSimpleTextEncoder(encoding, differences map[CharCode]GlyphName) (SimpleEncoder, error) {
	if len(encoding) == 0 {
		return nil, fmt.Errorf("empty custom encoding")
	}
	glyphs := make(map[byte]GlyphName, len(encoding))
	for code, glyph := range encoding {
		if code > 0xff || glyph == notdef {
			continue
		}
		glyphs[byte(code)] = glyph
	}
	enc := newNamedSimpleEncoder("custom", glyphs)
	if len(differences) != 0 {
		return ApplyDifferences(enc, differences), nil
	}
	return enc, nil
}

// NewStandardTextEncoder returns a SimpleEncoder that implements
// StandardEncoding.
func NewStandardTextEncoder() SimpleEncoder {
	enc, _ := NewSimpleTextEncoder("StandardEncoding", nil)
	return enc
}

// newNamedSimpleEncoder builds a simpleEncoding from a code to glyph name
// table, resolving glyph names through the glyph list.
func newNamedSimpleEncoder(baseName string, glyphs map[byte]GlyphName) SimpleEncoder {
	enc := &simpleEncoding{
		baseName: baseName,
		decode:   make(map[byte]rune, len(glyphs)),
		encode:   make(map[rune]byte, len(glyphs)),
		glyphs:   make(map[byte]GlyphName, len(glyphs)),
	}
	for code, glyph := range glyphs {
		enc.glyphs[code] = glyph
		r, ok := GlyphToRune(glyph)
		if !ok {
			common.Log.Debug("ERROR: unknown glyph %q in %s", glyph, baseName)
			continue
		}
		enc.decode[code] = r
		if _, taken := enc.encode[r]; !taken {
			enc.encode[r] = code
		}
	}
	return enc
}

// simpleEncoding represents a 1 byte encoding.
type simpleEncoding struct {
	baseName string
	// one byte encoding: CharCode <-> byte
	decode map[byte]rune
	encode map[rune]byte
	// glyph names per code, used to address glyphs by name in embedded
	// font programs.
	glyphs map[byte]GlyphName
}

// String returns a description of `enc`.
func (enc *simpleEncoding) String() string {
	return "simpleEncoding(" + enc.baseName + ")"
}

// BaseName returns the name of the base encoding.
func (enc *simpleEncoding) BaseName() string {
	return enc.baseName
}

// Encode returns the PDF representation of `str`.
func (enc *simpleEncoding) Encode(str string) []byte {
	return encodeString8bit(enc, str)
}

// Decode converts a PDF encoded string to a Go unicode string.
func (enc *simpleEncoding) Decode(raw []byte) string {
	return decodeString8bit(enc, raw)
}

// Charcodes returns a sorted slice of all character codes in the encoding.
func (enc *simpleEncoding) Charcodes() []CharCode {
	codes := make([]CharCode, 0, len(enc.decode))
	for b := range enc.decode {
		codes = append(codes, CharCode(b))
	}
	sort.Slice(codes, func(i, j int) bool {
		return codes[i] < codes[j]
	})
	return codes
}

// RuneToCharcode returns the PDF character code corresponding to rune `r`.
func (enc *simpleEncoding) RuneToCharcode(r rune) (CharCode, bool) {
	b, ok := enc.encode[r]
	return CharCode(b), ok
}

// CharcodeToRune returns the rune corresponding to character code `code`.
func (enc *simpleEncoding) CharcodeToRune(code CharCode) (rune, bool) {
	if code > 0xff {
		return MissingCodeRune, false
	}
	r, ok := enc.decode[byte(code)]
	return r, ok
}

// StandardEncodingGlyphNames returns the code to glyph name table of Adobe
// StandardEncoding.
func StandardEncodingGlyphNames() map[byte]GlyphName {
	return standardEncodingNames
}

// MacExpertEncodingGlyphNames returns the code to glyph name table of
// MacExpertEncoding.
func MacExpertEncodingGlyphNames() map[byte]GlyphName {
	return macExpertEncodingNames
}

// CharcodeToGlyph returns the glyph name assigned to character code `code`.
func (enc *simpleEncoding) CharcodeToGlyph(code CharCode) (GlyphName, bool) {
	if code > 0xff {
		return "", false
	}
	if enc.glyphs != nil {
		if glyph, ok := enc.glyphs[byte(code)]; ok {
			return glyph, true
		}
	}
	// Charmap based encodings carry runes only; derive the name.
	if r, ok := enc.decode[byte(code)]; ok {
		return RuneToGlyph(r)
	}
	return "", false
}
