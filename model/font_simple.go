/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"errors"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
	"github.com/pixelpdf/pixelpdf/internal/cmap"
	"github.com/pixelpdf/pixelpdf/internal/textencoding"
)

// pdfFontSimple implements pdfFont
var _ pdfFont = (*pdfFontSimple)(nil)

// pdfFontSimple describes a simple font: single-byte character codes
// indexing a table of at most 256 glyphs through the font's encoding.
//
// 9.6 Simple Fonts (page 254)
type pdfFontSimple struct {
	fontCommon

	firstChar int
	lastChar  int

	// widths are the user-space advances per code in [firstChar,
	// lastChar], already scaled by 0.001.
	widths []float64

	// missingWidth is the user-space fallback advance from the
	// descriptor.
	missingWidth float64

	// encoder resolves codes to glyph names and runes.
	encoder textencoding.SimpleEncoder

	// program is the loaded embedded or substituted font program.
	program *fontProgram
}

// baseFields returns the fields of `font` that are common to all PDF
// fonts.
func (font *pdfFontSimple) baseFields() *fontCommon {
	return &font.fontCommon
}

func (font *pdfFontSimple) getFontDescriptor() *PdfFontDescriptor {
	return font.fontDescriptor
}

// newSimpleFontFromPdfObject loads a simple font from the font dictionary
// `d`.
func newSimpleFontFromPdfObject(d *core.PdfObjectDictionary, base *fontCommon) (*pdfFontSimple, error) {
	font := &pdfFontSimple{fontCommon: *base}

	if first, ok := core.GetIntVal(d.Get("FirstChar")); ok {
		font.firstChar = first
	}
	if last, ok := core.GetIntVal(d.Get("LastChar")); ok {
		font.lastChar = last
	}
	if font.fontDescriptor != nil {
		font.missingWidth = font.fontDescriptor.MissingWidth * 0.001
	}

	if arr, ok := core.GetArray(d.Get("Widths")); ok {
		widths, err := arr.ToFloat64Array()
		if err != nil {
			common.Log.Debug("ERROR: Bad Widths array. font=%s", base)
			return nil, core.ErrTypeError
		}
		if len(widths) != font.lastChar-font.firstChar+1 {
			common.Log.Debug("ERROR: Unexpected Widths length %d != %d",
				len(widths), font.lastChar-font.firstChar+1)
		}
		font.widths = make([]float64, len(widths))
		for i, w := range widths {
			font.widths[i] = w * 0.001
		}
	}

	font.loadProgram()
	if err := font.resolveEncoding(d); err != nil {
		return nil, err
	}
	return font, nil
}

// loadProgram loads the embedded font program, falling back to family
// name substitution when it cannot be parsed.
func (font *pdfFontSimple) loadProgram() {
	program, err := loadFontProgram(font.fontDescriptor)
	if err != nil {
		if errors.Is(err, ErrFontSubstitution) {
			common.Log.Warning("embedded font %q unusable, substituting", font.basefont)
			program = loadSubstituteProgram(font.basefont, font.fontDescriptor)
		} else {
			common.Log.Debug("ERROR: loading font program: %v", err)
		}
	}
	if program == nil && font.fontDescriptor == nil {
		// Standard 14 and other non-embedded fonts render through a
		// substitute face.
		program = loadSubstituteProgram(font.basefont, nil)
	}
	font.program = program
}

// resolveEncoding determines the font's encoding following 9.6.6:
// an explicit /Encoding entry wins, then the embedded font program's
// built-in encoding, and otherwise StandardEncoding (Type1) or
// WinAnsiEncoding (TrueType) applies, also for symbolic fonts without a
// built-in encoding. A Differences array overlays the result.
func (font *pdfFontSimple) resolveEncoding(d *core.PdfObjectDictionary) error {
	var (
		baseName    string
		differences map[textencoding.CharCode]textencoding.GlyphName
	)

	switch encObj := core.TraceToDirectObject(d.Get("Encoding")).(type) {
	case *core.PdfObjectName:
		baseName = encObj.String()
	case *core.PdfObjectDictionary:
		if name, ok := core.GetNameVal(encObj.Get("BaseEncoding")); ok {
			baseName = name
		}
		if diffArr, ok := core.GetArray(encObj.Get("Differences")); ok {
			var err error
			differences, err = textencoding.FromFontDifferences(diffArr)
			if err != nil {
				common.Log.Debug("ERROR: Bad Differences. font=%s err=%v", font, err)
				return err
			}
		}
	}

	var base textencoding.SimpleEncoder
	if baseName != "" {
		enc, err := textencoding.NewSimpleTextEncoder(baseName, nil)
		if err == nil {
			base = enc
		}
	}
	if base == nil {
		base = font.builtinEncoder()
	}
	if base == nil {
		if font.fontDescriptor != nil && font.fontDescriptor.IsSymbolic() {
			// Symbolic fonts address glyphs through their built-in
			// encoding only; with none recoverable, fall through to the
			// default so text keeps flowing.
			common.Log.Debug("symbolic font %q without built-in encoding", font.basefont)
		}
		switch font.subtype {
		case "TrueType":
			base = textencoding.NewWinAnsiEncoder()
		default:
			base = textencoding.NewStandardTextEncoder()
		}
	}

	if len(differences) > 0 {
		base = textencoding.ApplyDifferences(base, differences)
	}
	font.encoder = base
	return nil
}

// builtinEncoder returns the encoder derived from the embedded font
// program's own encoding, if one exists.
func (font *pdfFontSimple) builtinEncoder() textencoding.SimpleEncoder {
	if font.program == nil {
		return nil
	}
	return font.program.builtinEncoder()
}

// charcodeGID resolves a code through the encoding to a glyph of the font
// program.
func (font *pdfFontSimple) charcodeGID(code cmap.CharacterCode) uint16 {
	if font.program == nil {
		return 0
	}
	charcode := textencoding.CharCode(code.Val)

	if font.encoder != nil {
		if name, ok := font.encoder.CharcodeToGlyph(charcode); ok {
			if gid, ok := font.program.GIDForName(name); ok {
				return gid
			}
		}
		if r, ok := font.encoder.CharcodeToRune(charcode); ok {
			if gid, ok := font.program.GIDForRune(r); ok {
				return gid
			}
		}
	}

	// Symbolic TrueType fonts map raw codes through the (3,0) subtable.
	if font.program.ttf != nil {
		if gid, ok := font.program.GIDForRune(rune(code.Val)); ok {
			return gid
		}
	}
	if font.program.cffFont != nil {
		if gid, ok := font.program.cffFont.GIDForCode(byte(code.Val)); ok {
			return gid
		}
	}
	return 0
}

// charcodeAdvance returns the advance for the code: the Widths entry when
// the code is in range, the MissingWidth fallback, then the embedded
// program's own metrics.
func (font *pdfFontSimple) charcodeAdvance(code cmap.CharacterCode) float64 {
	c := int(code.Val)
	if c >= font.firstChar && c-font.firstChar < len(font.widths) {
		return font.widths[c-font.firstChar]
	}
	if font.missingWidth > 0 {
		return font.missingWidth
	}
	if font.program != nil {
		if gid := font.charcodeGID(code); gid != 0 {
			if w, ok := font.program.GlyphAdvance(gid); ok {
				return w * 0.001
			}
		}
	}
	return 0
}

// charcodeUnicode maps the code through the encoding; glyph names resolve
// through the Adobe glyph list.
func (font *pdfFontSimple) charcodeUnicode(code cmap.CharacterCode) (string, bool) {
	if font.encoder == nil {
		return "", false
	}
	if r, ok := font.encoder.CharcodeToRune(textencoding.CharCode(code.Val)); ok {
		return string(r), true
	}
	return "", false
}

// pdfFontType3 is a Type3 font. Its glyphs are content stream procedures
// rendered by the canvas; the core contributes only code extraction,
// widths and text content.
type pdfFontType3 struct {
	fontCommon

	firstChar int
	lastChar  int
	widths    []float64

	// fontMatrix maps glyph space to text space; Type3 widths are in
	// glyph space.
	fontMatrix []float64

	// CharProcs holds the glyph drawing procedures, consumed by the
	// content stream engine.
	CharProcs *core.PdfObjectDictionary

	encoder textencoding.SimpleEncoder
}

var _ pdfFont = (*pdfFontType3)(nil)

func (font *pdfFontType3) baseFields() *fontCommon {
	return &font.fontCommon
}

func (font *pdfFontType3) getFontDescriptor() *PdfFontDescriptor {
	return font.fontDescriptor
}

func (font *pdfFontType3) charcodeGID(code cmap.CharacterCode) uint16 {
	// Type3 glyphs have no glyph ids; drawing goes through CharProcs.
	return 0
}

func (font *pdfFontType3) charcodeAdvance(code cmap.CharacterCode) float64 {
	c := int(code.Val)
	if c < font.firstChar || c-font.firstChar >= len(font.widths) {
		return 0
	}
	w := font.widths[c-font.firstChar]
	if len(font.fontMatrix) == 6 {
		return w * font.fontMatrix[0]
	}
	return w * 0.001
}

func (font *pdfFontType3) charcodeUnicode(code cmap.CharacterCode) (string, bool) {
	if font.encoder == nil {
		return "", false
	}
	if r, ok := font.encoder.CharcodeToRune(textencoding.CharCode(code.Val)); ok {
		return string(r), true
	}
	return "", false
}

// newPdfFontType3FromPdfObject loads a Type3 font from the font
// dictionary.
func newPdfFontType3FromPdfObject(d *core.PdfObjectDictionary, base *fontCommon) (*pdfFontType3, error) {
	font := &pdfFontType3{fontCommon: *base}

	if first, ok := core.GetIntVal(d.Get("FirstChar")); ok {
		font.firstChar = first
	}
	if last, ok := core.GetIntVal(d.Get("LastChar")); ok {
		font.lastChar = last
	}
	if arr, ok := core.GetArray(d.Get("Widths")); ok {
		widths, err := arr.ToFloat64Array()
		if err != nil {
			return nil, core.ErrTypeError
		}
		font.widths = widths
	}
	if arr, ok := core.GetArray(d.Get("FontMatrix")); ok {
		matrix, err := arr.ToFloat64Array()
		if err == nil && len(matrix) == 6 {
			font.fontMatrix = matrix
		}
	}
	font.CharProcs, _ = core.GetDict(d.Get("CharProcs"))

	if encDict, ok := core.GetDict(d.Get("Encoding")); ok {
		if diffArr, ok := core.GetArray(encDict.Get("Differences")); ok {
			differences, err := textencoding.FromFontDifferences(diffArr)
			if err == nil {
				enc, err := textencoding.NewCustomSimpleTextEncoder(differences, nil)
				if err == nil {
					font.encoder = enc
				}
			}
		}
	}
	return font, nil
}
