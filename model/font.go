/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"fmt"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
	"github.com/pixelpdf/pixelpdf/internal/cmap"
)

// pdfFont is the interface of the concrete font kinds held by PdfFont.
type pdfFont interface {
	// baseFields returns fields that are common for PDF fonts.
	baseFields() *fontCommon

	// getFontDescriptor returns the font descriptor of the font.
	getFontDescriptor() *PdfFontDescriptor

	// charcodeGID resolves an extracted character code to a glyph id;
	// 0 addresses .notdef.
	charcodeGID(code cmap.CharacterCode) uint16

	// charcodeAdvance returns the horizontal advance of the code in
	// user-space units.
	charcodeAdvance(code cmap.CharacterCode) float64

	// charcodeUnicode returns the text content of the code below the
	// ToUnicode layer handled by PdfFont.
	charcodeUnicode(code cmap.CharacterCode) (string, bool)
}

// PdfFont represents an underlying font structure which can be of type:
// - Type0
// - Type1
// - TrueType
// etc.
type PdfFont struct {
	context pdfFont
}

// NewPdfFontFromPdfObject loads a PdfFont from the dictionary `fontObj`.
// If there is a problem an error is returned.
func NewPdfFontFromPdfObject(fontObj core.PdfObject) (*PdfFont, error) {
	return newPdfFontFromPdfObject(fontObj, true)
}

// newPdfFontFromPdfObject loads a PdfFont from the dictionary `fontObj`.
// The allowType0 flag indicates whether loading Type0 fonts is allowed,
// to avoid cyclical loading.
func newPdfFontFromPdfObject(fontObj core.PdfObject, allowType0 bool) (*PdfFont, error) {
	d, base, err := newFontBaseFieldsFromPdfObject(fontObj)
	if err != nil {
		return nil, err
	}

	font := &PdfFont{}
	switch base.subtype {
	case "Type0":
		if !allowType0 {
			common.Log.Debug("ERROR: Loading type0 not allowed. font=%s", base)
			return nil, fmt.Errorf("cyclical type0 loading")
		}
		type0font, err := newPdfFontType0FromPdfObject(d, base)
		if err != nil {
			common.Log.Debug("ERROR: While loading Type0 font. font=%s err=%v", base, err)
			return nil, err
		}
		font.context = type0font
	case "Type1", "MMType1", "TrueType":
		simplefont, err := newSimpleFontFromPdfObject(d, base)
		if err != nil {
			common.Log.Debug("ERROR: While loading simple font: font=%s err=%v", base, err)
			return nil, err
		}
		font.context = simplefont
	case "Type3":
		type3font, err := newPdfFontType3FromPdfObject(d, base)
		if err != nil {
			common.Log.Debug("ERROR: While loading Type3 font: font=%s err=%v", base, err)
			return nil, err
		}
		font.context = type3font
	case "CIDFontType0", "CIDFontType2":
		cidfont, err := newPdfCIDFontFromPdfObject(d, base)
		if err != nil {
			common.Log.Debug("ERROR: While loading cid font: font=%s err=%v", base, err)
			return nil, err
		}
		font.context = cidfont
	default:
		common.Log.Debug("ERROR: Unsupported font type: font=%s", base)
		return nil, ErrFontNotSupported
	}

	return font, nil
}

// String returns a string that describes `font`.
func (font *PdfFont) String() string {
	return fmt.Sprintf("FONT{%T %s}", font.context, font.baseFields().coreString())
}

// BaseFont returns the font's "BaseFont" field.
func (font *PdfFont) BaseFont() string {
	return font.baseFields().basefont
}

// Subtype returns the font's "Subtype" field.
func (font *PdfFont) Subtype() string {
	subtype := font.baseFields().subtype
	if t, ok := font.context.(*pdfFontType0); ok && t.descendant != nil {
		subtype = subtype + ":" + t.descendant.subtype
	}
	return subtype
}

// IsCID returns true if the underlying font is CID.
func (font *PdfFont) IsCID() bool {
	return font.baseFields().isCIDFont()
}

// FontDescriptor returns the font's descriptor, possibly inherited from
// the descendant font of a composite font.
func (font *PdfFont) FontDescriptor() *PdfFontDescriptor {
	if font.baseFields().fontDescriptor != nil {
		return font.baseFields().fontDescriptor
	}
	return font.context.getFontDescriptor()
}

// WritingMode returns 0 for horizontal writing and 1 for vertical writing
// fonts.
func (font *PdfFont) WritingMode() int {
	if t, ok := font.context.(*pdfFontType0); ok {
		return t.writingMode()
	}
	return 0
}

// Typeface returns the embedded (or substituted) font program bytes in a
// form loadable by the canvas typeface loader, or nil.
func (font *PdfFont) Typeface() []byte {
	program := font.program()
	if program == nil {
		return nil
	}
	return program.Typeface
}

// program returns the loaded font program of the concrete font, if any.
func (font *PdfFont) program() *fontProgram {
	switch t := font.context.(type) {
	case *pdfFontSimple:
		return t.program
	case *pdfFontType0:
		if t.descendant != nil {
			return t.descendant.program
		}
	case *pdfCIDFont:
		return t.program
	}
	return nil
}

// ExtractCodes splits the bytes of a content stream text string into
// character codes.
//
// Simple fonts consume one byte per code. Composite fonts with a parsed
// code to CID CMap use its codespace ranges with greedy longest matching;
// composite fonts without codespace ranges consume fixed 2-byte codes.
func (font *PdfFont) ExtractCodes(data []byte) []cmap.CharacterCode {
	if t, ok := font.context.(*pdfFontType0); ok {
		return t.extractCodes(data)
	}
	codes := make([]cmap.CharacterCode, len(data))
	for i, b := range data {
		codes[i] = cmap.CharacterCode{Val: cmap.CharCode(b), NumBytes: 1}
	}
	return codes
}

// GIDForCode resolves a character code to a glyph id in the font program.
// Gid 0 is .notdef.
func (font *PdfFont) GIDForCode(code cmap.CharacterCode) uint16 {
	return font.context.charcodeGID(code)
}

// WidthForCode returns the horizontal advance of the code in user-space
// units (glyph space values multiplied by 0.001).
func (font *PdfFont) WidthForCode(code cmap.CharacterCode) float64 {
	return font.context.charcodeAdvance(code)
}

// UnicodeForCode returns the text content of a character code.
//
// The lookup order is: the font's ToUnicode CMap, the concrete font's own
// mapping (CID collection table or encoding), none.
func (font *PdfFont) UnicodeForCode(code cmap.CharacterCode) (string, bool) {
	if toUnicode := font.baseFields().toUnicodeCmap; toUnicode != nil {
		if s, ok := toUnicode.UnicodeForCode(code.Val); ok {
			return s, true
		}
	}
	return font.context.charcodeUnicode(code)
}

// CharcodesToUnicode converts extracted character codes to a string,
// substituting U+FFFD for unmapped codes. The int return is the miss
// count.
func (font *PdfFont) CharcodesToUnicode(codes []cmap.CharacterCode) (string, int) {
	var out string
	misses := 0
	for _, code := range codes {
		s, ok := font.UnicodeForCode(code)
		if !ok {
			s = cmap.MissingCodeString
			misses++
		}
		out += s
	}
	if misses != 0 {
		common.Log.Debug("ERROR: could not convert all codes. misses=%d font=%s", misses, font)
	}
	return out, misses
}

// baseFields returns the fields of `font`.context that are common to all
// PDF fonts.
func (font *PdfFont) baseFields() *fontCommon {
	if font.context == nil {
		common.Log.Debug("ERROR: baseFields. context is nil.")
		return &fontCommon{}
	}
	return font.context.baseFields()
}

// fontCommon represents the fields that are common to all PDF fonts.
type fontCommon struct {
	// All fonts have these fields.
	basefont string // The font's "BaseFont" field.
	subtype  string // The font's "Subtype" field.
	name     string

	// These objects are computed from optional fields in the PDF font.
	toUnicodeCmap  *cmap.CMap         // Computed from "ToUnicode".
	fontDescriptor *PdfFontDescriptor // Computed from "FontDescriptor".

	// objectNumber helps us find the font in the PDF being processed.
	objectNumber int64
}

// coreString returns the contents of fontCommon.String() without the
// FONT{} wrapper.
func (base fontCommon) coreString() string {
	descriptor := ""
	if base.fontDescriptor != nil {
		descriptor = base.fontDescriptor.String()
	}
	return fmt.Sprintf("%#q %#q %q obj=%d ToUnicode=%t %s",
		base.subtype, base.basefont, base.name, base.objectNumber,
		base.toUnicodeCmap != nil, descriptor)
}

// String returns a string that describes `base`.
func (base fontCommon) String() string {
	return fmt.Sprintf("FONT{%s}", base.coreString())
}

// isCIDFont returns true if `base` is a CID font.
func (base fontCommon) isCIDFont() bool {
	switch base.subtype {
	case "Type0", "CIDFontType0", "CIDFontType2":
		return true
	}
	return false
}

// newFontBaseFieldsFromPdfObject returns `fontObj` as a dictionary and the
// common fields of that dictionary in the fontCommon return. If there is
// a problem an error is returned.
func newFontBaseFieldsFromPdfObject(fontObj core.PdfObject) (*core.PdfObjectDictionary, *fontCommon, error) {
	font := &fontCommon{}

	if num, _, ok := core.GetObjectReference(fontObj); ok {
		font.objectNumber = num
	}

	d, ok := core.GetDict(fontObj)
	if !ok {
		common.Log.Debug("ERROR: Font not given by a dictionary (%T)", fontObj)
		return nil, nil, ErrFontNotSupported
	}

	if objtype, ok := core.GetNameVal(d.Get("Type")); !ok || objtype != "Font" {
		common.Log.Debug("ERROR: Font Incompatibility. Type=%q. Should be %q.", objtype, "Font")
		return nil, nil, ErrRequiredAttributeMissing
	}

	subtype, ok := core.GetNameVal(d.Get("Subtype"))
	if !ok {
		common.Log.Debug("ERROR: Font Incompatibility. Subtype (Required) missing")
		return nil, nil, ErrRequiredAttributeMissing
	}
	font.subtype = subtype

	if name, ok := core.GetNameVal(d.Get("Name")); ok {
		font.name = name
	}
	if basefont, ok := core.GetNameVal(d.Get("BaseFont")); ok {
		font.basefont = basefont
	}

	if descObj := d.Get("FontDescriptor"); descObj != nil {
		descriptor, err := newPdfFontDescriptorFromPdfObject(descObj)
		if err != nil {
			common.Log.Debug("ERROR: Bad font descriptor. font=%s err=%v", font, err)
		} else {
			font.fontDescriptor = descriptor
		}
	}

	if toUnicode := d.Get("ToUnicode"); toUnicode != nil {
		if stream, ok := core.GetStream(toUnicode); ok {
			data, err := core.DecodeStream(stream)
			if err == nil {
				cm, err := loadToUnicodeCMap(data)
				if err == nil {
					font.toUnicodeCmap = cm
				} else {
					common.Log.Debug("ERROR: Bad ToUnicode CMap. font=%s err=%v", font, err)
				}
			}
		}
	}

	return d, font, nil
}
