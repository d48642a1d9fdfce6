/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"errors"
	"fmt"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
	"github.com/pixelpdf/pixelpdf/internal/cmap"
)

/*
   9.7.2 CID-Keyed Fonts Overview (page 267)

   A CMap (character map) file shall specify the correspondence between
   character codes and the CID numbers used to identify glyphs. Whereas a
   simple font allows a maximum of 256 glyphs to be encoded and accessible
   at one time, a CMap can describe a mapping from multiple-byte codes to
   thousands of glyphs in a large CID-keyed font.

   9.7.4 CIDFonts (page 269)

   There are two types of CIDFonts:
   - A Type 0 CIDFont contains glyph descriptions based on CFF
   - A Type 2 CIDFont contains glyph descriptions based on TrueType

   A CIDFont dictionary shall be used only as a descendant of a Type 0
   font. The CMap in the Type 0 font defines the encoding that maps
   character codes to CIDs in the CIDFont.
*/

// pdfFontType0 implements pdfFont
var _ pdfFont = (*pdfFontType0)(nil)

// pdfFontType0 represents a Type0 (composite) font with multi-byte
// character codes. The descendant CIDFont carries the glyphs; the first
// (and in PDF, only) descendant is primary.
type pdfFontType0 struct {
	fontCommon

	// codeToCID maps character codes to CIDs; nil only when loading the
	// Encoding failed entirely.
	codeToCID *cmap.CMap

	descendant *pdfCIDFont
}

// baseFields returns the fields of `font` that are common to all PDF
// fonts.
func (font *pdfFontType0) baseFields() *fontCommon {
	return &font.fontCommon
}

func (font *pdfFontType0) getFontDescriptor() *PdfFontDescriptor {
	if font.fontDescriptor == nil && font.descendant != nil {
		return font.descendant.fontDescriptor
	}
	return font.fontDescriptor
}

// writingMode returns the WMode of the code to CID CMap.
func (font *pdfFontType0) writingMode() int {
	if font.codeToCID == nil {
		return 0
	}
	return font.codeToCID.WMode()
}

// extractCodes splits content stream string bytes by the codespace ranges
// of the code to CID CMap, with fixed 2-byte codes when none exist.
func (font *pdfFontType0) extractCodes(data []byte) []cmap.CharacterCode {
	if font.codeToCID != nil {
		codes, _ := font.codeToCID.BytesToCharcodes(data)
		return codes
	}
	var codes []cmap.CharacterCode
	for i := 0; i < len(data); i += 2 {
		code := cmap.CharacterCode{NumBytes: 2}
		code.Val = cmap.CharCode(data[i]) << 8
		if i+1 < len(data) {
			code.Val |= cmap.CharCode(data[i+1])
		}
		codes = append(codes, code)
	}
	return codes
}

// cidForCode maps a character code to a CID. Missing mappings substitute
// CID 0.
func (font *pdfFontType0) cidForCode(code cmap.CharacterCode) cmap.CID {
	if font.codeToCID == nil {
		return cmap.CID(code.Val)
	}
	cid, ok := font.codeToCID.CIDForCode(code)
	if !ok {
		return 0
	}
	return cid
}

func (font *pdfFontType0) charcodeGID(code cmap.CharacterCode) uint16 {
	if font.descendant == nil {
		return 0
	}
	return font.descendant.gidForCID(font.cidForCode(code))
}

func (font *pdfFontType0) charcodeAdvance(code cmap.CharacterCode) float64 {
	if font.descendant == nil {
		return 0
	}
	return font.descendant.advanceForCID(font.cidForCode(code))
}

func (font *pdfFontType0) charcodeUnicode(code cmap.CharacterCode) (string, bool) {
	if font.descendant == nil {
		return "", false
	}
	return font.descendant.unicodeForCID(font.cidForCode(code))
}

// VerticalMetricsForCode returns the vertical displacement and position
// vector for a code of a vertical writing font.
func (font *PdfFont) VerticalMetricsForCode(code cmap.CharacterCode) (VerticalMetrics, bool) {
	t, ok := font.context.(*pdfFontType0)
	if !ok || t.descendant == nil {
		return VerticalMetrics{}, false
	}
	return t.descendant.verticalMetricsForCID(t.cidForCode(code)), true
}

// newPdfFontType0FromPdfObject loads a Type0 font from the font
// dictionary.
func newPdfFontType0FromPdfObject(d *core.PdfObjectDictionary, base *fontCommon) (*pdfFontType0, error) {
	arr, ok := core.GetArray(d.Get("DescendantFonts"))
	if !ok {
		common.Log.Debug("ERROR: Invalid DescendantFonts - not an array %s", base)
		return nil, core.ErrRangeError
	}
	if arr.Len() != 1 {
		common.Log.Debug("ERROR: DescendantFonts array length != 1 (%d)", arr.Len())
		return nil, core.ErrRangeError
	}
	df, err := newPdfFontFromPdfObject(arr.Get(0), false)
	if err != nil {
		common.Log.Debug("ERROR: Failed loading descendant font: err=%v %s", err, base)
		return nil, err
	}
	descendant, ok := df.context.(*pdfCIDFont)
	if !ok {
		common.Log.Debug("ERROR: Descendant not a CIDFont. font=%s", base)
		return nil, ErrFontNotSupported
	}

	font := &pdfFontType0{
		fontCommon: *base,
		descendant: descendant,
	}

	switch encObj := core.TraceToDirectObject(d.Get("Encoding")).(type) {
	case *core.PdfObjectName:
		name := encObj.String()
		if cmap.IsIdentityName(name) {
			font.codeToCID = cmap.NewIdentityCMap(name)
		} else {
			cm, err := loadPredefinedCMap(name)
			if err != nil {
				common.Log.Debug("ERROR: could not load predefined CMap %q: %v", name, err)
			} else {
				font.codeToCID = cm
			}
		}
	case *core.PdfObjectStream:
		data, err := core.DecodeStream(encObj)
		if err == nil {
			cm, err := cmap.LoadCmapFromData(data, loadParentCMap)
			if err == nil {
				font.codeToCID = cm
			} else {
				common.Log.Debug("ERROR: Bad embedded CMap. font=%s err=%v", base, err)
			}
		}
	default:
		common.Log.Debug("ERROR: Type0 font without usable Encoding (%T)", encObj)
	}

	return font, nil
}

// VerticalMetrics is the vertical displacement (w1y) and position vector
// (v1x, v1y) of a glyph in user-space units.
type VerticalMetrics struct {
	W1Y float64
	V1X float64
	V1Y float64
}

// pdfCIDFont represents a CIDFontType0 or CIDFontType2 descendant font
// dictionary.
type pdfCIDFont struct {
	fontCommon

	// CIDSystemInfo identifies the character collection.
	CIDSystemInfo cmap.CIDSystemInfo

	// widths maps CIDs to user-space advances from the W array;
	// defaultWidth is the DW fallback.
	widths       map[cmap.CID]float64
	defaultWidth float64

	// vertical maps CIDs to vertical metrics from the W2 array;
	// defaultVertical is the DW2 fallback.
	vertical        map[cmap.CID]VerticalMetrics
	defaultVertical VerticalMetrics

	// cidToGID is the CIDToGIDMap stream content of TrueType based CID
	// fonts, two bytes per CID; nil means identity or CFF charset driven.
	cidToGID []byte

	program *fontProgram
}

var _ pdfFont = (*pdfCIDFont)(nil)

func (font *pdfCIDFont) baseFields() *fontCommon {
	return &font.fontCommon
}

func (font *pdfCIDFont) getFontDescriptor() *PdfFontDescriptor {
	return font.fontDescriptor
}

// gidForCID resolves a CID to a glyph id: the CIDToGIDMap table for
// TrueType glyphs, the CFF charset for CFF glyphs, identity otherwise.
func (font *pdfCIDFont) gidForCID(cid cmap.CID) uint16 {
	if font.cidToGID != nil {
		idx := int(cid) * 2
		if idx+1 >= len(font.cidToGID) {
			return 0
		}
		return uint16(font.cidToGID[idx])<<8 | uint16(font.cidToGID[idx+1])
	}
	if font.program != nil && font.program.cffFont != nil {
		return font.program.GIDForCID(uint32(cid))
	}
	return uint16(cid)
}

// advanceForCID returns the horizontal advance of a CID in user-space
// units.
func (font *pdfCIDFont) advanceForCID(cid cmap.CID) float64 {
	if w, ok := font.widths[cid]; ok {
		return w
	}
	if font.defaultWidth != 0 {
		return font.defaultWidth
	}
	if font.program != nil {
		if w, ok := font.program.GlyphAdvance(font.gidForCID(cid)); ok {
			return w * 0.001
		}
	}
	return 0
}

// verticalMetricsForCID returns the vertical metrics of a CID, with the
// DW2 defaults for unlisted CIDs.
func (font *pdfCIDFont) verticalMetricsForCID(cid cmap.CID) VerticalMetrics {
	if m, ok := font.vertical[cid]; ok {
		return m
	}
	return font.defaultVertical
}

// unicodeForCID is consulted below the Type0 ToUnicode layer; CID keyed
// collections resolve through their registry ordering table when one is
// registered.
func (font *pdfCIDFont) unicodeForCID(cid cmap.CID) (string, bool) {
	if provider := cidToUnicodeProvider(); provider != nil {
		if s, ok := provider(font.CIDSystemInfo, cid); ok {
			return s, true
		}
	}
	return "", false
}

func (font *pdfCIDFont) charcodeGID(code cmap.CharacterCode) uint16 {
	return font.gidForCID(cmap.CID(code.Val))
}

func (font *pdfCIDFont) charcodeAdvance(code cmap.CharacterCode) float64 {
	return font.advanceForCID(cmap.CID(code.Val))
}

func (font *pdfCIDFont) charcodeUnicode(code cmap.CharacterCode) (string, bool) {
	return font.unicodeForCID(cmap.CID(code.Val))
}

// newPdfCIDFontFromPdfObject loads a CIDFontType0/CIDFontType2 descendant
// font from its dictionary.
func newPdfCIDFontFromPdfObject(d *core.PdfObjectDictionary, base *fontCommon) (*pdfCIDFont, error) {
	font := &pdfCIDFont{fontCommon: *base}

	if info, ok := core.GetDict(d.Get("CIDSystemInfo")); ok {
		if registry, ok := core.GetStringVal(info.Get("Registry")); ok {
			font.CIDSystemInfo.Registry = registry
		}
		if ordering, ok := core.GetStringVal(info.Get("Ordering")); ok {
			font.CIDSystemInfo.Ordering = ordering
		}
		if supplement, ok := core.GetIntVal(info.Get("Supplement")); ok {
			font.CIDSystemInfo.Supplement = supplement
		}
	} else {
		common.Log.Debug("ERROR: CIDSystemInfo (Required) missing. font=%s", base)
		return nil, ErrRequiredAttributeMissing
	}

	// Default width. DW defaults to 1000 glyph space units.
	font.defaultWidth = 1.0
	if dw, err := core.GetNumberAsFloat(d.Get("DW")); err == nil {
		font.defaultWidth = dw * 0.001
	}
	widths, err := parseCIDFontWidthsArray(d.Get("W"))
	if err != nil {
		return nil, err
	}
	font.widths = widths

	// Vertical metrics. DW2 defaults to [880 -1000].
	font.defaultVertical = VerticalMetrics{W1Y: -1.0, V1Y: 0.88}
	if arr, ok := core.GetArray(d.Get("DW2")); ok && arr.Len() == 2 {
		if vals, err := arr.ToFloat64Array(); err == nil {
			font.defaultVertical = VerticalMetrics{W1Y: vals[1] * 0.001, V1Y: vals[0] * 0.001}
		}
	}
	vertical, err := parseCIDFontVerticalArray(d.Get("W2"))
	if err != nil {
		return nil, err
	}
	font.vertical = vertical

	font.loadProgram(d)
	return font, nil
}

// loadProgram loads the embedded font program and the CIDToGIDMap.
func (font *pdfCIDFont) loadProgram(d *core.PdfObjectDictionary) {
	program, err := loadFontProgram(font.fontDescriptor)
	if err != nil {
		if errors.Is(err, ErrFontSubstitution) {
			common.Log.Warning("embedded CID font %q unusable, substituting", font.basefont)
			program = loadSubstituteProgram(font.basefont, font.fontDescriptor)
		}
	}
	font.program = program

	cidToGID := d.Get("CIDToGIDMap")
	if stream, ok := core.GetStream(cidToGID); ok {
		if font.subtype == "CIDFontType2" {
			data, err := core.DecodeStream(stream)
			if err != nil {
				common.Log.Debug("ERROR: Bad CIDToGIDMap stream: %v", err)
			} else {
				font.cidToGID = data
			}
		}
	}
	// A CIDToGIDMap name of /Identity (or none) leaves cidToGID nil.
}

// parseCIDFontWidthsArray parses the W array. Two forms are allowed:
//
//	c [w1 w2 ...]    individual widths starting at CID c
//	c_first c_last w one width for a CID range
//
// Widths are scaled to user-space units.
func parseCIDFontWidthsArray(w core.PdfObject) (map[cmap.CID]float64, error) {
	arr, ok := core.GetArray(w)
	if !ok {
		return map[cmap.CID]float64{}, nil
	}

	widths := map[cmap.CID]float64{}
	for i := 0; i < arr.Len(); {
		first, ok := core.GetIntVal(arr.Get(i))
		if !ok {
			return nil, fmt.Errorf("bad W entry at %d: %v", i, arr.Get(i))
		}
		i++
		if i >= arr.Len() {
			return nil, fmt.Errorf("truncated W array: %v", arr)
		}

		switch obj := core.TraceToDirectObject(arr.Get(i)).(type) {
		case *core.PdfObjectArray:
			vals, err := obj.ToFloat64Array()
			if err != nil {
				return nil, fmt.Errorf("bad W width list at %d", i)
			}
			for j, v := range vals {
				widths[cmap.CID(first+j)] = v * 0.001
			}
			i++
		default:
			last, ok := core.GetIntVal(arr.Get(i))
			if !ok {
				return nil, fmt.Errorf("bad W range end at %d: %v", i, arr.Get(i))
			}
			i++
			if i >= arr.Len() {
				return nil, fmt.Errorf("truncated W range: %v", arr)
			}
			v, err := core.GetNumberAsFloat(arr.Get(i))
			if err != nil {
				return nil, fmt.Errorf("bad W range width at %d", i)
			}
			for cid := first; cid <= last; cid++ {
				widths[cmap.CID(cid)] = v * 0.001
			}
			i++
		}
	}
	return widths, nil
}

// parseCIDFontVerticalArray parses the W2 array. Two forms are allowed:
//
//	c [w1y v1x v1y ...]        triplets starting at CID c
//	c_first c_last w1y v1x v1y one triplet for a CID range
func parseCIDFontVerticalArray(w2 core.PdfObject) (map[cmap.CID]VerticalMetrics, error) {
	arr, ok := core.GetArray(w2)
	if !ok {
		return map[cmap.CID]VerticalMetrics{}, nil
	}

	vertical := map[cmap.CID]VerticalMetrics{}
	for i := 0; i < arr.Len(); {
		first, ok := core.GetIntVal(arr.Get(i))
		if !ok {
			return nil, fmt.Errorf("bad W2 entry at %d: %v", i, arr.Get(i))
		}
		i++
		if i >= arr.Len() {
			return nil, fmt.Errorf("truncated W2 array: %v", arr)
		}

		switch obj := core.TraceToDirectObject(arr.Get(i)).(type) {
		case *core.PdfObjectArray:
			vals, err := obj.ToFloat64Array()
			if err != nil || len(vals)%3 != 0 {
				return nil, fmt.Errorf("bad W2 metric list at %d", i)
			}
			for j := 0; j+2 < len(vals); j += 3 {
				vertical[cmap.CID(first+j/3)] = VerticalMetrics{
					W1Y: vals[j] * 0.001,
					V1X: vals[j+1] * 0.001,
					V1Y: vals[j+2] * 0.001,
				}
			}
			i++
		default:
			if i+3 >= arr.Len() {
				return nil, fmt.Errorf("truncated W2 range: %v", arr)
			}
			last, ok := core.GetIntVal(arr.Get(i))
			if !ok {
				return nil, fmt.Errorf("bad W2 range end at %d", i)
			}
			vals := make([]float64, 3)
			for j := 0; j < 3; j++ {
				v, err := core.GetNumberAsFloat(arr.Get(i + 1 + j))
				if err != nil {
					return nil, fmt.Errorf("bad W2 range metric at %d", i+1+j)
				}
				vals[j] = v
			}
			metrics := VerticalMetrics{
				W1Y: vals[0] * 0.001,
				V1X: vals[1] * 0.001,
				V1Y: vals[2] * 0.001,
			}
			for cid := first; cid <= last; cid++ {
				vertical[cmap.CID(cid)] = metrics
			}
			i += 4
		}
	}
	return vertical, nil
}

// CIDToUnicodeProvider resolves a CID of a character collection to its
// text content, e.g. through the Adobe-Japan1 ordering tables.
type CIDToUnicodeProvider func(info cmap.CIDSystemInfo, cid cmap.CID) (string, bool)

var cidToUnicode CIDToUnicodeProvider

// RegisterCIDToUnicodeProvider installs the registry/ordering lookup used
// as the second priority of UnicodeForCode for composite fonts.
func RegisterCIDToUnicodeProvider(provider CIDToUnicodeProvider) {
	cidToUnicode = provider
}

func cidToUnicodeProvider() CIDToUnicodeProvider {
	return cidToUnicode
}
