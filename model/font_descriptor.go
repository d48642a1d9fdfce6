/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"fmt"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
)

// Font descriptor flags (Table 123, PDF 32000-1:2008).
const (
	fontFlagFixedPitch  = 1 << 0
	fontFlagSerif       = 1 << 1
	fontFlagSymbolic    = 1 << 2
	fontFlagScript      = 1 << 3
	fontFlagNonsymbolic = 1 << 5
	fontFlagItalic      = 1 << 6
	fontFlagAllCap      = 1 << 16
	fontFlagSmallCap    = 1 << 17
	fontFlagForceBold   = 1 << 18
)

// FontFileFormat identifies the format of an embedded font program.
type FontFileFormat int

// Embedded font program formats.
const (
	FontFileNone FontFileFormat = iota
	FontFileType1
	FontFileType1C
	FontFileCIDType0C
	FontFileTrueType
	FontFileOpenType
)

// PdfFontDescriptor describes font metrics and attributes beyond the
// per-glyph widths. Immutable after loading.
type PdfFontDescriptor struct {
	FontName    string
	FontFamily  string
	FontStretch string
	FontWeight  float64

	flags       int
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	CapHeight   float64
	XHeight     float64
	StemV       float64
	FontBBox    []float64

	MissingWidth float64

	// fontFile is the embedded font program stream, fontFileFormat its
	// detected format.
	fontFile       *core.PdfObjectStream
	fontFileFormat FontFileFormat

	// Length1/Length2/Length3 partition Type1 programs into the clear
	// text header, the eexec body and the trailing zeros.
	length1, length2 int
}

// newPdfFontDescriptorFromPdfObject loads the descriptor from a
// dictionary.
func newPdfFontDescriptorFromPdfObject(obj core.PdfObject) (*PdfFontDescriptor, error) {
	d, ok := core.GetDict(obj)
	if !ok {
		common.Log.Debug("ERROR: FontDescriptor not a dictionary (%T)", obj)
		return nil, core.ErrTypeError
	}

	descriptor := &PdfFontDescriptor{}
	if name, ok := core.GetNameVal(d.Get("FontName")); ok {
		descriptor.FontName = name
	}
	if family, ok := core.GetStringVal(d.Get("FontFamily")); ok {
		descriptor.FontFamily = family
	}
	if stretch, ok := core.GetNameVal(d.Get("FontStretch")); ok {
		descriptor.FontStretch = stretch
	}
	if weight, err := core.GetNumberAsFloat(d.Get("FontWeight")); err == nil {
		descriptor.FontWeight = weight
	}
	if flags, ok := core.GetIntVal(d.Get("Flags")); ok {
		descriptor.flags = flags
	}
	if v, err := core.GetNumberAsFloat(d.Get("ItalicAngle")); err == nil {
		descriptor.ItalicAngle = v
	}
	if v, err := core.GetNumberAsFloat(d.Get("Ascent")); err == nil {
		descriptor.Ascent = v
	}
	if v, err := core.GetNumberAsFloat(d.Get("Descent")); err == nil {
		descriptor.Descent = v
	}
	if v, err := core.GetNumberAsFloat(d.Get("CapHeight")); err == nil {
		descriptor.CapHeight = v
	}
	if v, err := core.GetNumberAsFloat(d.Get("XHeight")); err == nil {
		descriptor.XHeight = v
	}
	if v, err := core.GetNumberAsFloat(d.Get("StemV")); err == nil {
		descriptor.StemV = v
	}
	if v, err := core.GetNumberAsFloat(d.Get("MissingWidth")); err == nil {
		descriptor.MissingWidth = v
	}
	if arr, ok := core.GetArray(d.Get("FontBBox")); ok {
		if bbox, err := arr.ToFloat64Array(); err == nil && len(bbox) == 4 {
			descriptor.FontBBox = bbox
		}
	}

	descriptor.loadFontFile(d)
	return descriptor, nil
}

// loadFontFile locates the embedded font program and classifies its
// format from the FontFile key and the FontFile3 Subtype.
func (descriptor *PdfFontDescriptor) loadFontFile(d *core.PdfObjectDictionary) {
	if stream, ok := core.GetStream(d.Get("FontFile")); ok {
		descriptor.fontFile = stream
		descriptor.fontFileFormat = FontFileType1
		descriptor.length1, _ = core.GetIntVal(stream.PdfObjectDictionary.Get("Length1"))
		descriptor.length2, _ = core.GetIntVal(stream.PdfObjectDictionary.Get("Length2"))
		return
	}
	if stream, ok := core.GetStream(d.Get("FontFile2")); ok {
		descriptor.fontFile = stream
		descriptor.fontFileFormat = FontFileTrueType
		return
	}
	if stream, ok := core.GetStream(d.Get("FontFile3")); ok {
		descriptor.fontFile = stream
		subtype, _ := core.GetNameVal(stream.PdfObjectDictionary.Get("Subtype"))
		switch subtype {
		case "Type1C":
			descriptor.fontFileFormat = FontFileType1C
		case "CIDFontType0C":
			descriptor.fontFileFormat = FontFileCIDType0C
		case "OpenType":
			descriptor.fontFileFormat = FontFileOpenType
		default:
			common.Log.Debug("ERROR: unknown FontFile3 subtype %q", subtype)
			descriptor.fontFileFormat = FontFileType1C
		}
	}
}

// FontFileFormat returns the detected format of the embedded font
// program, or FontFileNone.
func (descriptor *PdfFontDescriptor) FontFileFormat() FontFileFormat {
	return descriptor.fontFileFormat
}

// IsFixedPitch returns the FixedPitch descriptor flag.
func (descriptor *PdfFontDescriptor) IsFixedPitch() bool {
	return descriptor.flags&fontFlagFixedPitch != 0
}

// IsSerif returns the Serif descriptor flag.
func (descriptor *PdfFontDescriptor) IsSerif() bool {
	return descriptor.flags&fontFlagSerif != 0
}

// IsSymbolic returns the Symbolic descriptor flag.
func (descriptor *PdfFontDescriptor) IsSymbolic() bool {
	return descriptor.flags&fontFlagSymbolic != 0
}

// IsScript returns the Script descriptor flag.
func (descriptor *PdfFontDescriptor) IsScript() bool {
	return descriptor.flags&fontFlagScript != 0
}

// IsItalic returns the Italic descriptor flag.
func (descriptor *PdfFontDescriptor) IsItalic() bool {
	return descriptor.flags&fontFlagItalic != 0
}

// IsForceBold returns the ForceBold descriptor flag.
func (descriptor *PdfFontDescriptor) IsForceBold() bool {
	return descriptor.flags&fontFlagForceBold != 0
}

// String returns a human readable description of the descriptor.
func (descriptor *PdfFontDescriptor) String() string {
	return fmt.Sprintf("DESCRIPTOR{%#q flags=0x%x italic=%v embedded=%t}",
		descriptor.FontName, descriptor.flags, descriptor.ItalicAngle,
		descriptor.fontFile != nil)
}
