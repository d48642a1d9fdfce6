/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"bytes"
	"os"
	"sync"

	"github.com/adrg/sysfont"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/unidoc/unitype"
	"golang.org/x/xerrors"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
	"github.com/pixelpdf/pixelpdf/internal/cff"
	"github.com/pixelpdf/pixelpdf/internal/textencoding"
	"github.com/pixelpdf/pixelpdf/internal/truetype"
	"github.com/pixelpdf/pixelpdf/internal/type1"
)

// fontProgram is a loaded embedded (or substituted) font program with the
// lookups the font engine needs: glyph addressing by name, rune or CID,
// glyph advances, and the typeface bytes for the canvas.
type fontProgram struct {
	// Typeface holds OpenType/TrueType bytes consumable by a typeface
	// loader. For Type1 programs these are the converted OpenType bytes.
	Typeface []byte

	cffFont *cff.Font
	ttf     *truetype.Font

	// builtinEncoding is the font program's own code to glyph name
	// vector, when it has one.
	builtinEncoding map[byte]textencoding.GlyphName

	// unitsPerEm scales font unit advances to the PDF glyph space of
	// 1000 units per em.
	unitsPerEm float64
}

// loadFontProgram decodes and parses the embedded font program of a
// descriptor. A nil return with ErrFontSubstitution means the caller
// should fall back to a substitute face.
func loadFontProgram(descriptor *PdfFontDescriptor) (*fontProgram, error) {
	if descriptor == nil || descriptor.fontFile == nil {
		return nil, nil
	}
	data, err := core.DecodeStream(descriptor.fontFile)
	if err != nil {
		common.Log.Debug("ERROR: decoding font file stream: %v", err)
		return nil, xerrors.Errorf("font file stream: %w", ErrFontSubstitution)
	}

	format := descriptor.fontFileFormat
	// Sniff the payload: descriptors in the wild mislabel their font
	// files, and OpenType data can hide behind any FontFile key.
	if kind, err := filetype.Match(data); err == nil {
		switch kind {
		case matchers.TypeTtf:
			format = FontFileTrueType
		case matchers.TypeOtf:
			format = FontFileOpenType
		}
	}

	switch format {
	case FontFileType1:
		return loadType1Program(descriptor, data)
	case FontFileType1C, FontFileCIDType0C:
		return loadCFFProgram(descriptor, data)
	case FontFileTrueType, FontFileOpenType:
		return loadTrueTypeProgram(data)
	}
	return nil, nil
}

// loadType1Program runs the Type1 conversion pipeline and reparses the
// produced CFF for glyph lookups.
func loadType1Program(descriptor *PdfFontDescriptor, data []byte) (*fontProgram, error) {
	length1, length2 := descriptor.length1, descriptor.length2
	if length1 <= 0 || length1 > len(data) {
		length1 = len(data)
	}
	if length2 < 0 || length1+length2 > len(data) {
		length2 = len(data) - length1
	}

	t1, err := type1.Parse(data[:length1], data[length1:length1+length2])
	if err != nil {
		common.Log.Debug("ERROR: parsing Type1 program: %v", err)
		return nil, xerrors.Errorf("type1: %w", ErrFontSubstitution)
	}

	typeface, err := t1.ToOpenType()
	if err != nil {
		common.Log.Debug("ERROR: converting Type1 program: %v", err)
		return nil, xerrors.Errorf("type1: %w", ErrFontSubstitution)
	}
	cffData, err := type1.BuildCFF(t1, t1.ConvertGlyphs())
	if err != nil {
		return nil, xerrors.Errorf("type1: %w", ErrFontSubstitution)
	}
	cffFont, err := cff.Parse(cffData)
	if err != nil {
		common.Log.Debug("ERROR: reparsing converted CFF: %v", err)
		return nil, xerrors.Errorf("type1: %w", ErrFontSubstitution)
	}

	program := &fontProgram{
		Typeface:   typeface,
		cffFont:    cffFont,
		unitsPerEm: 1000,
	}
	if t1.Encoding != nil {
		program.builtinEncoding = make(map[byte]textencoding.GlyphName, len(t1.Encoding))
		for code, name := range t1.Encoding {
			program.builtinEncoding[code] = textencoding.GlyphName(name)
		}
	} else if t1.UsesStandardEncoding {
		program.builtinEncoding = textencoding.StandardEncodingGlyphNames()
	}
	return program, nil
}

// loadCFFProgram parses a bare CFF payload (FontFile3) and wraps it into
// OpenType for the typeface loader.
func loadCFFProgram(descriptor *PdfFontDescriptor, data []byte) (*fontProgram, error) {
	cffFont, err := cff.Parse(data)
	if err != nil {
		common.Log.Debug("ERROR: parsing CFF program: %v", err)
		return nil, xerrors.Errorf("cff: %w", ErrFontSubstitution)
	}

	unitsPerEm := 1000.0
	if cffFont.FontMatrix[0] > 0 {
		unitsPerEm = 1 / cffFont.FontMatrix[0]
	}

	info := type1.OpenTypeInfo{
		FontName:   cffFont.Name,
		UnitsPerEm: int(unitsPerEm),
		BBox:       cffFont.FontBBox,
		RuneToGID:  make(map[rune]uint16),
	}
	for gid := 0; gid < cffFont.GlyphCount(); gid++ {
		metrics, _ := cffFont.GlyphMetrics(uint16(gid))
		info.Widths = append(info.Widths, metrics.Advance)
		if name, ok := cffFont.GlyphName(uint16(gid)); ok && gid > 0 {
			if r, ok := textencoding.GlyphToRune(textencoding.GlyphName(name)); ok {
				if _, taken := info.RuneToGID[r]; !taken {
					info.RuneToGID[r] = uint16(gid)
				}
			}
		}
	}
	typeface, err := type1.WrapOpenType(data, info)
	if err != nil {
		common.Log.Debug("ERROR: wrapping CFF into OpenType: %v", err)
		typeface = nil
	}

	program := &fontProgram{
		Typeface:   typeface,
		cffFont:    cffFont,
		unitsPerEm: unitsPerEm,
	}
	if enc := cffFont.BuiltinEncoding(); enc != nil {
		program.builtinEncoding = make(map[byte]textencoding.GlyphName, len(enc))
		for code, name := range enc {
			program.builtinEncoding[code] = textencoding.GlyphName(name)
		}
	}
	return program, nil
}

// loadTrueTypeProgram validates a TrueType/OpenType payload with unitype
// and reads its cmap and metrics tables.
func loadTrueTypeProgram(data []byte) (*fontProgram, error) {
	if _, err := unitype.Parse(bytes.NewReader(data)); err != nil {
		common.Log.Debug("ERROR: validating TrueType program: %v", err)
		return nil, xerrors.Errorf("truetype: %w", ErrFontSubstitution)
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		common.Log.Debug("ERROR: parsing TrueType tables: %v", err)
		return nil, xerrors.Errorf("truetype: %w", ErrFontSubstitution)
	}
	unitsPerEm := float64(ttf.UnitsPerEm)
	if unitsPerEm <= 0 {
		unitsPerEm = 1000
	}
	return &fontProgram{
		Typeface:   data,
		ttf:        ttf,
		unitsPerEm: unitsPerEm,
	}, nil
}

// GIDForName returns the glyph id of the named glyph: by charset name for
// CFF backed programs, through the glyph's rune and the cmap for TrueType
// programs.
func (program *fontProgram) GIDForName(name textencoding.GlyphName) (uint16, bool) {
	if program.cffFont != nil {
		return program.cffFont.GIDForName(string(name))
	}
	if program.ttf != nil {
		if r, ok := textencoding.GlyphToRune(name); ok {
			if gid, ok := program.ttf.Chars[r]; ok {
				return gid, true
			}
		}
	}
	return 0, false
}

// GIDForRune returns the glyph id of `r` through the program's character
// mapping.
func (program *fontProgram) GIDForRune(r rune) (uint16, bool) {
	if program.ttf != nil {
		if gid, ok := program.ttf.Chars[r]; ok {
			return gid, true
		}
		// Symbolic fonts map codes into the F0xx private use range.
		if gid, ok := program.ttf.Chars[0xf000|r&0xff]; ok && r <= 0xff {
			return gid, true
		}
		return 0, false
	}
	if program.cffFont != nil {
		if name, ok := textencoding.RuneToGlyph(r); ok {
			return program.cffFont.GIDForName(string(name))
		}
	}
	return 0, false
}

// GIDForCID maps a CID to a glyph id for CFF backed CID fonts; identity
// otherwise.
func (program *fontProgram) GIDForCID(cid uint32) uint16 {
	if program.cffFont != nil {
		return program.cffFont.GIDForCID(cid)
	}
	return uint16(cid)
}

// GlyphAdvance returns the advance of `gid` in PDF glyph space units
// (thousandths of an em).
func (program *fontProgram) GlyphAdvance(gid uint16) (float64, bool) {
	scale := 1000 / program.unitsPerEm
	if program.cffFont != nil {
		if metrics, ok := program.cffFont.GlyphMetrics(gid); ok {
			return metrics.Advance * scale, true
		}
	}
	if program.ttf != nil {
		if w, ok := program.ttf.GlyphAdvance(gid); ok {
			return float64(w) * scale, true
		}
	}
	return 0, false
}

var (
	sysfontOnce   sync.Once
	sysfontFinder *sysfont.Finder
)

// loadSubstituteProgram resolves a system font by family name and style
// flags through sysfont when an embedded program cannot be used.
func loadSubstituteProgram(baseFont string, descriptor *PdfFontDescriptor) *fontProgram {
	sysfontOnce.Do(func() {
		sysfontFinder = sysfont.NewFinder(&sysfont.FinderOpts{
			Extensions: []string{".ttf", ".ttc", ".otf"},
		})
	})

	query := stripSubsetTag(baseFont)
	if query == "" && descriptor != nil {
		query = descriptor.FontFamily
	}
	match := sysfontFinder.Match(query)
	if match == nil {
		common.Log.Debug("ERROR: no substitute for %q", query)
		return nil
	}
	common.Log.Debug("substituting %q with %q", baseFont, match.Filename)

	data, err := os.ReadFile(match.Filename)
	if err != nil {
		common.Log.Debug("ERROR: reading substitute: %v", err)
		return nil
	}
	program, err := loadTrueTypeProgram(data)
	if err != nil {
		return nil
	}
	return program
}

// stripSubsetTag removes the ABCDEF+ subset prefix from a base font name.
func stripSubsetTag(name string) string {
	if len(name) > 7 && name[6] == '+' {
		return name[7:]
	}
	return name
}

// builtinEncoder builds a text encoder from the font program's own
// encoding vector, if it has one.
func (program *fontProgram) builtinEncoder() textencoding.SimpleEncoder {
	if program == nil || len(program.builtinEncoding) == 0 {
		return nil
	}
	encoding := make(map[textencoding.CharCode]textencoding.GlyphName, len(program.builtinEncoding))
	for code, name := range program.builtinEncoding {
		encoding[textencoding.CharCode(code)] = name
	}
	enc, err := textencoding.NewCustomSimpleTextEncoder(encoding, nil)
	if err != nil {
		common.Log.Debug("ERROR: building builtin encoder: %v", err)
		return nil
	}
	return enc
}

// isStandardFontName returns true for names matching the standard 14
// fonts, which carry no embedded program.
func isStandardFontName(name string) bool {
	switch stripSubsetTag(name) {
	case "Courier", "Courier-Bold", "Courier-Oblique", "Courier-BoldOblique",
		"Helvetica", "Helvetica-Bold", "Helvetica-Oblique", "Helvetica-BoldOblique",
		"Times-Roman", "Times-Bold", "Times-Italic", "Times-BoldItalic",
		"Symbol", "ZapfDingbats":
		return true
	}
	return false
}
