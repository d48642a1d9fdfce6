/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package type1

import (
	"bytes"
	"encoding/binary"
	"math"
	"sort"

	"github.com/pixelpdf/pixelpdf/internal/textencoding"
)

// ToOpenType runs the full conversion pipeline of an already parsed Type1
// font: charstring conversion, CFF assembly and SFNT wrapping. The result
// is loadable by any OpenType capable typeface loader.
func (font *Font) ToOpenType() ([]byte, error) {
	glyphs := font.ConvertGlyphs()
	cffData, err := BuildCFF(font, glyphs)
	if err != nil {
		return nil, err
	}

	unitsPerEm := 1000
	if font.FontMatrix[0] > 0 {
		if v := int(math.Round(1 / font.FontMatrix[0])); v > 0 {
			unitsPerEm = v
		}
	}

	info := OpenTypeInfo{
		FontName:   font.FontName,
		UnitsPerEm: unitsPerEm,
		BBox:       font.FontBBox,
		RuneToGID:  make(map[rune]uint16),
	}
	for _, glyph := range glyphs {
		info.Widths = append(info.Widths, glyph.Width)
	}
	for gid, glyph := range glyphs {
		if gid == 0 {
			continue
		}
		if r, ok := textencoding.GlyphToRune(textencoding.GlyphName(glyph.Name)); ok {
			if _, taken := info.RuneToGID[r]; !taken {
				info.RuneToGID[r] = uint16(gid)
			}
		}
	}
	return WrapOpenType(cffData, info)
}

// OpenTypeInfo carries the metrics the SFNT wrapper derives its tables
// from.
type OpenTypeInfo struct {
	FontName   string
	UnitsPerEm int
	BBox       [4]float64
	// Widths per glyph id, in font units.
	Widths []float64
	// RuneToGID drives the synthesized cmap.
	RuneToGID map[rune]uint16
}

// sfntTable is one table of the OpenType container.
type sfntTable struct {
	tag  string
	data []byte
}

// WrapOpenType wraps a bare CFF font program into an SFNT container with
// the metric and naming tables required for a CFF flavored OpenType font:
// CFF, cmap, head, hhea, hmtx, maxp, name, post and OS/2. It serves both
// converted Type1 programs and the Type1C/CIDFontType0C payloads of
// FontFile3 streams.
func WrapOpenType(cffData []byte, info OpenTypeInfo) ([]byte, error) {
	unitsPerEm := info.UnitsPerEm
	if unitsPerEm <= 0 {
		unitsPerEm = 1000
	}

	xMin, yMin, xMax, yMax := int16(info.BBox[0]), int16(info.BBox[1]),
		int16(info.BBox[2]), int16(info.BBox[3])
	if xMin == 0 && yMin == 0 && xMax == 0 && yMax == 0 {
		yMin, xMax, yMax = -200, int16(unitsPerEm), int16(unitsPerEm)
	}

	tables := []sfntTable{
		{"CFF ", cffData},
		{"OS/2", buildOS2(unitsPerEm, yMax, yMin)},
		{"cmap", buildCmap(info.RuneToGID)},
		{"head", buildHead(unitsPerEm, xMin, yMin, xMax, yMax)},
		{"hhea", buildHhea(len(info.Widths), yMax, yMin, maxAdvance(info.Widths))},
		{"hmtx", buildHmtx(info.Widths)},
		{"maxp", buildMaxp(len(info.Widths))},
		{"name", buildName(info.FontName)},
		{"post", buildPost()},
	}
	return assembleSFNT(tables)
}

func maxAdvance(widths []float64) int {
	max := 0
	for _, w := range widths {
		if int(w) > max {
			max = int(w)
		}
	}
	return max
}

// assembleSFNT lays out the table directory, pads tables to 4 byte
// boundaries, computes table checksums and patches the head table's
// checkSumAdjustment.
func assembleSFNT(tables []sfntTable) ([]byte, error) {
	sort.Slice(tables, func(i, j int) bool { return tables[i].tag < tables[j].tag })

	numTables := len(tables)
	entrySelector := 0
	for 1<<(entrySelector+1) <= numTables {
		entrySelector++
	}
	searchRange := (1 << entrySelector) * 16

	var out bytes.Buffer
	// OTTO version tag for CFF outlines.
	out.Write([]byte{'O', 'T', 'T', 'O'})
	writeU16(&out, uint16(numTables))
	writeU16(&out, uint16(searchRange))
	writeU16(&out, uint16(entrySelector))
	writeU16(&out, uint16(numTables*16-searchRange))

	offset := 12 + numTables*16
	type placed struct {
		offset, length int
	}
	places := make([]placed, numTables)
	for i, t := range tables {
		places[i] = placed{offset, len(t.data)}
		offset += (len(t.data) + 3) &^ 3
	}

	headIndex := -1
	for i, t := range tables {
		out.WriteString(t.tag)
		writeU32(&out, tableChecksum(t.data))
		writeU32(&out, uint32(places[i].offset))
		writeU32(&out, uint32(places[i].length))
		if t.tag == "head" {
			headIndex = i
		}
	}
	for _, t := range tables {
		out.Write(t.data)
		if pad := (4 - len(t.data)%4) % 4; pad > 0 {
			out.Write(make([]byte, pad))
		}
	}

	data := out.Bytes()
	if headIndex >= 0 {
		total := tableChecksum(data)
		adjustment := 0xb1b0afba - total
		binary.BigEndian.PutUint32(data[places[headIndex].offset+8:], adjustment)
	}
	return data, nil
}

func tableChecksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var v uint32
		for j := 0; j < 4; j++ {
			v <<= 8
			if i+j < len(data) {
				v |= uint32(data[i+j])
			}
		}
		sum += v
	}
	return sum
}

func writeU16(buf *bytes.Buffer, v uint16) {
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}

func writeU32(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v >> 24))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}

func buildHead(unitsPerEm int, xMin, yMin, xMax, yMax int16) []byte {
	var b bytes.Buffer
	writeU32(&b, 0x00010000) // version
	writeU32(&b, 0x00010000) // fontRevision
	writeU32(&b, 0)          // checkSumAdjustment, patched later
	writeU32(&b, 0x5f0f3cf5) // magicNumber
	writeU16(&b, 3)          // flags: baseline at y=0, lsb at x=0
	writeU16(&b, uint16(unitsPerEm))
	writeU32(&b, 0) // created
	writeU32(&b, 0)
	writeU32(&b, 0) // modified
	writeU32(&b, 0)
	writeU16(&b, uint16(xMin))
	writeU16(&b, uint16(yMin))
	writeU16(&b, uint16(xMax))
	writeU16(&b, uint16(yMax))
	writeU16(&b, 0) // macStyle
	writeU16(&b, 8) // lowestRecPPEM
	writeU16(&b, 2) // fontDirectionHint
	writeU16(&b, 0) // indexToLocFormat
	writeU16(&b, 0) // glyphDataFormat
	return b.Bytes()
}

func buildHhea(numGlyphs int, ascent, descent int16, advanceMax int) []byte {
	var b bytes.Buffer
	writeU32(&b, 0x00010000)
	writeU16(&b, uint16(ascent))
	writeU16(&b, uint16(descent))
	writeU16(&b, 0) // lineGap
	writeU16(&b, uint16(advanceMax))
	writeU16(&b, 0) // minLeftSideBearing
	writeU16(&b, 0) // minRightSideBearing
	writeU16(&b, uint16(advanceMax))
	writeU16(&b, 1) // caretSlopeRise
	writeU16(&b, 0) // caretSlopeRun
	writeU16(&b, 0) // caretOffset
	writeU16(&b, 0)
	writeU16(&b, 0)
	writeU16(&b, 0)
	writeU16(&b, 0)
	writeU16(&b, 0) // metricDataFormat
	writeU16(&b, uint16(numGlyphs))
	return b.Bytes()
}

func buildHmtx(widths []float64) []byte {
	var b bytes.Buffer
	for _, w := range widths {
		writeU16(&b, uint16(int(w)))
		writeU16(&b, 0) // lsb; CFF outlines carry their own side bearings
	}
	return b.Bytes()
}

func buildMaxp(numGlyphs int) []byte {
	var b bytes.Buffer
	writeU32(&b, 0x00005000) // version 0.5 for CFF outlines
	writeU16(&b, uint16(numGlyphs))
	return b.Bytes()
}

func buildPost() []byte {
	var b bytes.Buffer
	writeU32(&b, 0x00030000) // version 3.0: no glyph names
	writeU32(&b, 0)          // italicAngle
	writeU16(&b, 0)          // underlinePosition
	writeU16(&b, 0)          // underlineThickness
	writeU32(&b, 0)          // isFixedPitch
	writeU32(&b, 0)
	writeU32(&b, 0)
	writeU32(&b, 0)
	writeU32(&b, 0)
	return b.Bytes()
}

func buildOS2(unitsPerEm int, ascent, descent int16) []byte {
	var b bytes.Buffer
	writeU16(&b, 4)                   // version
	writeU16(&b, uint16(unitsPerEm/2)) // xAvgCharWidth
	writeU16(&b, 400)                 // usWeightClass
	writeU16(&b, 5)                   // usWidthClass
	writeU16(&b, 0)                   // fsType
	for i := 0; i < 11; i++ {         // subscript/superscript/strikeout
		writeU16(&b, 0)
	}
	writeU16(&b, 0) // sFamilyClass
	b.Write(make([]byte, 10))
	writeU32(&b, 0) // ulUnicodeRange1..4
	writeU32(&b, 0)
	writeU32(&b, 0)
	writeU32(&b, 0)
	b.WriteString("pxpd") // achVendID
	writeU16(&b, 0x0040)  // fsSelection: regular
	writeU16(&b, 0x0020)  // usFirstCharIndex
	writeU16(&b, 0xffff)  // usLastCharIndex
	writeU16(&b, uint16(ascent))
	writeU16(&b, uint16(descent))
	writeU16(&b, 0) // sTypoLineGap
	writeU16(&b, uint16(ascent))
	writeU16(&b, uint16(-descent))
	writeU32(&b, 0) // ulCodePageRange1
	writeU32(&b, 0)
	writeU16(&b, 0) // sxHeight
	writeU16(&b, 0) // sCapHeight
	writeU16(&b, 0) // usDefaultChar
	writeU16(&b, 0x0020)
	writeU16(&b, 0) // usMaxContext
	return b.Bytes()
}

// buildName emits a minimal format 0 name table with family, full and
// PostScript name records on the Windows Unicode platform.
func buildName(fontName string) []byte {
	if fontName == "" {
		fontName = "Embedded"
	}
	utf16be := func(s string) []byte {
		var b bytes.Buffer
		for _, r := range s {
			writeU16(&b, uint16(r))
		}
		return b.Bytes()
	}
	nameIDs := []uint16{1, 4, 6}
	value := utf16be(fontName)

	var b bytes.Buffer
	writeU16(&b, 0) // format
	writeU16(&b, uint16(len(nameIDs)))
	writeU16(&b, uint16(6+len(nameIDs)*12))
	for _, id := range nameIDs {
		writeU16(&b, 3)      // platform: Windows
		writeU16(&b, 1)      // encoding: Unicode BMP
		writeU16(&b, 0x0409) // language: en-US
		writeU16(&b, id)
		writeU16(&b, uint16(len(value)))
		writeU16(&b, 0) // all records share the same string
	}
	b.Write(value)
	return b.Bytes()
}

// buildCmap synthesizes a cmap with a (3,1) format 4 subtable from the
// rune to glyph mapping derived from the font's encoding vector. A format
// 0 table is emitted instead when no glyph maps onto Unicode.
func buildCmap(runeToGID map[rune]uint16) []byte {
	var runes []rune
	for r := range runeToGID {
		if r <= 0xffff {
			runes = append(runes, r)
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	var b bytes.Buffer
	writeU16(&b, 0) // version
	writeU16(&b, 1) // numTables

	if len(runes) == 0 {
		// Format 0 fallback mapping every code to .notdef.
		writeU16(&b, 1) // platform: Macintosh
		writeU16(&b, 0)
		writeU32(&b, 12)
		writeU16(&b, 0) // format
		writeU16(&b, 262)
		writeU16(&b, 0)
		b.Write(make([]byte, 256))
		return b.Bytes()
	}

	// Split into segments of consecutive runes.
	type segment struct {
		start, end rune
	}
	var segs []segment
	cur := segment{runes[0], runes[0]}
	for _, r := range runes[1:] {
		if r == cur.end+1 {
			cur.end = r
			continue
		}
		segs = append(segs, cur)
		cur = segment{r, r}
	}
	segs = append(segs, cur)

	segCount := len(segs) + 1 // terminating 0xffff segment
	var sub bytes.Buffer
	writeU16(&sub, 4) // format
	glyphIDCount := 0
	for _, s := range segs {
		glyphIDCount += int(s.end-s.start) + 1
	}
	length := 16 + segCount*8 + glyphIDCount*2
	writeU16(&sub, uint16(length))
	writeU16(&sub, 0) // language
	writeU16(&sub, uint16(segCount*2))
	entrySelector := 0
	for 1<<(entrySelector+1) <= segCount {
		entrySelector++
	}
	searchRange := (1 << entrySelector) * 2
	writeU16(&sub, uint16(searchRange))
	writeU16(&sub, uint16(entrySelector))
	writeU16(&sub, uint16(segCount*2-searchRange))

	for _, s := range segs {
		writeU16(&sub, uint16(s.end))
	}
	writeU16(&sub, 0xffff)
	writeU16(&sub, 0) // reservedPad
	for _, s := range segs {
		writeU16(&sub, uint16(s.start))
	}
	writeU16(&sub, 0xffff)
	for range segs {
		writeU16(&sub, 0) // idDelta; glyphIdArray carries the mapping
	}
	writeU16(&sub, 1) // idDelta for the 0xffff segment

	// idRangeOffset: byte distance from this word to the segment's entries
	// in glyphIdArray.
	glyphIDStart := 0
	for i, s := range segs {
		remainingWords := segCount - i
		offset := (remainingWords + glyphIDStart) * 2
		writeU16(&sub, uint16(offset))
		glyphIDStart += int(s.end-s.start) + 1
	}
	writeU16(&sub, 0) // 0xffff segment maps through idDelta

	for _, s := range segs {
		for r := s.start; r <= s.end; r++ {
			writeU16(&sub, runeToGID[r])
		}
	}

	writeU16(&b, 3) // platform: Windows
	writeU16(&b, 1) // encoding: Unicode BMP
	writeU32(&b, 12)
	b.Write(sub.Bytes())
	return b.Bytes()
}
