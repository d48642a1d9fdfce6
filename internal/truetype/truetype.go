/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package truetype reads the SFNT tables of TrueType and OpenType font
// programs needed by the font engine: character mappings, horizontal
// metrics and the design grid scale.
package truetype

import (
	"encoding/binary"
	"errors"

	"github.com/pixelpdf/pixelpdf/common"
)

var (
	errTruncated = errors.New("truetype: truncated data")
	errMalformed = errors.New("truetype: malformed structure")
)

// Font exposes the parsed SFNT tables of a TrueType or OpenType font.
type Font struct {
	UnitsPerEm int
	NumGlyphs  int

	// Chars maps character codes from the preferred cmap subtable to
	// glyph ids: (3,1) Unicode BMP when present, (1,0)/(3,0) otherwise.
	Chars map[rune]uint16

	// SymbolicChars maps the (3,0) symbol subtable codes when present.
	SymbolicChars map[rune]uint16

	// Widths holds the advance per glyph id in font units.
	Widths []uint16
}

type table struct {
	offset, length uint32
}

// Parse reads the SFNT container of `data`.
func Parse(data []byte) (*Font, error) {
	if len(data) < 12 {
		return nil, errTruncated
	}
	version := binary.BigEndian.Uint32(data)
	if version != 0x00010000 && version != 0x74727565 && version != 0x4f54544f {
		common.Log.Debug("ERROR: SFNT version 0x%08x", version)
		return nil, errMalformed
	}
	numTables := int(binary.BigEndian.Uint16(data[4:]))
	if 12+numTables*16 > len(data) {
		return nil, errTruncated
	}

	tables := make(map[string]table, numTables)
	for i := 0; i < numTables; i++ {
		entry := data[12+i*16:]
		tag := string(entry[:4])
		offset := binary.BigEndian.Uint32(entry[8:])
		length := binary.BigEndian.Uint32(entry[12:])
		if int(offset)+int(length) > len(data) {
			common.Log.Debug("ERROR: table %q out of bounds", tag)
			continue
		}
		tables[tag] = table{offset, length}
	}

	font := &Font{UnitsPerEm: 1000}
	if t, ok := tables["head"]; ok && t.length >= 54 {
		font.UnitsPerEm = int(binary.BigEndian.Uint16(data[t.offset+18:]))
	}
	if t, ok := tables["maxp"]; ok && t.length >= 6 {
		font.NumGlyphs = int(binary.BigEndian.Uint16(data[t.offset+4:]))
	}
	font.parseHmtx(data, tables)
	font.parseCmap(data, tables)
	return font, nil
}

// parseHmtx reads the advance widths, repeating the last advance for the
// monospaced tail as hhea's numberOfHMetrics prescribes.
func (font *Font) parseHmtx(data []byte, tables map[string]table) {
	hhea, ok := tables["hhea"]
	if !ok || hhea.length < 36 {
		return
	}
	numHMetrics := int(binary.BigEndian.Uint16(data[hhea.offset+34:]))
	hmtx, ok := tables["hmtx"]
	if !ok || numHMetrics == 0 || int(hmtx.length) < numHMetrics*4 {
		return
	}

	count := font.NumGlyphs
	if count < numHMetrics {
		count = numHMetrics
	}
	font.Widths = make([]uint16, count)
	var last uint16
	for gid := 0; gid < count; gid++ {
		if gid < numHMetrics {
			last = binary.BigEndian.Uint16(data[int(hmtx.offset)+gid*4:])
		}
		font.Widths[gid] = last
	}
}

// parseCmap picks a character mapping subtable. The Windows Unicode BMP
// subtable (3,1) wins; the symbol subtable (3,0) and the Macintosh byte
// subtable (1,0) serve symbolic fonts.
func (font *Font) parseCmap(data []byte, tables map[string]table) {
	cmap, ok := tables["cmap"]
	if !ok || cmap.length < 4 {
		return
	}
	base := int(cmap.offset)
	numSub := int(binary.BigEndian.Uint16(data[base+2:]))
	if base+4+numSub*8 > len(data) {
		return
	}

	var unicodeOff, symbolOff, macOff int
	for i := 0; i < numSub; i++ {
		entry := data[base+4+i*8:]
		platform := binary.BigEndian.Uint16(entry)
		encoding := binary.BigEndian.Uint16(entry[2:])
		offset := base + int(binary.BigEndian.Uint32(entry[4:]))
		switch {
		case platform == 3 && encoding == 1:
			unicodeOff = offset
		case platform == 3 && encoding == 0:
			symbolOff = offset
		case platform == 1 && encoding == 0:
			macOff = offset
		}
	}

	if symbolOff > 0 {
		font.SymbolicChars = font.parseCmapSubtable(data, symbolOff)
	}
	switch {
	case unicodeOff > 0:
		font.Chars = font.parseCmapSubtable(data, unicodeOff)
	case symbolOff > 0:
		font.Chars = font.SymbolicChars
	case macOff > 0:
		font.Chars = font.parseCmapSubtable(data, macOff)
	}
}

// parseCmapSubtable decodes format 0, 4 and 6 subtables.
func (font *Font) parseCmapSubtable(data []byte, off int) map[rune]uint16 {
	if off+4 > len(data) {
		return nil
	}
	chars := make(map[rune]uint16)
	format := binary.BigEndian.Uint16(data[off:])
	switch format {
	case 0:
		if off+262 > len(data) {
			return nil
		}
		for code := 0; code < 256; code++ {
			if gid := data[off+6+code]; gid != 0 {
				chars[rune(code)] = uint16(gid)
			}
		}
	case 4:
		segCountX2 := int(binary.BigEndian.Uint16(data[off+6:]))
		segCount := segCountX2 / 2
		endBase := off + 14
		startBase := endBase + segCountX2 + 2
		deltaBase := startBase + segCountX2
		rangeBase := deltaBase + segCountX2
		if rangeBase+segCountX2 > len(data) {
			return nil
		}
		for seg := 0; seg < segCount; seg++ {
			end := int(binary.BigEndian.Uint16(data[endBase+seg*2:]))
			start := int(binary.BigEndian.Uint16(data[startBase+seg*2:]))
			delta := int(binary.BigEndian.Uint16(data[deltaBase+seg*2:]))
			rangeOff := int(binary.BigEndian.Uint16(data[rangeBase+seg*2:]))
			if start == 0xffff {
				continue
			}
			for code := start; code <= end; code++ {
				var gid int
				if rangeOff == 0 {
					gid = (code + delta) & 0xffff
				} else {
					idx := rangeBase + seg*2 + rangeOff + (code-start)*2
					if idx+2 > len(data) {
						continue
					}
					gid = int(binary.BigEndian.Uint16(data[idx:]))
					if gid != 0 {
						gid = (gid + delta) & 0xffff
					}
				}
				if gid != 0 {
					chars[rune(code)] = uint16(gid)
				}
			}
		}
	case 6:
		if off+10 > len(data) {
			return nil
		}
		first := int(binary.BigEndian.Uint16(data[off+6:]))
		count := int(binary.BigEndian.Uint16(data[off+8:]))
		if off+10+count*2 > len(data) {
			return nil
		}
		for i := 0; i < count; i++ {
			if gid := binary.BigEndian.Uint16(data[off+10+i*2:]); gid != 0 {
				chars[rune(first+i)] = gid
			}
		}
	default:
		common.Log.Debug("cmap subtable format %d skipped", format)
		return nil
	}
	return chars
}

// GlyphAdvance returns the advance width of `gid` in font units.
func (font *Font) GlyphAdvance(gid uint16) (uint16, bool) {
	if int(gid) >= len(font.Widths) {
		return 0, false
	}
	return font.Widths[gid], true
}
