/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package cff reads fonts in the Compact Font Format, both as bare font
// programs (FontFile3 subtype Type1C / CIDFontType0C) and as the payload of
// an OpenType `CFF ` table.
//
// Reference: Adobe Technical Note #5176, "The Compact Font Format
// Specification".
package cff

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/internal/textencoding"
)

var (
	errTruncated = errors.New("cff: truncated data")
	errMalformed = errors.New("cff: malformed structure")
)

// Font is a parsed CFF font program.
type Font struct {
	data []byte

	// Name is the font name from the Name INDEX.
	Name string

	// FontMatrix maps glyph space to text space. Defaults to
	// [0.001 0 0 0.001 0 0].
	FontMatrix [6]float64

	// FontBBox is the font bounding box from the Top DICT.
	FontBBox [4]float64

	// IsCIDKeyed is true when the Top DICT carries a ROS operator.
	IsCIDKeyed bool

	charStrings index
	strings     index

	charsetOffset     int
	encodingOffset    int
	charStringsOffset int
	privateOffset     int
	privateSize       int

	// gidToSID maps glyph ids to SIDs for name-keyed fonts and to CIDs for
	// CID-keyed fonts.
	gidToSID []uint32
	cidToGID map[uint32]uint16

	nameToGID map[string]uint16
	codeToGID map[byte]uint16

	defaultWidthX float64
	nominalWidthX float64
	localSubrs    index
	globalSubrs   index
}

// Parse reads a CFF font program from `data`. The first font of the Name
// INDEX is used; CFF blobs embedded in PDFs carry exactly one.
func Parse(data []byte) (*Font, error) {
	if len(data) < 4 {
		return nil, errTruncated
	}
	major, hdrSize := data[0], int(data[2])
	if major != 1 {
		common.Log.Debug("ERROR: CFF major version %d", major)
		return nil, errMalformed
	}
	if hdrSize < 4 || hdrSize > len(data) {
		return nil, errMalformed
	}

	font := &Font{
		data:       data,
		FontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0},
	}

	pos := hdrSize
	nameIndex, pos, err := parseIndex(data, pos)
	if err != nil {
		return nil, err
	}
	if len(nameIndex) > 0 {
		font.Name = string(nameIndex[0])
	}

	topDictIndex, pos, err := parseIndex(data, pos)
	if err != nil {
		return nil, err
	}
	if len(topDictIndex) == 0 {
		return nil, errMalformed
	}

	font.strings, pos, err = parseIndex(data, pos)
	if err != nil {
		return nil, err
	}

	font.globalSubrs, _, err = parseIndex(data, pos)
	if err != nil {
		return nil, err
	}

	topDict, err := parseDict(topDictIndex[0])
	if err != nil {
		return nil, err
	}
	if err := font.applyTopDict(topDict); err != nil {
		return nil, err
	}

	font.charStrings, _, err = parseIndex(data, font.charStringsOffset)
	if err != nil {
		return nil, err
	}

	if err := font.parsePrivate(topDict); err != nil {
		// Private DICT problems cost fallback widths only.
		common.Log.Debug("ERROR: CFF private dict: %v", err)
	}
	if err := font.parseCharset(); err != nil {
		return nil, err
	}
	if err := font.parseEncoding(); err != nil {
		common.Log.Debug("ERROR: CFF encoding: %v", err)
	}

	return font, nil
}

func (font *Font) applyTopDict(topDict cffDict) error {
	font.charsetOffset = topDict.intOperand(opCharset, 0)
	font.encodingOffset = topDict.intOperand(opEncoding, 0)
	font.charStringsOffset = topDict.intOperand(opCharStrings, -1)
	if font.charStringsOffset < 0 {
		common.Log.Debug("ERROR: CFF without CharStrings")
		return errMalformed
	}
	if m, ok := topDict[opFontMatrix]; ok && len(m) == 6 {
		copy(font.FontMatrix[:], m)
	}
	if b, ok := topDict[opFontBBox]; ok && len(b) == 4 {
		copy(font.FontBBox[:], b)
	}
	if p, ok := topDict[opPrivate]; ok && len(p) == 2 {
		font.privateSize = int(p[0])
		font.privateOffset = int(p[1])
	}
	if _, ok := topDict[opROS]; ok {
		font.IsCIDKeyed = true
	}
	return nil
}

// parsePrivate reads the Private DICT for width defaults and local subrs.
// For CID-keyed fonts the first FDArray font dict supplies the Private DICT.
func (font *Font) parsePrivate(topDict cffDict) error {
	offset, size := font.privateOffset, font.privateSize
	if font.IsCIDKeyed {
		fdOffset := topDict.intOperand(opFDArray, -1)
		if fdOffset >= 0 {
			fdIndex, _, err := parseIndex(font.data, fdOffset)
			if err != nil {
				return err
			}
			if len(fdIndex) > 0 {
				fd, err := parseDict(fdIndex[0])
				if err != nil {
					return err
				}
				if p, ok := fd[opPrivate]; ok && len(p) == 2 {
					size, offset = int(p[0]), int(p[1])
				}
			}
		}
	}
	if offset <= 0 || size <= 0 {
		return nil
	}
	if offset+size > len(font.data) {
		return errTruncated
	}

	private, err := parseDict(font.data[offset : offset+size])
	if err != nil {
		return err
	}
	if v, ok := private[opDefaultWidthX]; ok && len(v) > 0 {
		font.defaultWidthX = v[0]
	}
	if v, ok := private[opNominalWidthX]; ok && len(v) > 0 {
		font.nominalWidthX = v[0]
	}
	if subrs := private.intOperand(opSubrs, -1); subrs >= 0 {
		font.localSubrs, _, err = parseIndex(font.data, offset+subrs)
		if err != nil {
			return err
		}
	}
	return nil
}

// parseCharset reads the charset, filling gidToSID (gid -> SID for
// name-keyed fonts, gid -> CID for CID-keyed) and the derived lookups.
func (font *Font) parseCharset() error {
	nGlyphs := len(font.charStrings)
	font.gidToSID = make([]uint32, nGlyphs)

	switch font.charsetOffset {
	case 0: // ISOAdobe: identity up to SID 228.
		for gid := 0; gid < nGlyphs; gid++ {
			font.gidToSID[gid] = uint32(gid)
		}
	case 1, 2:
		// Expert and ExpertSubset predefined charsets are rare in embedded
		// fonts; the identity fallback keeps .notdef addressable.
		common.Log.Debug("predefined charset %d not tabulated, using identity", font.charsetOffset)
		for gid := 0; gid < nGlyphs; gid++ {
			font.gidToSID[gid] = uint32(gid)
		}
	default:
		data := font.data
		pos := font.charsetOffset
		if pos >= len(data) {
			return errTruncated
		}
		format := data[pos]
		pos++
		switch format {
		case 0:
			// SID per glyph, .notdef omitted.
			for gid := 1; gid < nGlyphs; gid++ {
				if pos+2 > len(data) {
					return errTruncated
				}
				font.gidToSID[gid] = uint32(data[pos])<<8 | uint32(data[pos+1])
				pos += 2
			}
		case 1, 2:
			gid := 1
			for gid < nGlyphs {
				if pos+2 > len(data) {
					return errTruncated
				}
				first := uint32(data[pos])<<8 | uint32(data[pos+1])
				pos += 2
				var nLeft int
				if format == 1 {
					if pos >= len(data) {
						return errTruncated
					}
					nLeft = int(data[pos])
					pos++
				} else {
					if pos+2 > len(data) {
						return errTruncated
					}
					nLeft = int(data[pos])<<8 | int(data[pos+1])
					pos += 2
				}
				for i := 0; i <= nLeft && gid < nGlyphs; i++ {
					font.gidToSID[gid] = first + uint32(i)
					gid++
				}
			}
		default:
			common.Log.Debug("ERROR: charset format %d", format)
			return errMalformed
		}
	}

	if font.IsCIDKeyed {
		font.cidToGID = make(map[uint32]uint16, nGlyphs)
		for gid, cid := range font.gidToSID {
			font.cidToGID[cid] = uint16(gid)
		}
	} else {
		font.nameToGID = make(map[string]uint16, nGlyphs)
		for gid := 0; gid < nGlyphs; gid++ {
			font.nameToGID[font.sidToString(font.gidToSID[gid])] = uint16(gid)
		}
	}
	return nil
}

// parseEncoding reads the built-in encoding, filling codeToGID. CID-keyed
// fonts have no encoding.
func (font *Font) parseEncoding() error {
	if font.IsCIDKeyed {
		return nil
	}
	font.codeToGID = make(map[byte]uint16)

	switch font.encodingOffset {
	case 0, 1:
		// Standard or Expert encoding: build from the charset by name.
		var names map[byte]textencoding.GlyphName
		if font.encodingOffset == 0 {
			names = textencoding.StandardEncodingGlyphNames()
		} else {
			names = textencoding.MacExpertEncodingGlyphNames()
		}
		for code, name := range names {
			if gid, ok := font.nameToGID[string(name)]; ok {
				font.codeToGID[code] = gid
			}
		}
		return nil
	}

	data := font.data
	pos := font.encodingOffset
	if pos >= len(data) {
		return errTruncated
	}
	format := data[pos]
	pos++
	switch format & 0x7f {
	case 0:
		if pos >= len(data) {
			return errTruncated
		}
		nCodes := int(data[pos])
		pos++
		if pos+nCodes > len(data) {
			return errTruncated
		}
		for i := 0; i < nCodes; i++ {
			font.codeToGID[data[pos+i]] = uint16(i + 1)
		}
	case 1:
		if pos >= len(data) {
			return errTruncated
		}
		nRanges := int(data[pos])
		pos++
		gid := uint16(1)
		for i := 0; i < nRanges; i++ {
			if pos+2 > len(data) {
				return errTruncated
			}
			first := data[pos]
			nLeft := int(data[pos+1])
			pos += 2
			for j := 0; j <= nLeft; j++ {
				font.codeToGID[first+byte(j)] = gid
				gid++
			}
		}
	default:
		common.Log.Debug("ERROR: encoding format %d", format)
		return errMalformed
	}
	if format&0x80 != 0 {
		common.Log.Debug("CFF encoding supplements ignored")
	}
	return nil
}

// StandardStringSID returns the SID of `s` among the CFF standard strings.
func StandardStringSID(s string) (int, bool) {
	stdStringOnce.Do(func() {
		stdStringSIDs = make(map[string]int, len(stdStrings))
		for i, str := range stdStrings {
			stdStringSIDs[str] = i
		}
	})
	sid, ok := stdStringSIDs[s]
	return sid, ok
}

var (
	stdStringOnce sync.Once
	stdStringSIDs map[string]int
)

// sidToString resolves a SID through the standard strings and the font's
// String INDEX.
func (font *Font) sidToString(sid uint32) string {
	if int(sid) < len(stdStrings) {
		return stdStrings[sid]
	}
	i := int(sid) - len(stdStrings)
	if i < len(font.strings) {
		return string(font.strings[i])
	}
	return fmt.Sprintf("sid%d", sid)
}

// GlyphCount returns the number of glyphs in the font.
func (font *Font) GlyphCount() int {
	return len(font.charStrings)
}

// GlyphName returns the name of glyph `gid` for name-keyed fonts.
func (font *Font) GlyphName(gid uint16) (string, bool) {
	if font.IsCIDKeyed || int(gid) >= len(font.gidToSID) {
		return "", false
	}
	return font.sidToString(font.gidToSID[gid]), true
}

// GIDForName returns the glyph id of the glyph named `name`.
func (font *Font) GIDForName(name string) (uint16, bool) {
	gid, ok := font.nameToGID[name]
	return gid, ok
}

// GIDForCID returns the glyph id selected by `cid`. For CID-keyed fonts the
// charset maps CIDs to gids directly; for name-keyed fonts used as CID
// fonts the charset index doubles as the CID.
func (font *Font) GIDForCID(cid uint32) uint16 {
	if font.IsCIDKeyed {
		if gid, ok := font.cidToGID[cid]; ok {
			return gid
		}
		return 0
	}
	if int(cid) < len(font.charStrings) {
		return uint16(cid)
	}
	return 0
}

// GIDForCode returns the glyph id assigned to character code `code` by the
// font's built-in encoding.
func (font *Font) GIDForCode(code byte) (uint16, bool) {
	gid, ok := font.codeToGID[code]
	return gid, ok
}

// BuiltinEncoding returns the code to glyph name map of the font's built-in
// encoding, or nil for CID-keyed fonts.
func (font *Font) BuiltinEncoding() map[byte]string {
	if font.codeToGID == nil {
		return nil
	}
	enc := make(map[byte]string, len(font.codeToGID))
	for code, gid := range font.codeToGID {
		if name, ok := font.GlyphName(gid); ok {
			enc[code] = name
		}
	}
	return enc
}
