/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package type1

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/internal/cff"
)

// formatReal renders a float for the nibble real encoding.
func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'G', -1, 64)
}

// CFF structure opcodes emitted by the assembler.
const (
	cffOpFontBBox    = 5
	cffOpCharset     = 15
	cffOpEncoding    = 16
	cffOpCharStrings = 17
	cffOpPrivate     = 18
	cffOpDefWidthX   = 20
	cffOpNomWidthX   = 21
	cffOpFontMatrix  = 0x0c07
)

// nStdStrings is the number of standard strings predefined by CFF; custom
// strings get SIDs starting here.
const nStdStrings = 391

// BuildCFF assembles a CFF font program from converted glyphs. The glyph
// slice must have .notdef at index 0. The encoding maps character codes to
// glyph names.
func BuildCFF(font *Font, glyphs []ConvertedGlyph) ([]byte, error) {
	if len(glyphs) == 0 || glyphs[0].Name != ".notdef" {
		return nil, errMalformed
	}

	defaultWidthX, nominalWidthX := widthDefaults(glyphs)

	// Prepend the Type2 width operand for glyphs whose advance differs
	// from defaultWidthX.
	charStrings := make([][]byte, len(glyphs))
	for i, glyph := range glyphs {
		if glyph.Width != defaultWidthX {
			w := &t2Writer{}
			w.writeNumber(glyph.Width - nominalWidthX)
			charStrings[i] = append(w.bytes(), glyph.CharString...)
		} else {
			charStrings[i] = glyph.CharString
		}
	}

	strings := newStringTable()

	// Charset format 0: one SID per glyph, .notdef excluded.
	charsetSIDs := make([]int, 0, len(glyphs)-1)
	for _, glyph := range glyphs[1:] {
		charsetSIDs = append(charsetSIDs, strings.sid(glyph.Name))
	}

	// Encoding format 0: one code per glyph, .notdef excluded.
	codes := encodingCodes(font, glyphs)

	// Private DICT: width defaults only.
	var private bytes.Buffer
	writeDictNumber(&private, defaultWidthX)
	writeDictOp(&private, cffOpDefWidthX)
	writeDictNumber(&private, nominalWidthX)
	writeDictOp(&private, cffOpNomWidthX)

	header := []byte{1, 0, 4, 4}
	nameIndex := encodeIndex([][]byte{[]byte(font.FontName)})
	stringIndex := encodeIndex(strings.custom)
	globalSubrIndex := encodeIndex(nil)
	charStringsIndex := encodeIndex(charStrings)

	var charset bytes.Buffer
	charset.WriteByte(0)
	for _, sid := range charsetSIDs {
		charset.WriteByte(byte(sid >> 8))
		charset.WriteByte(byte(sid))
	}

	var encoding bytes.Buffer
	encoding.WriteByte(0)
	encoding.WriteByte(byte(len(codes)))
	encoding.Write(codes)

	// The Top DICT references the other structures by absolute offset, and
	// its own encoded size shifts those offsets. Iterate until the layout
	// is stable; the size can only grow, so a handful of passes suffice.
	var topDict []byte
	offsets := topDictOffsets{}
	for pass := 0; pass < 5; pass++ {
		topDict = encodeTopDict(font, offsets, private.Len())
		topDictIndex := encodeIndex([][]byte{topDict})

		base := len(header) + len(nameIndex) + len(topDictIndex) +
			len(stringIndex) + len(globalSubrIndex)
		next := topDictOffsets{
			charset:     base,
			encoding:    base + charset.Len(),
			charStrings: base + charset.Len() + encoding.Len(),
			private:     base + charset.Len() + encoding.Len() + len(charStringsIndex),
		}
		if next == offsets {
			break
		}
		offsets = next
	}

	var out bytes.Buffer
	out.Write(header)
	out.Write(nameIndex)
	out.Write(encodeIndex([][]byte{topDict}))
	out.Write(stringIndex)
	out.Write(globalSubrIndex)
	out.Write(charset.Bytes())
	out.Write(encoding.Bytes())
	out.Write(charStringsIndex)
	out.Write(private.Bytes())
	return out.Bytes(), nil
}

// topDictOffsets are the absolute offsets the Top DICT points at.
type topDictOffsets struct {
	charset     int
	encoding    int
	charStrings int
	private     int
}

func encodeTopDict(font *Font, offsets topDictOffsets, privateSize int) []byte {
	var d bytes.Buffer
	for _, v := range font.FontBBox {
		writeDictNumber(&d, v)
	}
	writeDictOp(&d, cffOpFontBBox)
	for _, v := range font.FontMatrix {
		writeDictNumber(&d, v)
	}
	writeDictOp(&d, cffOpFontMatrix)
	writeDictNumber(&d, float64(offsets.charset))
	writeDictOp(&d, cffOpCharset)
	writeDictNumber(&d, float64(offsets.encoding))
	writeDictOp(&d, cffOpEncoding)
	writeDictNumber(&d, float64(offsets.charStrings))
	writeDictOp(&d, cffOpCharStrings)
	writeDictNumber(&d, float64(privateSize))
	writeDictNumber(&d, float64(offsets.private))
	writeDictOp(&d, cffOpPrivate)
	return d.Bytes()
}

// widthDefaults picks defaultWidthX as the most frequent advance and
// nominalWidthX as the mean truncated to an integer, so that most width operands stay in
// the short encodings.
func widthDefaults(glyphs []ConvertedGlyph) (float64, float64) {
	if len(glyphs) == 0 {
		return 0, 0
	}
	freq := make(map[float64]int)
	sum := 0.0
	for _, g := range glyphs {
		freq[g.Width]++
		sum += g.Width
	}
	var def float64
	best := -1
	widths := make([]float64, 0, len(freq))
	for w := range freq {
		widths = append(widths, w)
	}
	sort.Float64s(widths)
	for _, w := range widths {
		if freq[w] > best {
			best = freq[w]
			def = w
		}
	}
	nominal := float64(int(sum / float64(len(glyphs))))
	return def, nominal
}

// encodingCodes returns the format 0 encoding payload: the character code
// of each glyph after .notdef.
func encodingCodes(font *Font, glyphs []ConvertedGlyph) []byte {
	nameToCode := make(map[string]byte)
	if font.Encoding != nil {
		for code, name := range font.Encoding {
			if _, ok := nameToCode[name]; !ok {
				nameToCode[name] = code
			}
		}
	}
	codes := make([]byte, 0, len(glyphs)-1)
	for _, glyph := range glyphs[1:] {
		codes = append(codes, nameToCode[glyph.Name])
	}
	return codes
}

// stringTable assigns SIDs to glyph names, reusing the CFF standard strings
// where possible.
type stringTable struct {
	custom [][]byte
	sids   map[string]int
}

func newStringTable() *stringTable {
	return &stringTable{sids: make(map[string]int)}
}

func (st *stringTable) sid(s string) int {
	if sid, ok := cff.StandardStringSID(s); ok {
		return sid
	}
	if sid, ok := st.sids[s]; ok {
		return sid
	}
	sid := nStdStrings + len(st.custom)
	st.custom = append(st.custom, []byte(s))
	st.sids[s] = sid
	return sid
}

// encodeIndex serializes a CFF INDEX.
func encodeIndex(items [][]byte) []byte {
	var out bytes.Buffer
	count := len(items)
	out.WriteByte(byte(count >> 8))
	out.WriteByte(byte(count))
	if count == 0 {
		return out.Bytes()
	}

	total := 0
	for _, item := range items {
		total += len(item)
	}
	offSize := 1
	switch {
	case total+1 > 0xffffff:
		offSize = 4
	case total+1 > 0xffff:
		offSize = 3
	case total+1 > 0xff:
		offSize = 2
	}
	out.WriteByte(byte(offSize))

	writeOffset := func(off int) {
		for i := offSize - 1; i >= 0; i-- {
			out.WriteByte(byte(off >> uint(8*i)))
		}
	}
	off := 1
	writeOffset(off)
	for _, item := range items {
		off += len(item)
		writeOffset(off)
	}
	for _, item := range items {
		out.Write(item)
	}
	return out.Bytes()
}

// writeDictOp encodes a DICT operator, including the 12 x escape forms.
func writeDictOp(buf *bytes.Buffer, op int) {
	if op > 0xff {
		buf.WriteByte(12)
		buf.WriteByte(byte(op & 0xff))
		return
	}
	buf.WriteByte(byte(op))
}

// writeDictNumber encodes a DICT operand. Integers use the compact integer
// encodings; the 16.16 form of charstrings does not exist in DICTs, so
// non-integral values use the nibble real encoding.
func writeDictNumber(buf *bytes.Buffer, v float64) {
	i := int(v)
	if float64(i) == v {
		switch {
		case i >= -107 && i <= 107:
			buf.WriteByte(byte(i + 139))
		case i >= 108 && i <= 1131:
			i -= 108
			buf.WriteByte(byte(i/256 + 247))
			buf.WriteByte(byte(i % 256))
		case i <= -108 && i >= -1131:
			i = -i - 108
			buf.WriteByte(byte(i/256 + 251))
			buf.WriteByte(byte(i % 256))
		case i >= -32768 && i <= 32767:
			buf.WriteByte(28)
			buf.WriteByte(byte(i >> 8))
			buf.WriteByte(byte(i))
		default:
			buf.WriteByte(29)
			buf.WriteByte(byte(i >> 24))
			buf.WriteByte(byte(i >> 16))
			buf.WriteByte(byte(i >> 8))
			buf.WriteByte(byte(i))
		}
		return
	}
	writeDictReal(buf, v)
}

// writeDictReal encodes a real DICT operand using the opcode 30 nibble
// stream.
func writeDictReal(buf *bytes.Buffer, v float64) {
	s := formatReal(v)
	buf.WriteByte(30)
	var nibbles []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			nibbles = append(nibbles, c-'0')
		case c == '.':
			nibbles = append(nibbles, 0xa)
		case c == '-':
			nibbles = append(nibbles, 0xe)
		case c == 'E' || c == 'e':
			if i+1 < len(s) && s[i+1] == '-' {
				nibbles = append(nibbles, 0xc)
				i++
			} else {
				nibbles = append(nibbles, 0xb)
			}
		default:
			common.Log.Debug("ERROR: unexpected real char %c", c)
		}
	}
	nibbles = append(nibbles, 0xf)
	if len(nibbles)%2 == 1 {
		nibbles = append(nibbles, 0xf)
	}
	for i := 0; i < len(nibbles); i += 2 {
		buf.WriteByte(nibbles[i]<<4 | nibbles[i+1])
	}
}
