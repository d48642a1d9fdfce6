/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package type1 parses Type 1 font programs embedded in PDF files and
// converts them to CFF wrapped in an OpenType container, the form modern
// text rasterizers consume.
//
// The conversion pipeline is: eexec decryption, PostScript dictionary
// extraction, Type1 to Type2 charstring conversion, CFF assembly and SFNT
// wrapping.
package type1

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/pixelpdf/pixelpdf/common"
)

var (
	errTruncated = errors.New("type1: truncated data")
	errMalformed = errors.New("type1: malformed font program")
)

// Font is a parsed Type 1 font program with decrypted charstrings.
type Font struct {
	// FontName from the clear text header.
	FontName string

	// FontMatrix maps glyph space to text space. Defaults to
	// [0.001 0 0 0.001 0 0].
	FontMatrix [6]float64

	// FontBBox from the clear text header.
	FontBBox [4]float64

	// Encoding maps character codes to glyph names. Nil when the font uses
	// StandardEncoding.
	Encoding map[byte]string

	// UsesStandardEncoding is set when the /Encoding entry references the
	// StandardEncoding literal.
	UsesStandardEncoding bool

	lenIV int

	// Subrs holds the decrypted local subroutines.
	Subrs [][]byte

	// CharStrings maps glyph names to decrypted Type1 charstrings.
	CharStrings map[string][]byte

	// glyphOrder preserves the order charstrings appear in the program.
	glyphOrder []string
}

// Parse reads a Type 1 font program split into the clear text segment and
// the eexec encrypted segment, per the Length1/Length2 stream dictionary
// entries.
func Parse(segment1, segment2 []byte) (*Font, error) {
	font := &Font{
		FontMatrix:  [6]float64{0.001, 0, 0, 0.001, 0, 0},
		lenIV:       defaultLenIV,
		CharStrings: make(map[string][]byte),
	}

	if err := font.parseClearSegment(segment1); err != nil {
		return nil, err
	}
	if len(segment2) == 0 {
		common.Log.Debug("ERROR: Type1 font without encrypted segment")
		return nil, errTruncated
	}
	decrypted := decryptEexec(segment2)
	if decrypted == nil {
		common.Log.Debug("ERROR: Type1 eexec decryption failed")
		return nil, errMalformed
	}
	if err := font.parseEexecSegment(decrypted); err != nil {
		return nil, err
	}
	if len(font.CharStrings) == 0 {
		common.Log.Debug("ERROR: Type1 font without charstrings")
		return nil, errMalformed
	}
	return font, nil
}

// GlyphNames returns the glyph names of the font, .notdef first, otherwise
// in program order.
func (font *Font) GlyphNames() []string {
	names := make([]string, 0, len(font.glyphOrder))
	names = append(names, ".notdef")
	for _, name := range font.glyphOrder {
		if name != ".notdef" {
			names = append(names, name)
		}
	}
	return names
}

var (
	reFontName   = regexp.MustCompile(`/FontName\s*/(\S+)\s+def`)
	reFontMatrix = regexp.MustCompile(`/FontMatrix\s*\[([^\]]+)\]`)
	reFontBBox   = regexp.MustCompile(`/FontBBox\s*\{?\[?([^\]\}]+)[\]\}]`)
	reStdEnc     = regexp.MustCompile(`/Encoding\s+StandardEncoding\s+def`)
	reEncEntry   = regexp.MustCompile(`dup\s+(\d+)\s*/([^\s/]+)\s+put`)
)

// parseClearSegment extracts the font dictionary entries of the clear text
// header: FontName, FontMatrix, FontBBox and the Encoding vector.
func (font *Font) parseClearSegment(data []byte) error {
	if len(data) < 2 || string(data[:2]) != "%!" {
		common.Log.Debug("ERROR: Type1 clear segment does not start with %%!")
		return errMalformed
	}
	text := string(data)

	if m := reFontName.FindStringSubmatch(text); m != nil {
		font.FontName = m[1]
	}
	if m := reFontMatrix.FindStringSubmatch(text); m != nil {
		if vals := parseFloats(m[1]); len(vals) == 6 {
			copy(font.FontMatrix[:], vals)
		}
	}
	if m := reFontBBox.FindStringSubmatch(text); m != nil {
		if vals := parseFloats(m[1]); len(vals) == 4 {
			copy(font.FontBBox[:], vals)
		}
	}

	if reStdEnc.MatchString(text) {
		font.UsesStandardEncoding = true
		return nil
	}
	entries := reEncEntry.FindAllStringSubmatch(text, -1)
	if len(entries) > 0 {
		font.Encoding = make(map[byte]string, len(entries))
		for _, m := range entries {
			code, err := strconv.Atoi(m[1])
			if err != nil || code > 0xff {
				continue
			}
			font.Encoding[byte(code)] = m[2]
		}
	}
	return nil
}

func parseFloats(s string) []float64 {
	var vals []float64
	for _, f := range strings.Fields(s) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		vals = append(vals, v)
	}
	return vals
}

// parseEexecSegment interprets just enough of the decrypted private area to
// collect lenIV, the Subrs array and the CharStrings dictionary. Unknown
// operators are skipped without aborting.
func (font *Font) parseEexecSegment(data []byte) error {
	lex := &lexer{data: data}
	for {
		tok, ok := lex.next()
		if !ok {
			break
		}
		switch tok {
		case "/lenIV":
			if v, ok := lex.nextInt(); ok {
				font.lenIV = v
			}
		case "/Subrs":
			if err := font.parseSubrs(lex); err != nil {
				return err
			}
		case "/CharStrings":
			if err := font.parseCharStrings(lex); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseSubrs reads the /Subrs N array ... structure. Each entry has the
// form: dup <index> <length> RD <binary> NP
func (font *Font) parseSubrs(lex *lexer) error {
	count, ok := lex.nextInt()
	if !ok {
		return errMalformed
	}
	font.Subrs = make([][]byte, count)
	for i := 0; i < count; {
		tok, ok := lex.next()
		if !ok {
			return errTruncated
		}
		if tok != "dup" {
			// Tolerate stray tokens such as "array" or comments.
			if tok == "ND" || tok == "|-" || tok == "noaccess" || tok == "def" {
				break
			}
			continue
		}
		idx, ok := lex.nextInt()
		if !ok {
			return errMalformed
		}
		length, ok := lex.nextInt()
		if !ok {
			return errMalformed
		}
		if _, ok := lex.next(); !ok { // RD or -|
			return errTruncated
		}
		bin, ok := lex.readBinary(length)
		if !ok {
			return errTruncated
		}
		if idx >= 0 && idx < count {
			font.Subrs[idx] = decryptCharstring(bin, font.lenIV)
		}
		i++
	}
	return nil
}

// parseCharStrings reads the /CharStrings N dict ... structure. Each entry
// has the form: /<name> <length> RD <binary> ND
func (font *Font) parseCharStrings(lex *lexer) error {
	count, ok := lex.nextInt()
	if !ok {
		return errMalformed
	}
	for len(font.CharStrings) < count {
		tok, ok := lex.next()
		if !ok {
			break
		}
		if tok == "end" {
			break
		}
		if !strings.HasPrefix(tok, "/") || len(tok) < 2 {
			continue
		}
		name := tok[1:]
		length, ok := lex.nextInt()
		if !ok {
			continue
		}
		if _, ok := lex.next(); !ok { // RD or -|
			return errTruncated
		}
		bin, ok := lex.readBinary(length)
		if !ok {
			return errTruncated
		}
		if _, exists := font.CharStrings[name]; !exists {
			font.glyphOrder = append(font.glyphOrder, name)
		}
		font.CharStrings[name] = decryptCharstring(bin, font.lenIV)
	}
	return nil
}

// lexer is a minimal PostScript token scanner for the decrypted private
// area. It splits on white space and treats binary payloads explicitly via
// readBinary.
type lexer struct {
	data []byte
	pos  int
}

func isPSSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == 0
}

// next returns the next white space separated token.
func (lex *lexer) next() (string, bool) {
	for lex.pos < len(lex.data) && isPSSpace(lex.data[lex.pos]) {
		lex.pos++
	}
	if lex.pos >= len(lex.data) {
		return "", false
	}
	if lex.data[lex.pos] == '%' {
		// Comment to end of line.
		for lex.pos < len(lex.data) && lex.data[lex.pos] != '\n' && lex.data[lex.pos] != '\r' {
			lex.pos++
		}
		return lex.next()
	}
	start := lex.pos
	for lex.pos < len(lex.data) && !isPSSpace(lex.data[lex.pos]) {
		lex.pos++
	}
	return string(lex.data[start:lex.pos]), true
}

// nextInt returns the next token parsed as an integer.
func (lex *lexer) nextInt() (int, bool) {
	tok, ok := lex.next()
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return v, true
}

// readBinary consumes the single space following an RD operator and returns
// the next `n` raw bytes.
func (lex *lexer) readBinary(n int) ([]byte, bool) {
	if lex.pos < len(lex.data) && isPSSpace(lex.data[lex.pos]) {
		lex.pos++
	}
	if n < 0 || lex.pos+n > len(lex.data) {
		return nil, false
	}
	b := lex.data[lex.pos : lex.pos+n]
	lex.pos += n
	return b, true
}
