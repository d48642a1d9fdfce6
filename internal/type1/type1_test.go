/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package type1

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpdf/pixelpdf/internal/cff"
)

// encrypt is the inverse of decrypt, used to build test fixtures.
func encrypt(plain []byte, seed uint16, prefix int) []byte {
	r := seed
	data := make([]byte, 0, len(plain)+prefix)
	src := append(make([]byte, prefix), plain...)
	for _, p := range src {
		c := p ^ byte(r>>8)
		r = (uint16(c)+r)*cipherC1 + cipherC2
		data = append(data, c)
	}
	return data
}

func TestDecryptRoundTrip(t *testing.T) {
	plain := []byte("dup 5 /charstring data RD binary ND")

	enc := encrypt(plain, eexecSeed, eexecRandomBytes)
	assert.Equal(t, plain, decryptEexec(enc))

	enc = encrypt(plain, charstringSeed, 4)
	assert.Equal(t, plain, decryptCharstring(enc, 4))

	// lenIV -1 marks unencrypted charstrings.
	assert.Equal(t, plain, decryptCharstring(plain, -1))
}

// n encodes a Type1/Type2 integer in the single and double byte forms.
func n(v int) []byte {
	if v >= -107 && v <= 107 {
		return []byte{byte(v + 139)}
	}
	if v >= 108 && v <= 1131 {
		v -= 108
		return []byte{byte(247 + v/256), byte(v % 256)}
	}
	panic("test operand out of range")
}

func cs(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// A charstring beginning 0 500 hsbw 100 100 rmoveto converts to Type2
// starting 0 hmoveto 100 100 rmoveto with no Type1-only operator left.
func TestHsbwTranslation(t *testing.T) {
	font := &Font{
		FontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0},
		CharStrings: map[string][]byte{
			".notdef": cs(n(0), n(0), []byte{t1Hsbw, t1Endchar}),
			"A": cs(
				n(0), n(500), []byte{t1Hsbw},
				n(100), n(100), []byte{t1Rmoveto},
				n(50), []byte{t1Hlineto},
				[]byte{t1Closepath, t1Endchar},
			),
		},
		glyphOrder: []string{".notdef", "A"},
	}

	glyph, err := font.convertGlyph("A")
	require.NoError(t, err)
	assert.Equal(t, 500.0, glyph.Width)

	want := cs(
		n(0), []byte{t2Hmoveto},
		n(100), n(100), []byte{t2Rmoveto},
		n(50), []byte{t2Hlineto},
		[]byte{t2Endchar},
	)
	assert.Equal(t, want, glyph.CharString)
}

// forbiddenOps scans a Type2 charstring for operators the converter must
// never emit.
func forbiddenOps(t *testing.T, charstring []byte) {
	t.Helper()
	for i := 0; i < len(charstring); {
		b0 := int(charstring[i])
		switch {
		case b0 == 28:
			i += 3
		case b0 == 255:
			i += 5
		case b0 >= 32 && b0 <= 246:
			i++
		case b0 >= 247 && b0 <= 254:
			i += 2
		case b0 == 12:
			b1 := int(charstring[i+1])
			assert.NotContains(t, []int{t1EscOtherSub, t1EscSbw, t1EscSeac}, b1,
				"forbidden escape operator %d", b1)
			i += 2
		default:
			assert.NotContains(t, []int{t1Hstem, t1Vstem, t1Callsubr, t1Hsbw, t1Closepath},
				b0, "forbidden operator %d", b0)
			i++
		}
	}
}

func TestConversionStripsType1Operators(t *testing.T) {
	subr := cs(n(10), n(20), []byte{t1Rlineto, t1Return})
	font := &Font{
		Subrs: [][]byte{subr},
		CharStrings: map[string][]byte{
			".notdef": cs(n(0), n(0), []byte{t1Hsbw, t1Endchar}),
			"B": cs(
				n(25), n(600), []byte{t1Hsbw},
				n(1), n(2), n(3), n(4), []byte{t1Hstem, t1Vstem},
				n(5), n(5), []byte{t1Rmoveto},
				n(0), []byte{t1Callsubr},
				[]byte{t1Closepath, t1Endchar},
			),
		},
		glyphOrder: []string{".notdef", "B"},
	}

	glyph, err := font.convertGlyph("B")
	require.NoError(t, err)
	assert.Equal(t, 600.0, glyph.Width)
	forbiddenOps(t, glyph.CharString)

	// The inlined subroutine body must be present.
	want := cs(
		n(25), []byte{t2Hmoveto},
		n(5), n(5), []byte{t2Rmoveto},
		n(10), n(20), []byte{t2Rlineto},
		[]byte{t2Endchar},
	)
	assert.Equal(t, want, glyph.CharString)
}

func TestSeacComposition(t *testing.T) {
	// Base 'A' at code 65, accent 'acute' at code 194 in
	// StandardEncoding.
	font := &Font{
		CharStrings: map[string][]byte{
			".notdef": cs(n(0), n(0), []byte{t1Hsbw, t1Endchar}),
			"A": cs(
				n(10), n(600), []byte{t1Hsbw},
				n(5), n(0), []byte{t1Rmoveto},
				n(50), []byte{t1Hlineto},
				[]byte{t1Endchar},
			),
			"acute": cs(
				n(20), n(300), []byte{t1Hsbw},
				n(5), n(700), []byte{t1Rmoveto},
				n(30), []byte{t1Hlineto},
				[]byte{t1Endchar},
			),
			"Aacute": cs(
				n(10), n(600), []byte{t1Hsbw},
				n(20), n(150), n(250), n(65), n(194), []byte{12, t1EscSeac},
			),
		},
		glyphOrder: []string{".notdef", "A", "acute", "Aacute"},
	}

	glyph, err := font.convertGlyph("Aacute")
	require.NoError(t, err)
	forbiddenOps(t, glyph.CharString)
	assert.Equal(t, 600.0, glyph.Width)

	// Both component bodies appear: the base line and the accent line,
	// and exactly one endchar terminates the composition.
	assert.Contains(t, string(glyph.CharString), string(cs(n(5), n(0), []byte{t2Rmoveto}, n(50), []byte{t2Hlineto})))
	assert.Contains(t, string(glyph.CharString), string(cs(n(30), []byte{t2Hlineto})))
	assert.Equal(t, byte(t2Endchar), glyph.CharString[len(glyph.CharString)-1])
	assert.Equal(t, 1, countOps(glyph.CharString, t2Endchar))
}

// countOps counts occurrences of a one byte operator in a charstring.
func countOps(charstring []byte, op int) int {
	count := 0
	for i := 0; i < len(charstring); {
		b0 := int(charstring[i])
		switch {
		case b0 == 28:
			i += 3
		case b0 == 255:
			i += 5
		case b0 >= 32 && b0 <= 246:
			i++
		case b0 >= 247 && b0 <= 254:
			i += 2
		case b0 == 12:
			i += 2
		default:
			if b0 == op {
				count++
			}
			i++
		}
	}
	return count
}

func TestFlexTranslation(t *testing.T) {
	// Flex: othersubr 1 begins collection, seven rmoveto deltas follow,
	// othersubr 0 terminates and the end point comes back through pops.
	var parts [][]byte
	parts = append(parts, n(0), n(400), []byte{t1Hsbw})
	parts = append(parts, n(0), n(1), []byte{12, t1EscOtherSub}) // 0 args, subr 1
	deltas := [][2]int{{10, 0}, {10, 10}, {10, 10}, {10, -10}, {10, 10}, {10, 10}, {10, -10}}
	for _, d := range deltas {
		parts = append(parts, n(d[0]), n(d[1]), []byte{t1Rmoveto})
		parts = append(parts, n(0), n(2), []byte{12, t1EscOtherSub})
	}
	parts = append(parts, n(50), n(70), n(0), n(3), n(0), []byte{12, t1EscOtherSub}) // flex height + end point, 3 args, subr 0
	parts = append(parts, []byte{12, t1EscPop, 12, t1EscPop, 12, t1EscSetCurPt})
	parts = append(parts, []byte{t1Endchar})

	font := &Font{
		CharStrings: map[string][]byte{
			".notdef": cs(n(0), n(0), []byte{t1Hsbw, t1Endchar}),
			"S":       cs(parts...),
		},
		glyphOrder: []string{".notdef", "S"},
	}

	glyph, err := font.convertGlyph("S")
	require.NoError(t, err)
	forbiddenOps(t, glyph.CharString)

	// One rrcurveto with 12 operands: the folded reference point plus six
	// curve deltas.
	want := cs(
		n(0), []byte{t2Hmoveto},
		n(20), n(10), n(10), n(10), n(10), n(-10),
		n(10), n(10), n(10), n(10), n(10), n(-10),
		[]byte{t2Rrcurveto},
		[]byte{t2Endchar},
	)
	assert.Equal(t, want, glyph.CharString)
}

func TestBuildCFFRoundTrip(t *testing.T) {
	font := &Font{
		FontName:   "TestFont",
		FontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0},
		FontBBox:   [4]float64{0, -200, 1000, 800},
		Encoding:   map[byte]string{65: "A", 66: "B"},
		CharStrings: map[string][]byte{
			".notdef": cs(n(0), n(0), []byte{t1Hsbw, t1Endchar}),
			"A": cs(
				n(0), n(500), []byte{t1Hsbw},
				n(100), n(100), []byte{t1Rmoveto},
				n(50), []byte{t1Hlineto},
				[]byte{t1Endchar},
			),
			"B": cs(n(0), n(500), []byte{t1Hsbw, t1Endchar}),
		},
		glyphOrder: []string{".notdef", "A", "B"},
	}

	glyphs := font.ConvertGlyphs()
	require.Len(t, glyphs, 3)

	cffData, err := BuildCFF(font, glyphs)
	require.NoError(t, err)

	parsed, err := cff.Parse(cffData)
	require.NoError(t, err)
	assert.Equal(t, "TestFont", parsed.Name)
	assert.Equal(t, 3, parsed.GlyphCount())

	gid, ok := parsed.GIDForName("A")
	require.True(t, ok)
	assert.Equal(t, uint16(1), gid)

	name, ok := parsed.GlyphName(2)
	require.True(t, ok)
	assert.Equal(t, "B", name)

	// The built-in encoding maps the Type1 encoding vector.
	gid, ok = parsed.GIDForCode(65)
	require.True(t, ok)
	assert.Equal(t, uint16(1), gid)

	// Widths round-trip through the metric extractor.
	metrics, ok := parsed.GlyphMetrics(1)
	require.True(t, ok)
	assert.Equal(t, 500.0, metrics.Advance)
}

func TestToOpenType(t *testing.T) {
	font := &Font{
		FontName:   "TestFont",
		FontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0},
		FontBBox:   [4]float64{0, -200, 1000, 800},
		Encoding:   map[byte]string{65: "A"},
		CharStrings: map[string][]byte{
			".notdef": cs(n(0), n(0), []byte{t1Hsbw, t1Endchar}),
			"A": cs(
				n(0), n(500), []byte{t1Hsbw},
				n(100), n(100), []byte{t1Rmoveto},
				[]byte{t1Endchar},
			),
		},
		glyphOrder: []string{".notdef", "A"},
	}

	data, err := font.ToOpenType()
	require.NoError(t, err)
	require.True(t, len(data) > 12)

	// OTTO container with the expected tables.
	assert.Equal(t, "OTTO", string(data[:4]))
	numTables := int(data[4])<<8 | int(data[5])
	assert.Equal(t, 9, numTables)

	var tags []string
	for i := 0; i < numTables; i++ {
		tags = append(tags, string(data[12+i*16:12+i*16+4]))
	}
	for _, tag := range []string{"CFF ", "cmap", "head", "hhea", "hmtx", "maxp", "name", "post", "OS/2"} {
		assert.Contains(t, tags, tag)
	}
}

func TestParseProgram(t *testing.T) {
	clear := []byte(`%!PS-AdobeFont-1.0: TestFont 001.001
/FontName /TestFont def
/FontMatrix [0.001 0 0 0.001 0 0] readonly def
/FontBBox {0 -200 1000 800} readonly def
/Encoding 256 array
0 1 255 {1 index exch /.notdef put} for
dup 65 /A put
readonly def
currentfile eexec
`)

	charstring := cs(n(0), n(500), []byte{t1Hsbw, t1Endchar})
	encCS := encrypt(charstring, charstringSeed, 4)

	var private []byte
	private = append(private, []byte("dup /Private 8 dict dup begin\n/lenIV 4 def\n")...)
	private = append(private, []byte("/Subrs 0 array ND\n")...)
	private = append(private, []byte("/CharStrings 2 dict dup begin\n")...)
	private = append(private, []byte(fmt.Sprintf("/.notdef %d RD ", len(encCS)))...)
	private = append(private, encCS...)
	private = append(private, []byte(fmt.Sprintf(" ND\n/A %d RD ", len(encCS)))...)
	private = append(private, encCS...)
	private = append(private, []byte(" ND\nend\nend\n")...)

	font, err := Parse(clear, encrypt(private, eexecSeed, eexecRandomBytes))
	require.NoError(t, err)

	assert.Equal(t, "TestFont", font.FontName)
	assert.Equal(t, [4]float64{0, -200, 1000, 800}, font.FontBBox)
	assert.Equal(t, "A", font.Encoding[65])
	require.Contains(t, font.CharStrings, "A")
	assert.Equal(t, charstring, font.CharStrings["A"])
}
