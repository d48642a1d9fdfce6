/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseEncodings(t *testing.T) {
	cases := []struct {
		baseName string
		code     CharCode
		want     rune
	}{
		{"StandardEncoding", 0x41, 'A'},
		{"StandardEncoding", 0x20, ' '},
		{"StandardEncoding", 0xe1, 'Æ'},
		{"WinAnsiEncoding", 0x41, 'A'},
		{"WinAnsiEncoding", 0xe9, 'é'},
		{"MacRomanEncoding", 0x41, 'A'},
		{"MacRomanEncoding", 0x8e, 'é'},
		{"SymbolEncoding", 0x61, 'α'},
	}
	for _, c := range cases {
		enc, err := NewSimpleTextEncoder(c.baseName, nil)
		require.NoError(t, err, c.baseName)
		r, ok := enc.CharcodeToRune(c.code)
		require.True(t, ok, "%s code 0x%02x", c.baseName, c.code)
		assert.Equal(t, c.want, r, "%s code 0x%02x", c.baseName, c.code)
	}
}

// Encoding vector round-trip: the rune of every mapped code encodes back
// to a code carrying the same rune.
func TestEncodingRoundTrip(t *testing.T) {
	for _, baseName := range []string{
		"StandardEncoding", "MacRomanEncoding", "WinAnsiEncoding", "MacExpertEncoding",
	} {
		enc, err := NewSimpleTextEncoder(baseName, nil)
		require.NoError(t, err)
		for _, code := range enc.Charcodes() {
			r, ok := enc.CharcodeToRune(code)
			require.True(t, ok, "%s 0x%02x", baseName, code)
			code2, ok := enc.RuneToCharcode(r)
			require.True(t, ok, "%s %q", baseName, r)
			r2, ok := enc.CharcodeToRune(code2)
			require.True(t, ok)
			assert.Equal(t, r, r2, "%s 0x%02x", baseName, code)
		}
	}
}

// The dingbat glyph names are not part of the Adobe glyph list; the
// encoding still addresses glyphs by name for GID resolution.
func TestZapfDingbatsGlyphNames(t *testing.T) {
	enc, err := NewSimpleTextEncoder("ZapfDingbatsEncoding", nil)
	require.NoError(t, err)
	glyph, ok := enc.CharcodeToGlyph(0x61)
	require.True(t, ok)
	assert.Equal(t, GlyphName("a60"), glyph)
}

func TestUnknownEncodingName(t *testing.T) {
	_, err := NewSimpleTextEncoder("NotAnEncoding", nil)
	assert.Error(t, err)
}

func TestDifferences(t *testing.T) {
	base, err := NewSimpleTextEncoder("WinAnsiEncoding", nil)
	require.NoError(t, err)

	enc := ApplyDifferences(base, map[CharCode]GlyphName{
		0x41: "alpha",
		0x42: notdef,
	})

	r, ok := enc.CharcodeToRune(0x41)
	require.True(t, ok)
	assert.Equal(t, 'α', r)

	// A .notdef difference clears the code.
	_, ok = enc.CharcodeToRune(0x42)
	assert.False(t, ok)

	// Codes outside the differences pass through.
	r, ok = enc.CharcodeToRune(0x43)
	require.True(t, ok)
	assert.Equal(t, 'C', r)

	glyph, ok := enc.CharcodeToGlyph(0x41)
	require.True(t, ok)
	assert.Equal(t, GlyphName("alpha"), glyph)
}

func TestGlyphToRune(t *testing.T) {
	cases := []struct {
		glyph GlyphName
		want  rune
	}{
		{"A", 'A'},
		{"ampersand", '&'},
		{"Aacute", 'Á'},
		{"ffi", 'ﬃ'},
		{"uni0041", 'A'},
		{"uniFB03", 'ﬃ'},
		{"C211", rune(211)},
	}
	for _, c := range cases {
		r, ok := GlyphToRune(c.glyph)
		require.True(t, ok, "%q", c.glyph)
		assert.Equal(t, c.want, r, "%q", c.glyph)
	}

	_, ok := GlyphToRune("definitelyNotAGlyph")
	assert.False(t, ok)
}

func TestRuneToGlyph(t *testing.T) {
	glyph, ok := RuneToGlyph('&')
	require.True(t, ok)
	assert.Equal(t, GlyphName("ampersand"), glyph)
}

func TestCustomEncoder(t *testing.T) {
	enc, err := NewCustomSimpleTextEncoder(map[CharCode]GlyphName{
		1: "A",
		2: "B",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "AB", enc.Decode([]byte{1, 2}))
	assert.Equal(t, []byte{1, 2}, enc.Encode("AB"))
}

func TestIdentityEncoder(t *testing.T) {
	enc := NewIdentityTextEncoder("Identity-H")
	code, ok := enc.RuneToCharcode('あ')
	require.True(t, ok)
	assert.Equal(t, CharCode(0x3042), code)
	assert.Equal(t, "あ", enc.Decode([]byte{0x30, 0x42}))
}
