/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	// count=2, offSize=1, offsets 1,3,6, data "ab" "cde".
	data := []byte{0x00, 0x02, 0x01, 0x01, 0x03, 0x06, 'a', 'b', 'c', 'd', 'e'}
	items, next, err := parseIndex(data, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data), next)
	require.Len(t, items, 2)
	assert.Equal(t, []byte("ab"), items[0])
	assert.Equal(t, []byte("cde"), items[1])
}

func TestParseIndexEmpty(t *testing.T) {
	items, next, err := parseIndex([]byte{0x00, 0x00}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
	assert.Len(t, items, 0)
}

func TestParseIndexTruncated(t *testing.T) {
	_, _, err := parseIndex([]byte{0x00, 0x02, 0x01, 0x01}, 0)
	assert.Error(t, err)
}

func TestParseIndexBadOffsets(t *testing.T) {
	// Non-monotonic offsets.
	data := []byte{0x00, 0x02, 0x01, 0x05, 0x03, 0x06, 'a', 'b', 'c', 'd', 'e'}
	_, _, err := parseIndex(data, 0)
	assert.Error(t, err)
}

func TestParseDictIntegers(t *testing.T) {
	// 139+? encodings: 0 -> 139; 300 -> 247-series; -300 -> 251-series;
	// shortint 1000 via 28; int32 100000 via 29; then operator 17
	// (CharStrings).
	data := []byte{
		139,
		byte(247 + (300-108)/256), byte((300 - 108) % 256),
		byte(251 + (300-108)/256), byte((300 - 108) % 256),
		28, 0x03, 0xe8,
		29, 0x00, 0x01, 0x86, 0xa0,
		17,
	}
	dict, err := parseDict(data)
	require.NoError(t, err)
	operands := dict[opCharStrings]
	require.Len(t, operands, 5)
	assert.Equal(t, []float64{0, 300, -300, 1000, 100000}, operands)
}

func TestParseDictReal(t *testing.T) {
	// 0.001 encoded as nibbles 0 . 0 0 1 f -> 0x0a 0x00 0x1f after the
	// leading zero nibble: "0", ".", "0", "0", "1", end.
	data := []byte{30, 0x0a, 0x00, 0x1f, 0x0c, 0x07}
	dict, err := parseDict(data)
	require.NoError(t, err)
	operands := dict[opFontMatrix]
	require.Len(t, operands, 1)
	assert.InDelta(t, 0.001, operands[0], 1e-9)
}

func TestStandardStringSID(t *testing.T) {
	sid, ok := StandardStringSID(".notdef")
	require.True(t, ok)
	assert.Equal(t, 0, sid)

	sid, ok = StandardStringSID("A")
	require.True(t, ok)
	assert.Equal(t, 34, sid)

	_, ok = StandardStringSID("nonStandardGlyphName")
	assert.False(t, ok)
}

// num encodes a small charstring integer operand.
func num(v int) byte {
	return byte(v + 139)
}

func TestGlyphMetricsWidthOperand(t *testing.T) {
	font := &Font{
		defaultWidthX: 400,
		nominalWidthX: 250,
		charStrings: index{
			// endchar only: defaultWidthX applies.
			{14},
			// 100 endchar: width = nominal + 100.
			{num(100), 14},
			// 50 20 hmoveto: odd count, width = nominal + 50, lsb 20.
			{num(50), num(20), 22},
			// 10 20 rmoveto: even count, no width.
			{num(10), num(20), 21},
			// 30 10 20 hintmask: odd count, width = nominal + 30.
			{num(30), num(10), num(20), 19},
		},
	}

	metrics, ok := font.GlyphMetrics(0)
	require.True(t, ok)
	assert.Equal(t, 400.0, metrics.Advance)

	metrics, ok = font.GlyphMetrics(1)
	require.True(t, ok)
	assert.Equal(t, 350.0, metrics.Advance)

	metrics, ok = font.GlyphMetrics(2)
	require.True(t, ok)
	assert.Equal(t, 300.0, metrics.Advance)
	assert.Equal(t, 20.0, metrics.LeftBearing)

	metrics, ok = font.GlyphMetrics(3)
	require.True(t, ok)
	assert.Equal(t, 400.0, metrics.Advance)

	metrics, ok = font.GlyphMetrics(4)
	require.True(t, ok)
	assert.Equal(t, 280.0, metrics.Advance)

	_, ok = font.GlyphMetrics(99)
	assert.False(t, ok)
}
