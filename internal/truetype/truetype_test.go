/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package truetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpdf/pixelpdf/internal/type1"
)

// buildContainer produces an OTTO container through the Type1 wrapper; the
// reader side only cares about the SFNT tables.
func buildContainer(t *testing.T) []byte {
	t.Helper()
	info := type1.OpenTypeInfo{
		FontName:   "Wrapped",
		UnitsPerEm: 1000,
		BBox:       [4]float64{0, -200, 1000, 800},
		Widths:     []float64{0, 500, 600},
		RuneToGID:  map[rune]uint16{'A': 1, 'B': 2},
	}
	data, err := type1.WrapOpenType([]byte{1, 0, 4, 4}, info)
	require.NoError(t, err)
	return data
}

func TestParseContainer(t *testing.T) {
	font, err := Parse(buildContainer(t))
	require.NoError(t, err)

	assert.Equal(t, 1000, font.UnitsPerEm)
	assert.Equal(t, 3, font.NumGlyphs)

	gid, ok := font.Chars['A']
	require.True(t, ok)
	assert.Equal(t, uint16(1), gid)
	gid, ok = font.Chars['B']
	require.True(t, ok)
	assert.Equal(t, uint16(2), gid)
	_, ok = font.Chars['C']
	assert.False(t, ok)

	w, ok := font.GlyphAdvance(1)
	require.True(t, ok)
	assert.Equal(t, uint16(500), w)
	w, ok = font.GlyphAdvance(2)
	require.True(t, ok)
	assert.Equal(t, uint16(600), w)
	_, ok = font.GlyphAdvance(9)
	assert.False(t, ok)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("this is not a font"))
	assert.Error(t, err)

	_, err = Parse(nil)
	assert.Error(t, err)
}
