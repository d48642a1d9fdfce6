/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpdf/pixelpdf/core"
	"github.com/pixelpdf/pixelpdf/internal/cmap"
)

// makeIdentityType0Dict builds the composite font of the Identity-H
// scenario: W: [1 [500 500]], DW: 1000, CIDToGIDMap: Identity.
func makeIdentityType0Dict(t *testing.T, extra func(cid *core.PdfObjectDictionary)) core.PdfObject {
	t.Helper()

	info := core.MakeDict()
	info.Set("Registry", core.MakeString("Adobe"))
	info.Set("Ordering", core.MakeString("Identity"))
	info.Set("Supplement", core.MakeInteger(0))

	cid := core.MakeDict()
	cid.Set("Type", core.MakeName("Font"))
	cid.Set("Subtype", core.MakeName("CIDFontType0"))
	cid.Set("BaseFont", core.MakeName("TestCID"))
	cid.Set("CIDSystemInfo", info)
	cid.Set("CIDToGIDMap", core.MakeName("Identity"))
	cid.Set("W", core.MakeArray(
		core.MakeInteger(1),
		core.MakeArray(core.MakeInteger(500), core.MakeInteger(500)),
	))
	cid.Set("DW", core.MakeInteger(1000))
	if extra != nil {
		extra(cid)
	}

	d := core.MakeDict()
	d.Set("Type", core.MakeName("Font"))
	d.Set("Subtype", core.MakeName("Type0"))
	d.Set("BaseFont", core.MakeName("TestCID"))
	d.Set("Encoding", core.MakeName("Identity-H"))
	d.Set("DescendantFonts", core.MakeArray(cid))
	return d
}

func code2(v uint32) cmap.CharacterCode {
	return cmap.CharacterCode{Val: cmap.CharCode(v), NumBytes: 2}
}

func TestIdentityType0Font(t *testing.T) {
	font, err := NewPdfFontFromPdfObject(makeIdentityType0Dict(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "Type0:CIDFontType0", font.Subtype())
	assert.True(t, font.IsCID())
	assert.Equal(t, 0, font.WritingMode())

	// W: [1 [500 500]] with DW 1000, in user-space units.
	assert.Equal(t, 0.500, font.WidthForCode(code2(0x0001)))
	assert.Equal(t, 0.500, font.WidthForCode(code2(0x0002)))
	assert.Equal(t, 1.000, font.WidthForCode(code2(0x0003)))

	// Identity code -> CID -> GID.
	assert.Equal(t, uint16(0x0042), font.GIDForCode(code2(0x0042)))
}

func TestIdentityType0ExtractCodes(t *testing.T) {
	font, err := NewPdfFontFromPdfObject(makeIdentityType0Dict(t, nil))
	require.NoError(t, err)

	data := []byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}
	codes := font.ExtractCodes(data)
	require.Len(t, codes, 3)

	var rebuilt []byte
	for _, code := range codes {
		assert.Equal(t, 2, code.NumBytes)
		rebuilt = append(rebuilt, code.Bytes()...)
	}
	assert.Equal(t, data, rebuilt)
}

// DW2: [880 -1000], W2: [5 5 -900 500 700].
func TestVerticalMetrics(t *testing.T) {
	d := makeIdentityType0Dict(t, func(cid *core.PdfObjectDictionary) {
		cid.Set("DW2", core.MakeArray(core.MakeInteger(880), core.MakeInteger(-1000)))
		cid.Set("W2", core.MakeArray(
			core.MakeInteger(5), core.MakeInteger(5),
			core.MakeInteger(-900), core.MakeInteger(500), core.MakeInteger(700),
		))
	})
	font, err := NewPdfFontFromPdfObject(d)
	require.NoError(t, err)

	m, ok := font.VerticalMetricsForCode(code2(5))
	require.True(t, ok)
	assert.InDelta(t, -0.900, m.W1Y, 1e-9)
	assert.InDelta(t, 0.500, m.V1X, 1e-9)
	assert.InDelta(t, 0.700, m.V1Y, 1e-9)

	m, ok = font.VerticalMetricsForCode(code2(9))
	require.True(t, ok)
	assert.InDelta(t, -1.000, m.W1Y, 1e-9)
	assert.InDelta(t, 0.880, m.V1Y, 1e-9)
	assert.InDelta(t, 0, m.V1X, 1e-9)
}

func TestWidthsArrayForms(t *testing.T) {
	w := core.MakeArray(
		// Form 1: 1 [500 600]
		core.MakeInteger(1),
		core.MakeArray(core.MakeInteger(500), core.MakeInteger(600)),
		// Form 2: 10 12 250
		core.MakeInteger(10), core.MakeInteger(12), core.MakeInteger(250),
	)
	widths, err := parseCIDFontWidthsArray(w)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, widths[1], 1e-9)
	assert.InDelta(t, 0.6, widths[2], 1e-9)
	for cid := cmap.CID(10); cid <= 12; cid++ {
		assert.InDelta(t, 0.25, widths[cid], 1e-9)
	}
	assert.NotContains(t, widths, cmap.CID(3))
}

func TestSimpleFontWidths(t *testing.T) {
	d := core.MakeDict()
	d.Set("Type", core.MakeName("Font"))
	d.Set("Subtype", core.MakeName("TrueType"))
	d.Set("BaseFont", core.MakeName("NoSuchFamily-XYZQW"))
	d.Set("FirstChar", core.MakeInteger(65))
	d.Set("LastChar", core.MakeInteger(67))
	d.Set("Widths", core.MakeArray(
		core.MakeInteger(500), core.MakeInteger(600), core.MakeInteger(700),
	))
	d.Set("Encoding", core.MakeName("WinAnsiEncoding"))

	font, err := NewPdfFontFromPdfObject(d)
	require.NoError(t, err)

	// One code per byte for simple fonts.
	codes := font.ExtractCodes([]byte("ABC"))
	require.Len(t, codes, 3)
	for _, code := range codes {
		assert.Equal(t, 1, code.NumBytes)
	}

	assert.InDelta(t, 0.5, font.WidthForCode(codes[0]), 1e-9)
	assert.InDelta(t, 0.6, font.WidthForCode(codes[1]), 1e-9)
	assert.InDelta(t, 0.7, font.WidthForCode(codes[2]), 1e-9)

	// Out of range without MissingWidth and without a usable program
	// resolves to 0.
	outside := cmap.CharacterCode{Val: 0x10, NumBytes: 1}
	assert.Equal(t, 0.0, font.WidthForCode(outside))

	// Unicode through the encoding.
	s, ok := font.UnicodeForCode(codes[0])
	require.True(t, ok)
	assert.Equal(t, "A", s)
}

func TestFontMissingRequired(t *testing.T) {
	d := core.MakeDict()
	d.Set("Type", core.MakeName("Font"))
	_, err := NewPdfFontFromPdfObject(d)
	assert.ErrorIs(t, err, ErrRequiredAttributeMissing)

	_, err = NewPdfFontFromPdfObject(core.MakeArray())
	assert.Error(t, err)
}

func TestDocumentFontCache(t *testing.T) {
	doc := NewDocument()
	obj := core.MakeIndirectObject(makeIdentityType0Dict(t, nil))
	obj.ObjectNumber = 12

	font1, err := doc.FontForObject(obj)
	require.NoError(t, err)
	font2, err := doc.FontForObject(obj)
	require.NoError(t, err)
	assert.Same(t, font1, font2)
}

func TestToUnicodeCMapPriority(t *testing.T) {
	toUnicode := `
1 begincodespacerange
<0000> <ffff>
endcodespacerange
1 beginbfchar
<0001> <0058>
endbfchar
`
	stream := core.MakeStream([]byte(toUnicode), nil)

	d, ok := core.GetDict(makeIdentityType0Dict(t, nil))
	require.True(t, ok)
	d.Set("ToUnicode", stream)

	font, err := NewPdfFontFromPdfObject(d)
	require.NoError(t, err)

	s, ok := font.UnicodeForCode(code2(1))
	require.True(t, ok)
	assert.Equal(t, "X", s)

	_, ok = font.UnicodeForCode(code2(2))
	assert.False(t, ok)
}
