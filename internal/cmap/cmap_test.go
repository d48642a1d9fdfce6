/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cmap1Data = `
/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (Japan1) /Supplement 1 >> def
/CMapName /Test-H def
/CMapType 1 def
/WMode 0 def
4 begincodespacerange
<00> <80>
<8140> <9ffc>
<a0> <de>
<e040> <fbec>
endcodespacerange
1 begincidrange
<8140> <817e> 633
endcidrange
2 begincidchar
<20> 1
<e2> 0
endcidchar
endcmap
CMapName currentdict /CMap defineresource pop
end
end
`

func TestCMapParse(t *testing.T) {
	cmap, err := LoadCmapFromData([]byte(cmap1Data), nil)
	require.NoError(t, err)

	assert.Equal(t, "Test-H", cmap.Name())
	assert.Equal(t, 1, cmap.Type())
	assert.Equal(t, 0, cmap.WMode())
	assert.Equal(t, "Adobe-Japan1-001", cmap.SystemInfo().String())
	assert.True(t, cmap.HasCodespaces())
	assert.Len(t, cmap.Codespaces(), 4)
}

// For all codes c within a begincidrange start end first entry,
// cmap(c) = first + (c - start).
func TestCIDRangeArithmetic(t *testing.T) {
	cmap, err := LoadCmapFromData([]byte(cmap1Data), nil)
	require.NoError(t, err)

	start := CharCode(0x8140)
	for c := start; c <= 0x817e; c++ {
		cid, ok := cmap.CIDForCode(CharacterCode{Val: c, NumBytes: 2})
		require.True(t, ok, "code 0x%04x", c)
		assert.Equal(t, CID(633)+CID(c-start), cid)
	}

	// Direct cidchar entries take priority over range lookup.
	cid, ok := cmap.CIDForCode(CharacterCode{Val: 0x20, NumBytes: 1})
	require.True(t, ok)
	assert.Equal(t, CID(1), cid)

	// Unmapped codes report no mapping.
	_, ok = cmap.CIDForCode(CharacterCode{Val: 0x40, NumBytes: 1})
	assert.False(t, ok)
}

// Concatenating the bytes of extracted codes reconstructs the input, and
// code lengths follow the longest matching codespace.
func TestBytesToCharcodesReconstruction(t *testing.T) {
	cmap, err := LoadCmapFromData([]byte(cmap1Data), nil)
	require.NoError(t, err)

	data := []byte{0x20, 0x81, 0x40, 0xa5, 0xe0, 0x45, 0x7f}
	codes, matched := cmap.BytesToCharcodes(data)
	require.True(t, matched)

	var lengths []int
	var rebuilt []byte
	for _, code := range codes {
		lengths = append(lengths, code.NumBytes)
		rebuilt = append(rebuilt, code.Bytes()...)
	}
	assert.Equal(t, []int{1, 2, 1, 2, 1}, lengths)
	assert.True(t, bytes.Equal(data, rebuilt))
}

func TestBytesToCharcodesFixedTwoByte(t *testing.T) {
	cmap := newCMap()

	codes, matched := cmap.BytesToCharcodes([]byte{0x00, 0x41, 0x30, 0x42})
	require.True(t, matched)
	require.Len(t, codes, 2)
	assert.Equal(t, CharCode(0x0041), codes[0].Val)
	assert.Equal(t, CharCode(0x3042), codes[1].Val)
	assert.Equal(t, 2, codes[0].NumBytes)
}

func TestIdentityCMap(t *testing.T) {
	cmap := NewIdentityCMap("Identity-V")
	assert.Equal(t, 1, cmap.WMode())

	cid, ok := cmap.CIDForCode(CharacterCode{Val: 0x1234, NumBytes: 2})
	require.True(t, ok)
	assert.Equal(t, CID(0x1234), cid)
}

const toUnicodeData = `
/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
<0000> <ffff>
endcodespacerange
1 beginbfrange
<0000> <0002> <0041>
endbfrange
2 beginbfchar
<0005> <0066006c>
<0006> <2603>
endbfchar
endcmap
end
end
`

// beginbfrange <0000> <0002> <0041> yields {0: "A", 1: "B", 2: "C"}.
func TestBfrangeIncrement(t *testing.T) {
	cmap, err := LoadCmapFromData([]byte(toUnicodeData), nil)
	require.NoError(t, err)

	expected := map[CharCode]string{0: "A", 1: "B", 2: "C"}
	for code, want := range expected {
		s, ok := cmap.UnicodeForCode(code)
		require.True(t, ok, "code %d", code)
		assert.Equal(t, want, s)
	}
}

func TestBfchar(t *testing.T) {
	cmap, err := LoadCmapFromData([]byte(toUnicodeData), nil)
	require.NoError(t, err)

	s, ok := cmap.UnicodeForCode(0x0005)
	require.True(t, ok)
	assert.Equal(t, "fl", s)

	s, ok = cmap.UnicodeForCode(0x0006)
	require.True(t, ok)
	assert.Equal(t, "☃", s)
}

func TestBfrangeArrayForm(t *testing.T) {
	data := `
1 begincodespacerange
<00> <ff>
endcodespacerange
1 beginbfrange
<41> <43> [<0058> <0059> <005a>]
endbfrange
`
	cmap, err := LoadCmapFromData([]byte(data), nil)
	require.NoError(t, err)

	for i, want := range []string{"X", "Y", "Z"} {
		s, ok := cmap.UnicodeForCode(CharCode(0x41 + i))
		require.True(t, ok)
		assert.Equal(t, want, s)
	}
}

func TestUseCMapChaining(t *testing.T) {
	parent := `
1 begincodespacerange
<0000> <ffff>
endcodespacerange
1 begincidrange
<0000> <00ff> 100
endcidrange
`
	child := `
/Parent-H usecmap
1 begincodespacerange
<0000> <ffff>
endcodespacerange
1 begincidchar
<0001> 9000
endcidchar
`
	loader := func(name string, depth int) (*CMap, error) {
		require.Equal(t, "Parent-H", name)
		require.Equal(t, 1, depth)
		return LoadCmapFromDataDepth([]byte(parent), nil, depth)
	}
	cmap, err := LoadCmapFromData([]byte(child), loader)
	require.NoError(t, err)

	// Local entries win, parent entries fill the rest.
	cid, ok := cmap.CIDForCode(CharacterCode{Val: 1, NumBytes: 2})
	require.True(t, ok)
	assert.Equal(t, CID(9000), cid)

	cid, ok = cmap.CIDForCode(CharacterCode{Val: 2, NumBytes: 2})
	require.True(t, ok)
	assert.Equal(t, CID(102), cid)
}

// A cyclic usecmap chain terminates with ErrCMapDepth instead of
// recursing without bound.
func TestUseCMapCycleRejected(t *testing.T) {
	cycleA := `
/Cycle-B usecmap
1 begincodespacerange
<0000> <ffff>
endcodespacerange
`
	cycleB := `
/Cycle-A usecmap
1 begincodespacerange
<0000> <ffff>
endcodespacerange
`
	var loader ParentLoader
	loader = func(name string, depth int) (*CMap, error) {
		data := cycleA
		if name == "Cycle-B" {
			data = cycleB
		}
		return LoadCmapFromDataDepth([]byte(data), loader, depth)
	}

	_, err := LoadCmapFromData([]byte(cycleA), loader)
	assert.ErrorIs(t, err, ErrCMapDepth)
}

// A chain within the depth bound loads; one that goes past it is rejected.
func TestUseCMapDepthBound(t *testing.T) {
	leaf := `
1 begincodespacerange
<0000> <ffff>
endcodespacerange
1 begincidchar
<0001> 77
endcidchar
`
	link := `
/Next usecmap
1 begincodespacerange
<0000> <ffff>
endcodespacerange
`
	makeLoader := func(links int) ParentLoader {
		var loader ParentLoader
		loader = func(name string, depth int) (*CMap, error) {
			if links == 0 {
				return LoadCmapFromDataDepth([]byte(leaf), nil, depth)
			}
			links--
			return LoadCmapFromDataDepth([]byte(link), loader, depth)
		}
		return loader
	}

	cm, err := LoadCmapFromData([]byte(link), makeLoader(maxUseCMapDepth-2))
	require.NoError(t, err)
	cid, ok := cm.CIDForCode(CharacterCode{Val: 1, NumBytes: 2})
	require.True(t, ok)
	assert.Equal(t, CID(77), cid)

	_, err = LoadCmapFromData([]byte(link), makeLoader(maxUseCMapDepth+2))
	assert.ErrorIs(t, err, ErrCMapDepth)
}

func TestCharacterCodeBytes(t *testing.T) {
	code := CharacterCode{Val: 0x8140, NumBytes: 2}
	assert.Equal(t, []byte{0x81, 0x40}, code.Bytes())
	assert.Equal(t, "<8140>", code.String())
}
