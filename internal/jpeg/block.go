/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package jpeg

import (
	"github.com/chewxy/math32"
)

// vec4 is a 4-wide float32 lane. Block8x8F keeps its 64 coefficients as 16
// such lanes so the IDCT and the color converter run straight-line over
// vectors; a row of the block is lanes 2i and 2i+1.
type vec4 [4]float32

// Block8x8F is an 8x8 coefficient or sample block in natural (row-major)
// order.
type Block8x8F [16]vec4

// at returns element (row, col).
func (b *Block8x8F) at(row, col int) float32 {
	return b[row*2+col/4][col%4]
}

// set stores element (row, col).
func (b *Block8x8F) set(row, col int, v float32) {
	b[row*2+col/4][col%4] = v
}

// setIdx stores element i of the natural order.
func (b *Block8x8F) setIdx(i int, v float32) {
	b[i/4][i%4] = v
}

// zigzagToNatural maps a zig-zag scan position to the natural (row-major)
// position, so entropy-decoded coefficients can be placed without a
// separate de-zig-zag pass.
var zigzagToNatural = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// naturalToZigzag is the inverse of zigzagToNatural.
var naturalToZigzag = func() [64]int {
	var inv [64]int
	for i, n := range zigzagToNatural {
		inv[n] = i
	}
	return inv
}()

// aanScaleFactors are the AAN IDCT prescale factors: cos(i*pi/16)*sqrt(2)
// for i > 0 and 1 for i = 0.
var aanScaleFactors = func() [8]float32 {
	var s [8]float32
	s[0] = 1
	for i := 1; i < 8; i++ {
		s[i] = math32.Cos(float32(i)*math32.Pi/16) * math32.Sqrt2
	}
	return s
}()

// dequantTable is a quantization table rearranged to natural order and
// premultiplied with the AAN scale factors, ready to multiply against
// natural-order coefficients.
type dequantTable [64]float32

// makeDequantTable builds the premultiplied table from raw zig-zag ordered
// quantizer values.
func makeDequantTable(raw *[64]uint16) *dequantTable {
	var t dequantTable
	for zz := 0; zz < 64; zz++ {
		n := zigzagToNatural[zz]
		row, col := n/8, n%8
		t[n] = float32(raw[zz]) * aanScaleFactors[row] * aanScaleFactors[col] / 8
	}
	return &t
}
