/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package jpeg

// AAN butterfly constants of the scaled 8-point IDCT, with
// ck = cos(k*pi/16).
const (
	aanC2 = 1.414213562 // sqrt(2)
	aanC4 = 1.847759065 // 2*c2
	aanC6 = 1.082392200 // 2*(c2-c6)
	aanC8 = 2.613125930 // 2*(c2+c6), used in odd part
)

// idct performs the separable AAN inverse DCT in place. The block must
// already be dequantized with the premultiplied table; output samples are
// level-shifted by 128 and clamped to [0, 255] by the caller's converter.
func (b *Block8x8F) idct() {
	// Columns.
	for col := 0; col < 8; col++ {
		s0 := b.at(0, col)
		s1 := b.at(1, col)
		s2 := b.at(2, col)
		s3 := b.at(3, col)
		s4 := b.at(4, col)
		s5 := b.at(5, col)
		s6 := b.at(6, col)
		s7 := b.at(7, col)

		// Even part.
		tmp10 := s0 + s4
		tmp11 := s0 - s4
		tmp13 := s2 + s6
		tmp12 := (s2-s6)*aanC2 - tmp13

		tmp0 := tmp10 + tmp13
		tmp3 := tmp10 - tmp13
		tmp1 := tmp11 + tmp12
		tmp2 := tmp11 - tmp12

		// Odd part.
		z13 := s5 + s3
		z10 := s5 - s3
		z11 := s1 + s7
		z12 := s1 - s7

		tmp7 := z11 + z13
		tmp111 := (z11 - z13) * aanC2

		z5 := (z10 + z12) * aanC4
		tmp101 := aanC6*z12 - z5
		tmp121 := z5 - aanC8*z10

		tmp6 := tmp121 - tmp7
		tmp5 := tmp111 - tmp6
		tmp4 := tmp101 + tmp5

		b.set(0, col, tmp0+tmp7)
		b.set(7, col, tmp0-tmp7)
		b.set(1, col, tmp1+tmp6)
		b.set(6, col, tmp1-tmp6)
		b.set(2, col, tmp2+tmp5)
		b.set(5, col, tmp2-tmp5)
		b.set(4, col, tmp3+tmp4)
		b.set(3, col, tmp3-tmp4)
	}

	// Rows: the two vec4 lanes of each row are processed as one 8-wide
	// butterfly.
	for row := 0; row < 8; row++ {
		s0 := b.at(row, 0)
		s1 := b.at(row, 1)
		s2 := b.at(row, 2)
		s3 := b.at(row, 3)
		s4 := b.at(row, 4)
		s5 := b.at(row, 5)
		s6 := b.at(row, 6)
		s7 := b.at(row, 7)

		tmp10 := s0 + s4
		tmp11 := s0 - s4
		tmp13 := s2 + s6
		tmp12 := (s2-s6)*aanC2 - tmp13

		tmp0 := tmp10 + tmp13
		tmp3 := tmp10 - tmp13
		tmp1 := tmp11 + tmp12
		tmp2 := tmp11 - tmp12

		z13 := s5 + s3
		z10 := s5 - s3
		z11 := s1 + s7
		z12 := s1 - s7

		tmp7 := z11 + z13
		tmp111 := (z11 - z13) * aanC2

		z5 := (z10 + z12) * aanC4
		tmp101 := aanC6*z12 - z5
		tmp121 := z5 - aanC8*z10

		tmp6 := tmp121 - tmp7
		tmp5 := tmp111 - tmp6
		tmp4 := tmp101 + tmp5

		b.set(row, 0, tmp0+tmp7)
		b.set(row, 7, tmp0-tmp7)
		b.set(row, 1, tmp1+tmp6)
		b.set(row, 6, tmp1-tmp6)
		b.set(row, 2, tmp2+tmp5)
		b.set(row, 5, tmp2-tmp5)
		b.set(row, 4, tmp3+tmp4)
		b.set(row, 3, tmp3-tmp4)
	}
}

// samples writes the block into `dst` as level-shifted, clamped 8-bit
// samples, one row every `stride` bytes.
func (b *Block8x8F) samples(dst []byte, stride int) {
	for row := 0; row < 8; row++ {
		base := row * stride
		for col := 0; col < 8; col++ {
			v := b.at(row, col) + 128
			switch {
			case v < 0:
				v = 0
			case v > 255:
				v = 255
			}
			dst[base+col] = byte(v + 0.5)
		}
	}
}
