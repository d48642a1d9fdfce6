/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package jpeg

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// natural_to_zigzag[zigzag_to_natural[i]] == i for all i.
func TestZigzagRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		assert.Equal(t, i, naturalToZigzag[zigzagToNatural[i]])
	}
}

func TestBlockAccess(t *testing.T) {
	var b Block8x8F
	b.set(3, 5, 42)
	assert.Equal(t, float32(42), b.at(3, 5))
	b.setIdx(3*8+5, 7)
	assert.Equal(t, float32(7), b.at(3, 5))
}

// TestHuffmanCanonicalRoundTrip rebuilds the canonical code of every symbol, encodes it
// into a bitstream and decodes it back.
func TestHuffmanCanonicalRoundTrip(t *testing.T) {
	var bits [16]int
	bits[1] = 2 // two 2-bit codes
	bits[2] = 2 // two 3-bit codes
	values := []byte{7, 3, 11, 5}

	table, err := buildHuffTable(bits, values)
	require.NoError(t, err)

	// Canonical codes: 00, 01, 100, 101.
	type coded struct {
		code, length int
	}
	codes := []coded{{0, 2}, {1, 2}, {4, 3}, {5, 3}}

	var stream bytes.Buffer
	var acc, count int
	for _, c := range codes {
		for i := c.length - 1; i >= 0; i-- {
			acc = acc<<1 | (c.code>>uint(i))&1
			count++
			if count == 8 {
				stream.WriteByte(byte(acc))
				acc, count = 0, 0
			}
		}
	}
	if count > 0 {
		stream.WriteByte(byte(acc << uint(8-count)))
	}

	r := newBitReader(stream.Bytes(), 0)
	for i, want := range values {
		v, ok := table.decode(&r)
		require.True(t, ok, "symbol %d", i)
		assert.Equal(t, want, v)
	}
}

func TestHuffmanCountMismatch(t *testing.T) {
	var bits [16]int
	bits[0] = 2
	_, err := buildHuffTable(bits, []byte{1})
	assert.Error(t, err)
}

func TestBitReaderStuffing(t *testing.T) {
	// 0xFF 0x00 is a stuffed literal 0xFF; 0xFF 0xD9 is a marker.
	r := newBitReader([]byte{0xff, 0x00, 0xff, 0xd9}, 0)
	v, ok := r.readBits(8)
	require.True(t, ok)
	assert.Equal(t, 0xff, v)
	_, ok = r.readBit()
	assert.False(t, ok)
	assert.True(t, r.atMarker)
}

// readSigned applies the JPEG magnitude extension.
func TestReadSigned(t *testing.T) {
	cases := []struct {
		bits  []byte
		n     int
		want  int32
	}{
		{[]byte{0b10000000}, 1, 1},
		{[]byte{0b00000000}, 1, -1},
		{[]byte{0b11000000}, 2, 3},
		{[]byte{0b00000000}, 2, -3},
		{[]byte{0b01000000}, 2, -2},
		{[]byte{0b10100000}, 3, 5},
	}
	for _, c := range cases {
		r := newBitReader(c.bits, 0)
		v, ok := r.readSigned(c.n)
		require.True(t, ok)
		assert.Equal(t, c.want, v)
	}
}

func TestIDCTConstantBlock(t *testing.T) {
	// A DC-only block IDCTs to a constant plane.
	var b Block8x8F
	b.setIdx(0, 64) // after dequant scaling, yields samples of 64
	b.idct()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			assert.InDelta(t, 64, float64(b.at(row, col)), 0.01)
		}
	}
}

// TestIDCTAgainstReference checks the AAN fast path against the direct
// IDCT-III definition on a fixed coefficient block.
func TestIDCTAgainstReference(t *testing.T) {
	coeffs := make([]float64, 64)
	for i := range coeffs {
		coeffs[i] = float64((i*37)%101 - 50)
	}

	// Reference: separable direct IDCT.
	ref := make([]float64, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sum := 0.0
			for v := 0; v < 8; v++ {
				for u := 0; u < 8; u++ {
					cu, cv := 1.0, 1.0
					if u == 0 {
						cu = math.Sqrt2 / 2
					}
					if v == 0 {
						cv = math.Sqrt2 / 2
					}
					sum += cu * cv / 4 * coeffs[v*8+u] *
						math.Cos(float64(2*x+1)*float64(u)*math.Pi/16) *
						math.Cos(float64(2*y+1)*float64(v)*math.Pi/16)
				}
			}
			ref[y*8+x] = sum
		}
	}

	var raw [64]uint16
	for i := range raw {
		raw[i] = 1
	}
	dequant := makeDequantTable(&raw)

	var b Block8x8F
	for zz := 0; zz < 64; zz++ {
		n := zigzagToNatural[zz]
		b.setIdx(n, float32(coeffs[n])*dequant[n])
	}
	b.idct()

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.InDelta(t, ref[y*8+x], float64(b.at(y, x)), 0.01,
				"y=%d x=%d", y, x)
		}
	}
}

// buildGray8x8 constructs a minimal baseline JFIF: one 8x8 grayscale
// component, identity quantization, all-zero coefficients. The decoded
// image is uniform 128 gray.
func buildGray8x8() []byte {
	var out bytes.Buffer
	out.Write([]byte{0xff, 0xd8}) // SOI

	// DQT: identity table.
	out.Write([]byte{0xff, 0xdb, 0x00, 0x43, 0x00})
	for i := 0; i < 64; i++ {
		out.WriteByte(1)
	}

	// SOF0: 8 bit, 8x8, one component, 1x1 sampling, quant table 0.
	out.Write([]byte{0xff, 0xc0, 0x00, 0x0b, 0x08, 0x00, 0x08, 0x00, 0x08, 0x01, 0x01, 0x11, 0x00})

	// DHT: DC table 0 and AC table 0, each a single 1-bit code for
	// symbol 0.
	out.Write([]byte{0xff, 0xc4, 0x00, 0x26})
	out.WriteByte(0x00) // DC, id 0
	out.Write([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	out.WriteByte(0x00)
	out.WriteByte(0x10) // AC, id 0
	out.Write([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	out.WriteByte(0x00)

	// SOS.
	out.Write([]byte{0xff, 0xda, 0x00, 0x08, 0x01, 0x01, 0x00, 0x00, 0x3f, 0x00})

	// Entropy data: DC code 0 (diff category 0), AC code 0 (EOB), padded.
	out.WriteByte(0x00)

	out.Write([]byte{0xff, 0xd9}) // EOI
	return out.Bytes()
}

func TestBaselineGray8x8(t *testing.T) {
	d := NewDecoder(buildGray8x8())
	require.NoError(t, d.Err())

	assert.Equal(t, 8, d.Width())
	assert.Equal(t, 8, d.Height())
	assert.Equal(t, 1, d.Components())
	assert.Equal(t, 1, d.OutputComponents())
	assert.Equal(t, ColorGray, d.ColorSpace())
	require.NoError(t, d.Err())

	row := make([]byte, 8)
	for y := 0; y < 8; y++ {
		assert.Equal(t, y, d.CurrentRow())
		require.True(t, d.TryReadRow(row), "row %d", y)
		for x := 0; x < 8; x++ {
			assert.Equal(t, byte(128), row[x], "row %d col %d", y, x)
		}
	}
	assert.Equal(t, 8, d.CurrentRow())
	assert.False(t, d.TryReadRow(row))
	assert.Equal(t, 8, d.CurrentRow())
}

func TestDecodeAll(t *testing.T) {
	d := NewDecoder(buildGray8x8())
	out, err := d.DecodeAll()
	require.NoError(t, err)
	require.Len(t, out, 64)
	for _, v := range out {
		assert.Equal(t, byte(128), v)
	}
}

func TestUnsupportedArithmetic(t *testing.T) {
	data := buildGray8x8()
	// Rewrite SOF0 to SOF9 (arithmetic sequential).
	idx := bytes.Index(data, []byte{0xff, 0xc0})
	require.True(t, idx >= 0)
	data[idx+1] = 0xc9

	d := NewDecoder(data)
	assert.False(t, d.TryReadRow(make([]byte, 8)))
	assert.ErrorIs(t, d.Err(), errUnsupported)
}

func TestMissingQuantTable(t *testing.T) {
	data := buildGray8x8()
	// Point the component at an undefined quantization table.
	idx := bytes.Index(data, []byte{0xff, 0xc0})
	require.True(t, idx >= 0)
	data[idx+12] = 0x03

	d := NewDecoder(data)
	assert.False(t, d.TryReadRow(make([]byte, 8)))
	assert.ErrorIs(t, d.Err(), errMissing)
}

func TestTruncatedStream(t *testing.T) {
	data := buildGray8x8()
	d := NewDecoder(data[:20])
	assert.False(t, d.TryReadRow(make([]byte, 8)))
	assert.Error(t, d.Err())
}

func TestYCbCrConversion(t *testing.T) {
	r, g, b := ycbcrToRGB(128, 128, 128)
	assert.Equal(t, [3]byte{128, 128, 128}, [3]byte{r, g, b})

	r, g, b = ycbcrToRGB(255, 128, 128)
	assert.Equal(t, [3]byte{255, 255, 255}, [3]byte{r, g, b})

	// Pure red: Y=76, Cb=85, Cr=255.
	r, g, b = ycbcrToRGB(76, 85, 255)
	assert.InDelta(t, 254, int(r), 2)
	assert.InDelta(t, 0, int(g), 2)
	assert.InDelta(t, 0, int(b), 2)
}

func TestUpsample2x2(t *testing.T) {
	src := make([]byte, 8*8)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, 16*16)
	upsample2x2(dst, src, 8, 16, 16)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			assert.Equal(t, src[(y/2)*8+x/2], dst[y*16+x], "y=%d x=%d", y, x)
		}
	}
}

func TestUpsampleGeneric(t *testing.T) {
	src := make([]byte, 8*8)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, 24*8)
	upsampleGeneric(dst, src, 8, 24, 8, 3, 1)
	for x := 0; x < 24; x++ {
		assert.Equal(t, src[x/3], dst[x])
	}
}

func TestDequantTableAANScaling(t *testing.T) {
	var raw [64]uint16
	for i := range raw {
		raw[i] = 1
	}
	table := makeDequantTable(&raw)
	// The DC entry scales by 1/8.
	assert.InDelta(t, 0.125, float64(table[0]), 1e-6)
}
