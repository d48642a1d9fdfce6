/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package icc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:], v)
}

func putS15F16(b []byte, off int, v float64) {
	binary.BigEndian.PutUint32(b[off:], uint32(int32(v*65536)))
}

// buildGrayProfile constructs a minimal v2 GRAY profile with a wtpt tag
// and a gamma kTRC.
func buildGrayProfile(gamma float64) []byte {
	tags := 2
	size := headerSize + 4 + tags*12 + 20 + 14
	b := make([]byte, size+2)

	putU32(b, 0, uint32(len(b)))
	putU32(b, 8, 0x02400000) // version 2.4
	putU32(b, 12, 0x6d6e7472) // 'mntr'
	putU32(b, 16, sigGray)
	putU32(b, 20, sigXYZ)
	putU32(b, 36, sigAcsp)
	putS15F16(b, 68, 0.9642)
	putS15F16(b, 72, 1.0)
	putS15F16(b, 76, 0.8249)

	putU32(b, headerSize, uint32(tags))

	wtptOff := headerSize + 4 + tags*12
	ktrcOff := wtptOff + 20

	dir := headerSize + 4
	putU32(b, dir, tagWtpt)
	putU32(b, dir+4, uint32(wtptOff))
	putU32(b, dir+8, 20)
	putU32(b, dir+12, tagKTRC)
	putU32(b, dir+16, uint32(ktrcOff))
	putU32(b, dir+20, 14)

	putU32(b, wtptOff, typeXYZ)
	putS15F16(b, wtptOff+8, 0.9642)
	putS15F16(b, wtptOff+12, 1.0)
	putS15F16(b, wtptOff+16, 0.8249)

	putU32(b, ktrcOff, typeCurv)
	putU32(b, ktrcOff+8, 1)
	binary.BigEndian.PutUint16(b[ktrcOff+12:], uint16(gamma*256))
	return b
}

func TestParseGrayProfile(t *testing.T) {
	profile, err := Parse(buildGrayProfile(2.2))
	require.NoError(t, err)

	assert.Equal(t, 2, profile.Header.MajorVersion())
	assert.Equal(t, uint32(sigGray), profile.Header.ColorSpace)
	assert.Equal(t, 1, profile.Channels())
	assert.InDelta(t, 0.9642, profile.WhitePoint[0], 1e-4)
	require.NotNil(t, profile.TRC[0])
	assert.InDelta(t, 0.5*0.5, float64(profile.TRC[0].Eval(0.5)), 0.1)
}

func TestParseRejectsICCMax(t *testing.T) {
	data := buildGrayProfile(1.0)
	putU32(data, 8, 0x05000000)
	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse(make([]byte, 64))
	assert.Error(t, err)
}

func TestTagBoundsChecked(t *testing.T) {
	data := buildGrayProfile(1.0)
	// Push the kTRC tag offset out of bounds; the profile still parses
	// but the curve entry degrades to nil.
	dir := headerSize + 4
	putU32(data, dir+16, uint32(len(data)+100))
	profile, err := Parse(data)
	require.NoError(t, err)
	assert.Nil(t, profile.TRC[0])
}

func TestGrayTransform(t *testing.T) {
	profile, err := Parse(buildGrayProfile(1.0))
	require.NoError(t, err)

	tr, err := NewTransformer(profile, Perceptual)
	require.NoError(t, err)

	r, g, b := tr.ToSRGB([]float32{0})
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	r, g, b = tr.ToSRGB([]float32{1})
	assert.InDelta(t, 255, int(r), 1)
	assert.InDelta(t, 255, int(g), 1)
	assert.InDelta(t, 255, int(b), 1)
}

func TestParametricCurves(t *testing.T) {
	// Type 0: pure gamma.
	c := ParametricCurve(0, []float32{2})
	assert.InDelta(t, 0.25, float64(c.Eval(0.5)), 1e-6)

	// Type 3: sRGB style piecewise; below the knee the curve is linear.
	c = ParametricCurve(3, []float32{2.4, 1 / 1.055, 0.055 / 1.055, 1 / 12.92, 0.04045})
	assert.InDelta(t, float64(c.Eval(0.02)), 0.02/12.92, 1e-4)
	assert.InDelta(t, float64(c.Eval(1)), 1, 1e-4)
}

func TestSampledCurveResampling(t *testing.T) {
	c := SampledCurve([]float32{0, 0.25, 0.5, 0.75, 1})
	require.Equal(t, curveSampled, c.kind)
	assert.Len(t, c.samples, resampledCurveLen)
	assert.InDelta(t, 0, float64(c.Eval(0)), 1e-6)
	assert.InDelta(t, 1, float64(c.Eval(1)), 1e-6)
	assert.InDelta(t, 0.5, float64(c.Eval(0.5)), 0.01)
}

func TestCurveEdgeForms(t *testing.T) {
	assert.Equal(t, curveIdentity, SampledCurve(nil).kind)
	assert.Equal(t, curveGamma, SampledCurve([]float32{1.8}).kind)
	assert.InDelta(t, 0.5, float64(IdentityCurve().Eval(0.5)), 1e-9)
}

// The sRGB OETF of linear 0.5 is 188.
func TestSRGBEncode(t *testing.T) {
	assert.InDelta(t, 188, int(SRGBEncode(0.5)), 1)
	assert.Equal(t, uint8(0), SRGBEncode(0))
	assert.Equal(t, uint8(255), SRGBEncode(1))
}

// A shaper-matrix profile with sRGB primaries and curves maps (0.5, 0.5,
// 0.5) to (188, 188, 188), matching direct sRGB gamma encoding.
func TestShaperMatrixSRGB(t *testing.T) {
	srgbEOTF := ParametricCurve(3, []float32{2.4, 1 / 1.055, 0.055 / 1.055, 1 / 12.92, 0.04045})
	profile := &Profile{
		WhitePoint: illuminantD50,
		TRC:        [3]*Curve{srgbEOTF, srgbEOTF, srgbEOTF},
		// sRGB primaries adapted to D50, column per channel.
		MatrixRGB: [3][3]float64{
			{0.4360, 0.3851, 0.1431},
			{0.2225, 0.7169, 0.0606},
			{0.0139, 0.0971, 0.7139},
		},
		HasMatrix: true,
	}
	profile.Header.ColorSpace = sigRGB
	profile.Header.PCS = sigXYZ
	profile.Header.Illuminant = illuminantD50

	tr, err := NewTransformer(profile, RelativeColorimetric)
	require.NoError(t, err)

	r, g, b := tr.ToSRGB([]float32{0.5, 0.5, 0.5})
	assert.InDelta(t, 188, int(r), 2)
	assert.InDelta(t, 188, int(g), 2)
	assert.InDelta(t, 188, int(b), 2)

	r, g, b = tr.ToSRGB([]float32{0, 0, 0})
	assert.InDelta(t, 0, int(r), 1)
	r, g, b = tr.ToSRGB([]float32{1, 1, 1})
	assert.InDelta(t, 255, int(r), 1)
	assert.InDelta(t, 255, int(g), 1)
	assert.InDelta(t, 255, int(b), 1)
}

func TestBradfordIdentity(t *testing.T) {
	m := bradfordAdaptation(illuminantD65, illuminantD65)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, m[i][j], 1e-6)
		}
	}
}

func TestCLUTInterpolation(t *testing.T) {
	// An identity 2-point 3D CLUT.
	lut := &LutPipeline{
		InputChannels:  3,
		OutputChannels: 3,
		GridPoints:     []int{2, 2, 2},
	}
	lut.CLUT = make([]float32, 8*3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				off := ((i*2+j)*2 + k) * 3
				lut.CLUT[off] = float32(i)
				lut.CLUT[off+1] = float32(j)
				lut.CLUT[off+2] = float32(k)
			}
		}
	}

	out := lut.Evaluate([]float32{0.25, 0.5, 0.75})
	assert.InDelta(t, 0.25, float64(out[0]), 1e-6)
	assert.InDelta(t, 0.5, float64(out[1]), 1e-6)
	assert.InDelta(t, 0.75, float64(out[2]), 1e-6)
}

func TestDecodeMft2(t *testing.T) {
	// lut16 with 1 input, 1 output, 2 grid points, 2-entry tables.
	in, out, grid := 1, 1, 2
	data := make([]byte, 52+2*2+grid*2+2*2)
	putU32(data, 0, typeMft2)
	data[8] = byte(in)
	data[9] = byte(out)
	data[10] = byte(grid)
	// Identity matrix.
	putS15F16(data, 12, 1)
	putS15F16(data, 28, 1)
	putS15F16(data, 44, 1)
	binary.BigEndian.PutUint16(data[48:], 2) // input table entries
	binary.BigEndian.PutUint16(data[50:], 2) // output table entries
	pos := 52
	for _, v := range []uint16{0, 0xffff} { // input curve: identity
		binary.BigEndian.PutUint16(data[pos:], v)
		pos += 2
	}
	for _, v := range []uint16{0, 0xffff} { // CLUT: identity
		binary.BigEndian.PutUint16(data[pos:], v)
		pos += 2
	}
	for _, v := range []uint16{0, 0xffff} { // output curve: identity
		binary.BigEndian.PutUint16(data[pos:], v)
		pos += 2
	}

	lut, err := decodeLut(data)
	require.NoError(t, err)
	assert.Equal(t, 1, lut.InputChannels)
	assert.Equal(t, []int{2}, lut.GridPoints)

	res := lut.Evaluate([]float32{0.5})
	assert.InDelta(t, 0.5, float64(res[0]), 0.01)
}
