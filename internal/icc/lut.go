/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package icc

import (
	"encoding/binary"
)

// LutPipeline is a decoded A to B transform: per-channel input curves, an
// N-dimensional CLUT, per-channel output curves and an optional matrix.
// For mAB tags the matrix carries an offset column and the B curves apply
// after it; for mft tags the matrix applies before the input curves (and
// only when the source space is PCSXYZ).
type LutPipeline struct {
	InputChannels  int
	OutputChannels int

	// GridPoints per input dimension.
	GridPoints []int

	InputCurves  []*Curve
	OutputCurves []*Curve

	// CLUT in input-major order, OutputChannels values per grid node.
	CLUT []float32

	// Matrix is a row-major 3x3 matrix with a trailing offset column (zero
	// for mft tags).
	Matrix    *[12]float64
	HasOffset bool

	// BCurves apply after the matrix for mAB tags.
	BCurves []*Curve
}

// decodeLut dispatches on the tag type of an A2B tag payload.
func decodeLut(data []byte) (*LutPipeline, error) {
	if len(data) < 8 {
		return nil, errTruncated
	}
	switch binary.BigEndian.Uint32(data) {
	case typeMft1:
		return decodeMft(data, 1)
	case typeMft2:
		return decodeMft(data, 2)
	case typeMAB:
		return decodeMAB(data)
	}
	return nil, errMalformed
}

// decodeMft reads the lut8 (byteWidth 1) and lut16 (byteWidth 2) layouts:
// header, 3x3 matrix, input tables, CLUT, output tables.
func decodeMft(data []byte, byteWidth int) (*LutPipeline, error) {
	if len(data) < 48 {
		return nil, errTruncated
	}
	in := int(data[8])
	out := int(data[9])
	grid := int(data[10])
	if in < 1 || in > 4 || out < 1 || out > 4 || grid < 2 {
		return nil, errMalformed
	}

	lut := &LutPipeline{
		InputChannels:  in,
		OutputChannels: out,
	}
	var matrix [12]float64
	for i := 0; i < 9; i++ {
		matrix[(i/3)*4+i%3] = s15Fixed16(data[12+4*i:])
	}
	lut.Matrix = &matrix

	pos := 48
	inTableLen := 256
	outTableLen := 256
	if byteWidth == 2 {
		if len(data) < 52 {
			return nil, errTruncated
		}
		inTableLen = int(binary.BigEndian.Uint16(data[48:]))
		outTableLen = int(binary.BigEndian.Uint16(data[50:]))
		if inTableLen < 2 || outTableLen < 2 {
			return nil, errMalformed
		}
		pos = 52
	}

	readTable := func(length int) ([]float32, bool) {
		need := length * byteWidth
		if pos+need > len(data) {
			return nil, false
		}
		table := make([]float32, length)
		for i := 0; i < length; i++ {
			if byteWidth == 1 {
				table[i] = float32(data[pos+i]) / 255
			} else {
				table[i] = float32(binary.BigEndian.Uint16(data[pos+2*i:])) / 65535
			}
		}
		pos += need
		return table, true
	}

	for i := 0; i < in; i++ {
		table, ok := readTable(inTableLen)
		if !ok {
			return nil, errTruncated
		}
		lut.InputCurves = append(lut.InputCurves, SampledCurve(table))
	}

	clutLen := out
	lut.GridPoints = make([]int, in)
	for i := range lut.GridPoints {
		lut.GridPoints[i] = grid
		clutLen *= grid
	}
	clut, ok := readTable(clutLen)
	if !ok {
		return nil, errTruncated
	}
	lut.CLUT = clut

	for i := 0; i < out; i++ {
		table, ok := readTable(outTableLen)
		if !ok {
			return nil, errTruncated
		}
		lut.OutputCurves = append(lut.OutputCurves, SampledCurve(table))
	}
	return lut, nil
}

// decodeMAB reads the lutAToBType layout: offsets to B curves, matrix,
// M curves, CLUT and A curves, any of which may be zero.
func decodeMAB(data []byte) (*LutPipeline, error) {
	if len(data) < 32 {
		return nil, errTruncated
	}
	in := int(data[8])
	out := int(data[9])
	if in < 1 || in > 4 || out < 1 || out > 4 {
		return nil, errMalformed
	}
	offB := int(binary.BigEndian.Uint32(data[12:]))
	offMatrix := int(binary.BigEndian.Uint32(data[16:]))
	offM := int(binary.BigEndian.Uint32(data[20:]))
	offCLUT := int(binary.BigEndian.Uint32(data[24:]))
	offA := int(binary.BigEndian.Uint32(data[28:]))

	lut := &LutPipeline{
		InputChannels:  in,
		OutputChannels: out,
	}

	if offA > 0 {
		curves, err := decodeCurveSet(data, offA, in)
		if err != nil {
			return nil, err
		}
		lut.InputCurves = curves
	}
	if offM > 0 {
		curves, err := decodeCurveSet(data, offM, out)
		if err != nil {
			return nil, err
		}
		lut.OutputCurves = curves
	}
	if offB > 0 {
		curves, err := decodeCurveSet(data, offB, out)
		if err != nil {
			return nil, err
		}
		lut.BCurves = curves
	}
	if offMatrix > 0 {
		if offMatrix+48 > len(data) {
			return nil, errTruncated
		}
		var matrix [12]float64
		// Nine matrix entries then the offset column.
		for i := 0; i < 9; i++ {
			matrix[(i/3)*4+i%3] = s15Fixed16(data[offMatrix+4*i:])
		}
		for i := 0; i < 3; i++ {
			matrix[i*4+3] = s15Fixed16(data[offMatrix+36+4*i:])
		}
		lut.Matrix = &matrix
		lut.HasOffset = true
	}
	if offCLUT > 0 {
		if err := lut.decodeMABCLUT(data, offCLUT); err != nil {
			return nil, err
		}
	}
	return lut, nil
}

// decodeMABCLUT reads the mAB CLUT header: 16 bytes of per-dimension grid
// sizes, the sample precision, then the packed samples.
func (lut *LutPipeline) decodeMABCLUT(data []byte, off int) error {
	if off+20 > len(data) {
		return errTruncated
	}
	lut.GridPoints = make([]int, lut.InputChannels)
	clutLen := lut.OutputChannels
	for i := 0; i < lut.InputChannels; i++ {
		g := int(data[off+i])
		if g < 2 {
			return errMalformed
		}
		lut.GridPoints[i] = g
		clutLen *= g
	}
	precision := int(data[off+16])
	if precision != 1 && precision != 2 {
		return errMalformed
	}
	pos := off + 20
	if pos+clutLen*precision > len(data) {
		return errTruncated
	}
	lut.CLUT = make([]float32, clutLen)
	for i := 0; i < clutLen; i++ {
		if precision == 1 {
			lut.CLUT[i] = float32(data[pos+i]) / 255
		} else {
			lut.CLUT[i] = float32(binary.BigEndian.Uint16(data[pos+2*i:])) / 65535
		}
	}
	return nil
}

// decodeCurveSet reads `count` consecutive curv/para curves, each padded to
// a 4 byte boundary.
func decodeCurveSet(data []byte, off, count int) ([]*Curve, error) {
	curves := make([]*Curve, 0, count)
	pos := off
	for i := 0; i < count; i++ {
		if pos+12 > len(data) {
			return nil, errTruncated
		}
		size := curveByteSize(data[pos:])
		if size < 0 || pos+size > len(data) {
			return nil, errTruncated
		}
		curve := decodeCurve(data[pos : pos+size])
		if curve == nil {
			return nil, errMalformed
		}
		curves = append(curves, curve)
		pos += (size + 3) &^ 3
	}
	return curves, nil
}

// curveByteSize returns the encoded size of the curv/para element starting
// at `data`.
func curveByteSize(data []byte) int {
	if len(data) < 12 {
		return -1
	}
	switch binary.BigEndian.Uint32(data) {
	case typeCurv:
		count := int(binary.BigEndian.Uint32(data[8:]))
		return 12 + 2*count
	case typePara:
		funcType := int(binary.BigEndian.Uint16(data[8:]))
		nParams := []int{1, 3, 4, 5, 7}
		if funcType < 0 || funcType > 4 {
			return -1
		}
		return 12 + 4*nParams[funcType]
	}
	return -1
}

// Evaluate runs the pipeline on device values in [0, 1] and returns the
// PCS result.
func (lut *LutPipeline) Evaluate(in []float32) [3]float32 {
	n := lut.InputChannels
	vals := make([]float32, n)
	copy(vals, in)

	for i := 0; i < n && i < len(lut.InputCurves); i++ {
		vals[i] = lut.InputCurves[i].Eval(vals[i])
	}

	var out [3]float32
	if lut.CLUT != nil {
		res := lut.interpolate(vals)
		copy(out[:], res)
	} else {
		copy(out[:], vals)
	}

	for i := 0; i < lut.OutputChannels && i < len(lut.OutputCurves); i++ {
		if i < 3 {
			out[i] = lut.OutputCurves[i].Eval(out[i])
		}
	}

	if lut.Matrix != nil && lut.HasOffset {
		m := lut.Matrix
		x := float64(out[0])*m[0] + float64(out[1])*m[1] + float64(out[2])*m[2] + m[3]
		y := float64(out[0])*m[4] + float64(out[1])*m[5] + float64(out[2])*m[6] + m[7]
		z := float64(out[0])*m[8] + float64(out[1])*m[9] + float64(out[2])*m[10] + m[11]
		out = [3]float32{float32(x), float32(y), float32(z)}
	}

	for i := 0; i < len(lut.BCurves) && i < 3; i++ {
		out[i] = lut.BCurves[i].Eval(out[i])
	}
	return out
}

// interpolate performs N-linear interpolation of the CLUT: trilinear for
// three inputs, the general tensor product for other dimensionalities.
func (lut *LutPipeline) interpolate(in []float32) []float32 {
	n := lut.InputChannels
	out := lut.OutputChannels

	idx := make([]int, n)
	frac := make([]float32, n)
	for i := 0; i < n; i++ {
		v := in[i]
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		pos := v * float32(lut.GridPoints[i]-1)
		idx[i] = int(pos)
		if idx[i] >= lut.GridPoints[i]-1 {
			idx[i] = lut.GridPoints[i] - 2
			frac[i] = 1
		} else {
			frac[i] = pos - float32(idx[i])
		}
	}

	// Strides in input-major order: the last input channel varies fastest.
	strides := make([]int, n)
	stride := out
	for i := n - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= lut.GridPoints[i]
	}

	result := make([]float32, out)
	corners := 1 << uint(n)
	for corner := 0; corner < corners; corner++ {
		weight := float32(1)
		offset := 0
		for i := 0; i < n; i++ {
			if corner&(1<<uint(i)) != 0 {
				weight *= frac[i]
				offset += (idx[i] + 1) * strides[i]
			} else {
				weight *= 1 - frac[i]
				offset += idx[i] * strides[i]
			}
		}
		if weight == 0 {
			continue
		}
		for c := 0; c < out; c++ {
			result[c] += weight * lut.CLUT[offset+c]
		}
	}
	return result
}
