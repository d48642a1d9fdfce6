/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package icc

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/pixelpdf/pixelpdf/common"
)

// RenderingIntent selects the ICC rendering intent of a transform.
type RenderingIntent int

// Rendering intents, in the order the A2B0/A2B1/A2B2 tags use.
const (
	Perceptual RenderingIntent = iota
	RelativeColorimetric
	Saturation
	AbsoluteColorimetric
)

// ErrNoTransform is returned when a profile carries neither an A2B
// pipeline nor a usable shaper-matrix set.
var ErrNoTransform = errors.New("icc: profile has no usable transform")

// Transformer converts device component tuples of one profile to sRGB.
type Transformer struct {
	profile *Profile
	intent  RenderingIntent

	pipeline *LutPipeline
	labPCS   bool

	// xyzToLinearSRGB is the chromatic adaptation from the profile
	// illuminant to D65, concatenated with the XYZ to linear sRGB matrix.
	xyzToLinearSRGB [3][3]float64
}

// NewTransformer builds a transform for `profile` under `intent`.
//
// Profiles with an A2B pipeline take the LUT path; RGB and gray profiles
// with TRCs and XYZ columns take the shaper-matrix path.
func NewTransformer(profile *Profile, intent RenderingIntent) (*Transformer, error) {
	t := &Transformer{
		profile: profile,
		intent:  intent,
		labPCS:  profile.Header.PCS == sigLab,
	}

	if profile.HasA2B() {
		order := pipelineOrder(intent)
		for _, i := range order {
			if profile.A2B[i] != nil {
				t.pipeline = profile.A2B[i]
				break
			}
		}
	}
	if t.pipeline == nil && !profile.HasMatrix && profile.TRC[0] == nil {
		return nil, ErrNoTransform
	}

	// Adaptation source: the declared illuminant; wtpt for absolute
	// colorimetric rendering.
	src := profile.Header.Illuminant
	if src[1] <= 0 {
		src = illuminantD50
	}
	if intent == AbsoluteColorimetric {
		src = profile.WhitePoint
	}
	adapt := bradfordAdaptation(src, illuminantD65)
	t.xyzToLinearSRGB = matMul(xyzD65ToLinearSRGB, adapt)
	return t, nil
}

// pipelineOrder returns the A2B tag preference for an intent. Saturation
// and colorimetric transforms fall back to the perceptual table.
func pipelineOrder(intent RenderingIntent) []int {
	switch intent {
	case RelativeColorimetric, AbsoluteColorimetric:
		return []int{1, 0, 2}
	case Saturation:
		return []int{2, 0, 1}
	default:
		return []int{0, 1, 2}
	}
}

// ToSRGB converts device components in [0, 1] to 8-bit sRGB.
func (t *Transformer) ToSRGB(comps []float32) (uint8, uint8, uint8) {
	var xyz [3]float64

	if t.pipeline != nil {
		pcs := t.pipeline.Evaluate(comps)
		if t.labPCS {
			xyz = labToXYZ(decodePCSLab(pcs))
		} else {
			// PCSXYZ encodes XYZ with a 1+32767/32768 full scale.
			const scale = 65535.0 / 32768.0
			xyz = [3]float64{
				float64(pcs[0]) * scale,
				float64(pcs[1]) * scale,
				float64(pcs[2]) * scale,
			}
		}
	} else {
		xyz = t.shaperMatrix(comps)
	}

	r := t.xyzToLinearSRGB[0][0]*xyz[0] + t.xyzToLinearSRGB[0][1]*xyz[1] + t.xyzToLinearSRGB[0][2]*xyz[2]
	g := t.xyzToLinearSRGB[1][0]*xyz[0] + t.xyzToLinearSRGB[1][1]*xyz[1] + t.xyzToLinearSRGB[1][2]*xyz[2]
	b := t.xyzToLinearSRGB[2][0]*xyz[0] + t.xyzToLinearSRGB[2][1]*xyz[1] + t.xyzToLinearSRGB[2][2]*xyz[2]
	return srgbEncode(r), srgbEncode(g), srgbEncode(b)
}

// shaperMatrix linearizes the components through the TRCs and multiplies
// by the profile matrix, producing profile-referred XYZ.
func (t *Transformer) shaperMatrix(comps []float32) [3]float64 {
	p := t.profile
	if p.Header.ColorSpace == sigGray || len(comps) == 1 {
		y := float64(comps[0])
		if p.TRC[0] != nil {
			y = float64(p.TRC[0].Eval(comps[0]))
		}
		return [3]float64{p.WhitePoint[0] * y, p.WhitePoint[1] * y, p.WhitePoint[2] * y}
	}

	var lin [3]float64
	for i := 0; i < 3 && i < len(comps); i++ {
		if p.TRC[i] != nil {
			lin[i] = float64(p.TRC[i].Eval(comps[i]))
		} else {
			lin[i] = float64(comps[i])
		}
	}
	if !p.HasMatrix {
		// Identity matrix: components already are XYZ-like.
		return lin
	}
	var xyz [3]float64
	for row := 0; row < 3; row++ {
		xyz[row] = p.MatrixRGB[row][0]*lin[0] + p.MatrixRGB[row][1]*lin[1] + p.MatrixRGB[row][2]*lin[2]
	}
	return xyz
}

// decodePCSLab maps the legacy PCS Lab encoding to Lab values.
func decodePCSLab(pcs [3]float32) [3]float64 {
	return [3]float64{
		float64(pcs[0]) * 100,
		float64(pcs[1])*255 - 128,
		float64(pcs[2])*255 - 128,
	}
}

// labToXYZ converts CIE Lab (D50-referred) to XYZ.
func labToXYZ(lab [3]float64) [3]float64 {
	fy := (lab[0] + 16) / 116
	fx := fy + lab[1]/500
	fz := fy - lab[2]/200

	finv := func(f float64) float64 {
		if f3 := f * f * f; f3 > 0.008856 {
			return f3
		}
		return (f - 16.0/116.0) / 7.787
	}
	return [3]float64{
		illuminantD50[0] * finv(fx),
		illuminantD50[1] * finv(fy),
		illuminantD50[2] * finv(fz),
	}
}

// srgbEncode applies the sRGB OETF and quantizes to 8 bits.
func srgbEncode(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	var e float64
	if v <= 0.0031308 {
		e = 12.92 * v
	} else {
		e = 1.055*float64(math32.Pow(float32(v), 1/2.4)) - 0.055
	}
	return uint8(e*255 + 0.5)
}

// SRGBEncode exposes the sRGB OETF for the LUT builders of the color
// engine.
func SRGBEncode(v float64) uint8 {
	return srgbEncode(v)
}

// XYZToSRGB converts a profile-referred XYZ value with the given white
// point to 8-bit sRGB, adapting from the white point to D65.
func XYZToSRGB(xyz, whitePoint [3]float64) (uint8, uint8, uint8) {
	if whitePoint[1] <= 0 {
		whitePoint = illuminantD50
	}
	m := matMul(xyzD65ToLinearSRGB, bradfordAdaptation(whitePoint, illuminantD65))
	lin := matVec(m, xyz)
	return srgbEncode(lin[0]), srgbEncode(lin[1]), srgbEncode(lin[2])
}

// LabToXYZ converts CIE Lab referenced to the D50 PCS to XYZ. It is the
// conversion the Lab color space of PDF uses.
func LabToXYZ(lab [3]float64) [3]float64 {
	return labToXYZ(lab)
}

// D50 returns the ICC PCS illuminant.
func D50() [3]float64 {
	return illuminantD50
}

// illuminantD65 is the sRGB reference white.
var illuminantD65 = [3]float64{0.95047, 1.0, 1.08883}

// xyzD65ToLinearSRGB is the standard XYZ (D65) to linear sRGB matrix.
var xyzD65ToLinearSRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

// bradfordMatrix is the Bradford cone response matrix.
var bradfordMatrix = [3][3]float64{
	{0.8951, 0.2664, -0.1614},
	{-0.7502, 1.7135, 0.0367},
	{0.0389, -0.0685, 1.0296},
}

var bradfordInverse = [3][3]float64{
	{0.9869929, -0.1470543, 0.1599627},
	{0.4323053, 0.5183603, 0.0492912},
	{-0.0085287, 0.0400428, 0.9684867},
}

// bradfordAdaptation builds the chromatic adaptation matrix from the
// source white point to the destination white point.
func bradfordAdaptation(src, dst [3]float64) [3][3]float64 {
	srcCone := matVec(bradfordMatrix, src)
	dstCone := matVec(bradfordMatrix, dst)

	var scale [3][3]float64
	for i := 0; i < 3; i++ {
		if srcCone[i] != 0 {
			scale[i][i] = dstCone[i] / srcCone[i]
		} else {
			scale[i][i] = 1
			common.Log.Debug("ERROR: degenerate white point %v", src)
		}
	}
	return matMul(bradfordInverse, matMul(scale, bradfordMatrix))
}

func matMul(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

func matVec(m [3][3]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}
