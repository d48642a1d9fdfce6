/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"github.com/pixelpdf/pixelpdf/common"
)

// Sampler converts a device component tuple to premultiplication-free
// 8-bit RGBA.
type Sampler func(comps []float64) [4]uint8

// SamplerOptions controls sampler materialization. NoLUT skips the lookup
// table builds, trading per-pixel conversion cost for no setup cost;
// useful for small images and for callers that cannot afford the
// 4-component table build.
type SamplerOptions struct {
	NoLUT bool
}

// kSampleLevels are the black separation levels of the layered CMYK LUT.
var kSampleLevels = []float64{0, 0.05, 0.15, 0.30, 0.50, 0.70, 0.85, 1.0}

// rgbLUTSize is the per-axis resolution of the 3D LUTs.
const rgbLUTSize = 17

// RGBASampler materializes a sampler for the colorspace: a 256 entry 1D
// LUT for single-component spaces, a 17x17x17 3D LUT for 3-component
// spaces and a layered 3D LUT across the K sample levels for CMYK.
// Spaces with other component counts, and all spaces under NoLUT, convert
// directly per sample.
func RGBASampler(cs PdfColorspace, opts SamplerOptions) Sampler {
	direct := func(comps []float64) [4]uint8 {
		r, g, b, err := cs.ToSRGB(comps)
		if err != nil {
			common.Log.Debug("ERROR: sampler: %v", err)
			return [4]uint8{0, 0, 0, 255}
		}
		return [4]uint8{r, g, b, 255}
	}
	if opts.NoLUT {
		return direct
	}

	switch cs.GetNumComponents() {
	case 1:
		return build1DSampler(cs, direct)
	case 3:
		return build3DSampler(cs, direct)
	case 4:
		return buildCMYKSampler(cs, direct)
	}
	return direct
}

// build1DSampler tabulates 256 samples across the decode range.
func build1DSampler(cs PdfColorspace, direct Sampler) Sampler {
	decode := cs.DecodeArray()
	lo, hi := decode[0], decode[1]
	var lut [256][4]uint8
	for i := 0; i < 256; i++ {
		v := lo + float64(i)/255*(hi-lo)
		lut[i] = direct([]float64{v})
	}
	return func(comps []float64) [4]uint8 {
		if len(comps) != 1 {
			return [4]uint8{0, 0, 0, 255}
		}
		v := (comps[0] - lo) / (hi - lo)
		idx := int(clamp01(v)*255 + 0.5)
		return lut[idx]
	}
}

// lutIndex splits a [0,1] coordinate into a lattice cell and fraction.
func lutIndex(v float64, size int) (int, float64) {
	pos := clamp01(v) * float64(size-1)
	i := int(pos)
	if i >= size-1 {
		return size - 2, 1
	}
	return i, pos - float64(i)
}

// build3DSampler tabulates a 17x17x17 lattice and interpolates
// trilinearly.
func build3DSampler(cs PdfColorspace, direct Sampler) Sampler {
	const n = rgbLUTSize
	lut := make([][4]uint8, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				comps := []float64{
					float64(i) / (n - 1),
					float64(j) / (n - 1),
					float64(k) / (n - 1),
				}
				lut[(i*n+j)*n+k] = direct(comps)
			}
		}
	}
	return func(comps []float64) [4]uint8 {
		if len(comps) != 3 {
			return [4]uint8{0, 0, 0, 255}
		}
		i, fi := lutIndex(comps[0], n)
		j, fj := lutIndex(comps[1], n)
		k, fk := lutIndex(comps[2], n)

		var out [4]float64
		for corner := 0; corner < 8; corner++ {
			ii, jj, kk := i, j, k
			w := 1.0
			if corner&4 != 0 {
				ii++
				w *= fi
			} else {
				w *= 1 - fi
			}
			if corner&2 != 0 {
				jj++
				w *= fj
			} else {
				w *= 1 - fj
			}
			if corner&1 != 0 {
				kk++
				w *= fk
			} else {
				w *= 1 - fk
			}
			entry := lut[(ii*n+jj)*n+kk]
			for c := 0; c < 4; c++ {
				out[c] += w * float64(entry[c])
			}
		}
		return [4]uint8{
			uint8(out[0] + 0.5), uint8(out[1] + 0.5),
			uint8(out[2] + 0.5), uint8(out[3] + 0.5),
		}
	}
}

// buildCMYKSampler tabulates one 3D CMY lattice per K sample level and
// blends linearly between the two levels bracketing the input K.
func buildCMYKSampler(cs PdfColorspace, direct Sampler) Sampler {
	const n = rgbLUTSize
	layers := make([][][4]uint8, len(kSampleLevels))
	for l, kv := range kSampleLevels {
		layer := make([][4]uint8, n*n*n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				for k := 0; k < n; k++ {
					comps := []float64{
						float64(i) / (n - 1),
						float64(j) / (n - 1),
						float64(k) / (n - 1),
						kv,
					}
					layer[(i*n+j)*n+k] = direct(comps)
				}
			}
		}
		layers[l] = layer
	}

	sampleLayer := func(layer [][4]uint8, c, m, y float64) [4]float64 {
		i, fi := lutIndex(c, n)
		j, fj := lutIndex(m, n)
		k, fk := lutIndex(y, n)
		var out [4]float64
		for corner := 0; corner < 8; corner++ {
			ii, jj, kk := i, j, k
			w := 1.0
			if corner&4 != 0 {
				ii++
				w *= fi
			} else {
				w *= 1 - fi
			}
			if corner&2 != 0 {
				jj++
				w *= fj
			} else {
				w *= 1 - fj
			}
			if corner&1 != 0 {
				kk++
				w *= fk
			} else {
				w *= 1 - fk
			}
			entry := layer[(ii*n+jj)*n+kk]
			for ch := 0; ch < 4; ch++ {
				out[ch] += w * float64(entry[ch])
			}
		}
		return out
	}

	return func(comps []float64) [4]uint8 {
		if len(comps) != 4 {
			return [4]uint8{0, 0, 0, 255}
		}
		c, m, y, k := clamp01(comps[0]), clamp01(comps[1]), clamp01(comps[2]), clamp01(comps[3])

		// Bracket k between two sample levels.
		hi := 1
		for hi < len(kSampleLevels)-1 && kSampleLevels[hi] < k {
			hi++
		}
		lo := hi - 1
		span := kSampleLevels[hi] - kSampleLevels[lo]
		t := 0.0
		if span > 0 {
			t = (k - kSampleLevels[lo]) / span
		}

		a := sampleLayer(layers[lo], c, m, y)
		b := sampleLayer(layers[hi], c, m, y)
		var out [4]uint8
		for i := 0; i < 4; i++ {
			out[i] = uint8(a[i]*(1-t) + b[i]*t + 0.5)
		}
		return out
	}
}
