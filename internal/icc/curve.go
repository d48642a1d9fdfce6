/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package icc

import (
	"github.com/chewxy/math32"
)

// curveKind discriminates the TRC variants.
type curveKind int

const (
	curveIdentity curveKind = iota
	curveGamma
	curveSampled
	curveParametric
)

// resampledCurveLen is the target sample count short sampled TRCs are
// resampled to with a Catmull-Rom spline.
const resampledCurveLen = 1024

// Curve is a tone reproduction curve: identity, pure gamma, a sampled
// table, or one of the ICC parametric function types 0..4.
type Curve struct {
	kind    curveKind
	gamma   float32
	samples []float32

	funcType int
	params   []float32
}

// IdentityCurve returns the identity TRC.
func IdentityCurve() *Curve {
	return &Curve{kind: curveIdentity}
}

// GammaCurve returns a pure gamma TRC.
func GammaCurve(gamma float32) *Curve {
	return &Curve{kind: curveGamma, gamma: gamma}
}

// SampledCurve returns a TRC interpolating the given samples over [0, 1].
// Tables shorter than the resampling target are resampled with a
// Catmull-Rom spline so that evaluation resolves to a dense direct lookup.
func SampledCurve(samples []float32) *Curve {
	if len(samples) == 0 {
		return IdentityCurve()
	}
	if len(samples) == 1 {
		return GammaCurve(samples[0])
	}
	if len(samples) < resampledCurveLen {
		samples = catmullRomResample(samples, resampledCurveLen)
	}
	return &Curve{kind: curveSampled, samples: samples}
}

// ParametricCurve returns an ICC parametric TRC of the given function type
// (0..4) with its parameters.
func ParametricCurve(funcType int, params []float32) *Curve {
	return &Curve{kind: curveParametric, funcType: funcType, params: params}
}

// Eval evaluates the curve at `x`, with x clamped to [0, 1].
func (c *Curve) Eval(x float32) float32 {
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	switch c.kind {
	case curveIdentity:
		return x
	case curveGamma:
		return math32.Pow(x, c.gamma)
	case curveSampled:
		pos := x * float32(len(c.samples)-1)
		i := int(pos)
		if i >= len(c.samples)-1 {
			return c.samples[len(c.samples)-1]
		}
		frac := pos - float32(i)
		return c.samples[i] + (c.samples[i+1]-c.samples[i])*frac
	case curveParametric:
		return c.evalParametric(x)
	}
	return x
}

// evalParametric evaluates the ICC para function types.
//
//	0: Y = X^g
//	1: Y = (aX+b)^g           for X >= -b/a, else 0
//	2: Y = (aX+b)^g + c       for X >= -b/a, else c
//	3: Y = (aX+b)^g           for X >= d, else cX
//	4: Y = (aX+b)^g + e       for X >= d, else cX + f
func (c *Curve) evalParametric(x float32) float32 {
	p := func(i int) float32 {
		if i < len(c.params) {
			return c.params[i]
		}
		return 0
	}
	switch c.funcType {
	case 0:
		return math32.Pow(x, p(0))
	case 1:
		g, a, b := p(0), p(1), p(2)
		if a != 0 && x < -b/a {
			return 0
		}
		return math32.Pow(a*x+b, g)
	case 2:
		g, a, b, cc := p(0), p(1), p(2), p(3)
		if a != 0 && x < -b/a {
			return cc
		}
		return math32.Pow(a*x+b, g) + cc
	case 3:
		g, a, b, cc, d := p(0), p(1), p(2), p(3), p(4)
		if x < d {
			return cc * x
		}
		return math32.Pow(a*x+b, g)
	case 4:
		g, a, b, cc, d, e, f := p(0), p(1), p(2), p(3), p(4), p(5), p(6)
		if x < d {
			return cc*x + f
		}
		return math32.Pow(a*x+b, g) + e
	}
	return x
}

// catmullRomResample interpolates `samples` to `n` points with a
// Catmull-Rom spline.
func catmullRomResample(samples []float32, n int) []float32 {
	out := make([]float32, n)
	last := len(samples) - 1
	at := func(i int) float32 {
		if i < 0 {
			i = 0
		} else if i > last {
			i = last
		}
		return samples[i]
	}
	for i := 0; i < n; i++ {
		pos := float32(i) / float32(n-1) * float32(last)
		j := int(pos)
		t := pos - float32(j)

		p0, p1, p2, p3 := at(j-1), at(j), at(j+1), at(j+2)
		t2 := t * t
		t3 := t2 * t
		v := 0.5 * ((2 * p1) +
			(-p0+p2)*t +
			(2*p0-5*p1+4*p2-p3)*t2 +
			(-p0+3*p1-3*p2+p3)*t3)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[i] = v
	}
	return out
}
