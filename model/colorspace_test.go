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
)

func TestDeviceColorspaces(t *testing.T) {
	gray, err := NewPdfColorspaceFromPdfObject(core.MakeName("DeviceGray"))
	require.NoError(t, err)
	assert.Equal(t, 1, gray.GetNumComponents())
	r, g, b, err := gray.ToSRGB([]float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
	assert.InDelta(t, 128, int(r), 1)

	rgb, err := NewPdfColorspaceFromPdfObject(core.MakeName("DeviceRGB"))
	require.NoError(t, err)
	r, g, b, err = rgb.ToSRGB([]float64{1, 0, 0.5})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(0), g)
	assert.InDelta(t, 128, int(b), 1)

	cmyk, err := NewPdfColorspaceFromPdfObject(core.MakeName("DeviceCMYK"))
	require.NoError(t, err)
	r, g, b, err = cmyk.ToSRGB([]float64{0, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
	r, g, b, err = cmyk.ToSRGB([]float64{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}

func TestCalGrayColorspace(t *testing.T) {
	params := core.MakeDict()
	params.Set("WhitePoint", core.MakeArrayFromFloats([]float64{0.9505, 1.0, 1.089}))
	params.Set("Gamma", core.MakeFloat(2.2))
	arr := core.MakeArray(core.MakeName("CalGray"), params)

	cs, err := NewPdfColorspaceFromPdfObject(arr)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.GetNumComponents())

	r, g, b, err := cs.ToSRGB([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 255, int(r), 1)
	assert.InDelta(t, 255, int(g), 1)
	assert.InDelta(t, 255, int(b), 1)

	r, _, _, err = cs.ToSRGB([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), r)
}

func TestLabColorspace(t *testing.T) {
	params := core.MakeDict()
	params.Set("WhitePoint", core.MakeArrayFromFloats([]float64{0.9642, 1.0, 0.8249}))
	arr := core.MakeArray(core.MakeName("Lab"), params)

	cs, err := NewPdfColorspaceFromPdfObject(arr)
	require.NoError(t, err)

	// L=100 is white, L=0 is black; a=b=0 is neutral.
	r, g, b, err := cs.ToSRGB([]float64{100, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 255, int(r), 1)
	assert.InDelta(t, 255, int(g), 1)
	assert.InDelta(t, 255, int(b), 1)

	r, g, b, err = cs.ToSRGB([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, int(r), 1)

	r, g, b, err = cs.ToSRGB([]float64{50, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, int(g), int(r), 4)
	assert.InDelta(t, int(g), int(b), 6)
}

func TestIndexedColorspace(t *testing.T) {
	lookup := core.MakeStringFromBytes([]byte{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
	})
	arr := core.MakeArray(
		core.MakeName("Indexed"),
		core.MakeName("DeviceRGB"),
		core.MakeInteger(2),
		lookup,
	)
	cs, err := NewPdfColorspaceFromPdfObject(arr)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.GetNumComponents())
	assert.Equal(t, []float64{0, 2}, cs.DecodeArray())

	r, g, b, err := cs.ToSRGB([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})

	r, g, b, err = cs.ToSRGB([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})

	// Out of range indices clamp.
	r, g, b, err = cs.ToSRGB([]float64{9})
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})
}

// linearInversionFunction inverts a single tint into gray, standing in
// for a type 2 PDF function.
type linearInversionFunction struct{}

func (linearInversionFunction) Evaluate(inputs []float64) ([]float64, error) {
	out := make([]float64, len(inputs))
	for i, v := range inputs {
		out[i] = 1 - v
	}
	return out, nil
}

func TestSeparationColorspace(t *testing.T) {
	RegisterFunctionLoader(func(obj core.PdfObject) (Function, error) {
		return linearInversionFunction{}, nil
	})
	defer RegisterFunctionLoader(nil)

	arr := core.MakeArray(
		core.MakeName("Separation"),
		core.MakeName("Spot1"),
		core.MakeName("DeviceGray"),
		core.MakeDict(), // stands in for the tint transform function object
	)
	cs, err := NewPdfColorspaceFromPdfObject(arr)
	require.NoError(t, err)
	require.Equal(t, 1, cs.GetNumComponents())

	// Full tint through 1-v lands on black.
	r, g, b, err := cs.ToSRGB([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	r, g, b, err = cs.ToSRGB([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}

func TestPatternColorspace(t *testing.T) {
	cs, err := NewPdfColorspaceFromPdfObject(core.MakeName("Pattern"))
	require.NoError(t, err)
	pattern, ok := cs.(*PdfColorspacePattern)
	require.True(t, ok)
	assert.Nil(t, pattern.UnderlyingCS)

	arr := core.MakeArray(core.MakeName("Pattern"), core.MakeName("DeviceRGB"))
	cs, err = NewPdfColorspaceFromPdfObject(arr)
	require.NoError(t, err)
	pattern = cs.(*PdfColorspacePattern)
	require.NotNil(t, pattern.UnderlyingCS)
	assert.Equal(t, 3, pattern.GetNumComponents())
}

// For every RGB LUT, (0,0,0) maps to sRGB (0,0,0) and (1,1,1) to
// (255,255,255) within one count.
func TestSamplerEndpoints(t *testing.T) {
	rgb := NewPdfColorspaceDeviceRGB()
	sampler := RGBASampler(rgb, SamplerOptions{})

	black := sampler([]float64{0, 0, 0})
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, black)

	white := sampler([]float64{1, 1, 1})
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 255, int(white[i]), 1)
	}

	// Mid lattice values interpolate.
	mid := sampler([]float64{0.5, 0.25, 0.75})
	assert.InDelta(t, 128, int(mid[0]), 2)
	assert.InDelta(t, 64, int(mid[1]), 2)
	assert.InDelta(t, 191, int(mid[2]), 2)
}

func TestGraySamplerLUT(t *testing.T) {
	gray := NewPdfColorspaceDeviceGray()
	sampler := RGBASampler(gray, SamplerOptions{})
	v := sampler([]float64{0.5})
	assert.InDelta(t, 128, int(v[0]), 1)
	assert.Equal(t, v[0], v[1])
	assert.Equal(t, uint8(255), v[3])
}

func TestCMYKSamplerLayers(t *testing.T) {
	cmyk := NewPdfColorspaceDeviceCMYK()
	sampler := RGBASampler(cmyk, SamplerOptions{})

	black := sampler([]float64{0, 0, 0, 1})
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, black)

	white := sampler([]float64{0, 0, 0, 0})
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 255, int(white[i]), 1)
	}

	// A K level between two layer samples blends linearly: K=0.4 lies
	// halfway between the 0.30 and 0.50 layers.
	direct := sampler([]float64{0.2, 0.4, 0.6, 0.4})
	r0, g0, b0, err := cmyk.ToSRGB([]float64{0.2, 0.4, 0.6, 0.3})
	require.NoError(t, err)
	r1, g1, b1, err := cmyk.ToSRGB([]float64{0.2, 0.4, 0.6, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, (float64(r0)+float64(r1))/2, float64(direct[0]), 3)
	assert.InDelta(t, (float64(g0)+float64(g1))/2, float64(direct[1]), 3)
	assert.InDelta(t, (float64(b0)+float64(b1))/2, float64(direct[2]), 3)
}

func TestSamplerNoLUT(t *testing.T) {
	rgb := NewPdfColorspaceDeviceRGB()
	sampler := RGBASampler(rgb, SamplerOptions{NoLUT: true})
	v := sampler([]float64{1, 0, 0})
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, v)
}

func TestPageColorspacesStability(t *testing.T) {
	doc := NewDocument()
	page := NewPageColorspaces(doc, nil)

	cs1, err := page.ResolveName("DeviceRGB")
	require.NoError(t, err)
	cs2, err := page.ResolveName("DeviceRGB")
	require.NoError(t, err)
	assert.Same(t, cs1.(*PdfColorspaceDeviceRGB), cs2.(*PdfColorspaceDeviceRGB))
}

func TestPageColorspacesDefaultOverride(t *testing.T) {
	params := core.MakeDict()
	params.Set("WhitePoint", core.MakeArrayFromFloats([]float64{0.9505, 1.0, 1.089}))
	calGray := core.MakeArray(core.MakeName("CalGray"), params)

	csDict := core.MakeDict()
	csDict.Set("DefaultGray", calGray)
	resources := core.MakeDict()
	resources.Set("ColorSpace", csDict)

	page := NewPageColorspaces(NewDocument(), resources)
	cs, err := page.ResolveName("DeviceGray")
	require.NoError(t, err)
	_, isCalGray := cs.(*PdfColorspaceCalGray)
	assert.True(t, isCalGray)
}

func TestPageColorspacesNamedResource(t *testing.T) {
	csDict := core.MakeDict()
	csDict.Set("CS0", core.MakeArray(
		core.MakeName("Indexed"),
		core.MakeName("DeviceRGB"),
		core.MakeInteger(0),
		core.MakeStringFromBytes([]byte{1, 2, 3}),
	))
	resources := core.MakeDict()
	resources.Set("ColorSpace", csDict)

	page := NewPageColorspaces(NewDocument(), resources)
	cs, err := page.ResolveName("CS0")
	require.NoError(t, err)
	assert.Equal(t, "Indexed", cs.String())

	_, err = page.ResolveName("CS1")
	assert.Error(t, err)
}
