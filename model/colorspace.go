/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"fmt"
	"math"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/core"
	"github.com/pixelpdf/pixelpdf/internal/icc"
)

// PdfColorspace interface is implemented by all colorspaces.
type PdfColorspace interface {
	// String returns the PDF name of the colorspace.
	String() string

	// GetNumComponents returns the number of input components.
	GetNumComponents() int

	// DecodeArray returns the component ranges of the colorspace.
	DecodeArray() []float64

	// ToSRGB converts a component tuple to 8-bit sRGB.
	ToSRGB(comps []float64) (uint8, uint8, uint8, error)
}

// NewPdfColorspaceFromPdfObject resolves a color space value given either
// by name or by array.
func NewPdfColorspaceFromPdfObject(obj core.PdfObject) (PdfColorspace, error) {
	switch t := core.TraceToDirectObject(obj).(type) {
	case *core.PdfObjectName:
		return newColorspaceFromName(t.String())
	case *core.PdfObjectArray:
		return newColorspaceFromArray(t)
	}
	common.Log.Debug("ERROR: Colorspace not a name or array (%T)", obj)
	return nil, core.ErrTypeError
}

func newColorspaceFromName(name string) (PdfColorspace, error) {
	switch name {
	case "DeviceGray", "G":
		return NewPdfColorspaceDeviceGray(), nil
	case "DeviceRGB", "RGB":
		return NewPdfColorspaceDeviceRGB(), nil
	case "DeviceCMYK", "CMYK":
		return NewPdfColorspaceDeviceCMYK(), nil
	case "Pattern":
		return &PdfColorspacePattern{}, nil
	case "Indexed", "I":
		return nil, fmt.Errorf("%s requires an array form", name)
	}
	common.Log.Debug("ERROR: Unknown colorspace %q", name)
	return nil, core.ErrNotSupported
}

func newColorspaceFromArray(arr *core.PdfObjectArray) (PdfColorspace, error) {
	if arr.Len() == 0 {
		return nil, core.ErrRangeError
	}
	name, ok := core.GetNameVal(arr.Get(0))
	if !ok {
		return nil, core.ErrTypeError
	}
	if arr.Len() == 1 {
		return newColorspaceFromName(name)
	}

	switch name {
	case "CalGray":
		return newPdfColorspaceCalGrayFromPdfObject(arr)
	case "CalRGB":
		return newPdfColorspaceCalRGBFromPdfObject(arr)
	case "Lab":
		return newPdfColorspaceLabFromPdfObject(arr)
	case "ICCBased":
		return newPdfColorspaceICCBasedFromPdfObject(arr)
	case "Indexed", "I":
		return newPdfColorspaceIndexedFromPdfObject(arr)
	case "Separation":
		return newPdfColorspaceSeparationFromPdfObject(arr)
	case "DeviceN":
		return newPdfColorspaceDeviceNFromPdfObject(arr)
	case "Pattern":
		return newPdfColorspacePatternFromPdfObject(arr)
	case "DeviceGray", "DeviceRGB", "DeviceCMYK":
		return newColorspaceFromName(name)
	}
	common.Log.Debug("ERROR: Unknown colorspace array %q", name)
	return nil, core.ErrNotSupported
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PdfColorspaceDeviceGray represents a grayscale colorspace.
type PdfColorspaceDeviceGray struct{}

// NewPdfColorspaceDeviceGray returns a new grayscale colorspace.
func NewPdfColorspaceDeviceGray() *PdfColorspaceDeviceGray {
	return &PdfColorspaceDeviceGray{}
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceDeviceGray) String() string { return "DeviceGray" }

// GetNumComponents returns the number of color components (1).
func (cs *PdfColorspaceDeviceGray) GetNumComponents() int { return 1 }

// DecodeArray returns the component range of the colorspace.
func (cs *PdfColorspaceDeviceGray) DecodeArray() []float64 { return []float64{0, 1} }

// ToSRGB converts a gray tuple to sRGB.
func (cs *PdfColorspaceDeviceGray) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 1 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	v := uint8(clamp01(comps[0])*255 + 0.5)
	return v, v, v, nil
}

// PdfColorspaceDeviceRGB represents an RGB colorspace.
type PdfColorspaceDeviceRGB struct{}

// NewPdfColorspaceDeviceRGB returns a new RGB colorspace.
func NewPdfColorspaceDeviceRGB() *PdfColorspaceDeviceRGB {
	return &PdfColorspaceDeviceRGB{}
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceDeviceRGB) String() string { return "DeviceRGB" }

// GetNumComponents returns the number of color components (3).
func (cs *PdfColorspaceDeviceRGB) GetNumComponents() int { return 3 }

// DecodeArray returns the component ranges of the colorspace.
func (cs *PdfColorspaceDeviceRGB) DecodeArray() []float64 {
	return []float64{0, 1, 0, 1, 0, 1}
}

// ToSRGB converts an RGB tuple to sRGB. Device RGB is treated as already
// sRGB encoded.
func (cs *PdfColorspaceDeviceRGB) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 3 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	return uint8(clamp01(comps[0])*255 + 0.5),
		uint8(clamp01(comps[1])*255 + 0.5),
		uint8(clamp01(comps[2])*255 + 0.5), nil
}

// PdfColorspaceDeviceCMYK represents a CMYK colorspace.
type PdfColorspaceDeviceCMYK struct{}

// NewPdfColorspaceDeviceCMYK returns a new CMYK colorspace.
func NewPdfColorspaceDeviceCMYK() *PdfColorspaceDeviceCMYK {
	return &PdfColorspaceDeviceCMYK{}
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceDeviceCMYK) String() string { return "DeviceCMYK" }

// GetNumComponents returns the number of color components (4).
func (cs *PdfColorspaceDeviceCMYK) GetNumComponents() int { return 4 }

// DecodeArray returns the component ranges of the colorspace.
func (cs *PdfColorspaceDeviceCMYK) DecodeArray() []float64 {
	return []float64{0, 1, 0, 1, 0, 1, 0, 1}
}

// ToSRGB converts a CMYK tuple to sRGB through the additive complement
// with black addition (8.6.4.4).
func (cs *PdfColorspaceDeviceCMYK) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 4 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	c, m, y, k := clamp01(comps[0]), clamp01(comps[1]), clamp01(comps[2]), clamp01(comps[3])
	r := 1 - math.Min(1, c+k)
	g := 1 - math.Min(1, m+k)
	b := 1 - math.Min(1, y+k)
	return uint8(r*255 + 0.5), uint8(g*255 + 0.5), uint8(b*255 + 0.5), nil
}

// PdfColorspaceCalGray represents a CalGray colorspace.
type PdfColorspaceCalGray struct {
	WhitePoint []float64 // Required
	BlackPoint []float64
	Gamma      float64
}

func newPdfColorspaceCalGrayFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspaceCalGray, error) {
	d, ok := core.GetDict(arr.Get(1))
	if !ok {
		return nil, core.ErrTypeError
	}
	cs := &PdfColorspaceCalGray{
		WhitePoint: []float64{1, 1, 1},
		Gamma:      1,
	}
	if wp, ok := core.GetArray(d.Get("WhitePoint")); ok {
		if vals, err := wp.ToFloat64Array(); err == nil && len(vals) == 3 {
			cs.WhitePoint = vals
		}
	} else {
		common.Log.Debug("ERROR: CalGray: Invalid WhitePoint")
		return nil, ErrRequiredAttributeMissing
	}
	if bp, ok := core.GetArray(d.Get("BlackPoint")); ok {
		if vals, err := bp.ToFloat64Array(); err == nil && len(vals) == 3 {
			cs.BlackPoint = vals
		}
	}
	if gamma, err := core.GetNumberAsFloat(d.Get("Gamma")); err == nil {
		cs.Gamma = gamma
	}
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceCalGray) String() string { return "CalGray" }

// GetNumComponents returns the number of color components (1).
func (cs *PdfColorspaceCalGray) GetNumComponents() int { return 1 }

// DecodeArray returns the component range of the colorspace.
func (cs *PdfColorspaceCalGray) DecodeArray() []float64 { return []float64{0, 1} }

// ToSRGB converts a CalGray value to sRGB: the gamma-decoded luminance
// scales the white point.
func (cs *PdfColorspaceCalGray) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 1 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	a := clamp01(comps[0])
	l := math.Pow(a, cs.Gamma)
	wp := [3]float64{cs.WhitePoint[0], cs.WhitePoint[1], cs.WhitePoint[2]}
	xyz := [3]float64{wp[0] * l, wp[1] * l, wp[2] * l}
	r, g, b := icc.XYZToSRGB(xyz, wp)
	return r, g, b, nil
}

// PdfColorspaceCalRGB represents a CalRGB colorspace.
type PdfColorspaceCalRGB struct {
	WhitePoint []float64 // Required
	BlackPoint []float64
	Gamma      []float64
	Matrix     []float64
}

func newPdfColorspaceCalRGBFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspaceCalRGB, error) {
	d, ok := core.GetDict(arr.Get(1))
	if !ok {
		return nil, core.ErrTypeError
	}
	cs := &PdfColorspaceCalRGB{
		WhitePoint: []float64{1, 1, 1},
		Gamma:      []float64{1, 1, 1},
		Matrix:     []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
	}
	if wp, ok := core.GetArray(d.Get("WhitePoint")); ok {
		if vals, err := wp.ToFloat64Array(); err == nil && len(vals) == 3 {
			cs.WhitePoint = vals
		}
	} else {
		common.Log.Debug("ERROR: CalRGB: Invalid WhitePoint")
		return nil, ErrRequiredAttributeMissing
	}
	if bp, ok := core.GetArray(d.Get("BlackPoint")); ok {
		if vals, err := bp.ToFloat64Array(); err == nil && len(vals) == 3 {
			cs.BlackPoint = vals
		}
	}
	if g, ok := core.GetArray(d.Get("Gamma")); ok {
		if vals, err := g.ToFloat64Array(); err == nil && len(vals) == 3 {
			cs.Gamma = vals
		}
	}
	if m, ok := core.GetArray(d.Get("Matrix")); ok {
		if vals, err := m.ToFloat64Array(); err == nil && len(vals) == 9 {
			cs.Matrix = vals
		}
	}
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceCalRGB) String() string { return "CalRGB" }

// GetNumComponents returns the number of color components (3).
func (cs *PdfColorspaceCalRGB) GetNumComponents() int { return 3 }

// DecodeArray returns the component ranges of the colorspace.
func (cs *PdfColorspaceCalRGB) DecodeArray() []float64 {
	return []float64{0, 1, 0, 1, 0, 1}
}

// ToSRGB converts a CalRGB tuple to sRGB: gamma decode, matrix to XYZ,
// then white point adaptation.
func (cs *PdfColorspaceCalRGB) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 3 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	var abc [3]float64
	for i := 0; i < 3; i++ {
		abc[i] = math.Pow(clamp01(comps[i]), cs.Gamma[i])
	}
	// Matrix columns are XA YA ZA XB YB ZB XC YC ZC.
	var xyz [3]float64
	for row := 0; row < 3; row++ {
		xyz[row] = cs.Matrix[row]*abc[0] + cs.Matrix[3+row]*abc[1] + cs.Matrix[6+row]*abc[2]
	}
	wp := [3]float64{cs.WhitePoint[0], cs.WhitePoint[1], cs.WhitePoint[2]}
	r, g, b := icc.XYZToSRGB(xyz, wp)
	return r, g, b, nil
}

// PdfColorspaceLab represents a Lab colorspace.
type PdfColorspaceLab struct {
	WhitePoint []float64 // Required
	BlackPoint []float64
	Range      []float64 // [amin amax bmin bmax]
}

func newPdfColorspaceLabFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspaceLab, error) {
	d, ok := core.GetDict(arr.Get(1))
	if !ok {
		return nil, core.ErrTypeError
	}
	cs := &PdfColorspaceLab{
		WhitePoint: []float64{0.9505, 1.0, 1.089},
		Range:      []float64{-100, 100, -100, 100},
	}
	if wp, ok := core.GetArray(d.Get("WhitePoint")); ok {
		if vals, err := wp.ToFloat64Array(); err == nil && len(vals) == 3 {
			cs.WhitePoint = vals
		}
	} else {
		common.Log.Debug("ERROR: Lab: Invalid WhitePoint")
		return nil, ErrRequiredAttributeMissing
	}
	if r, ok := core.GetArray(d.Get("Range")); ok {
		if vals, err := r.ToFloat64Array(); err == nil && len(vals) == 4 {
			cs.Range = vals
		}
	}
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceLab) String() string { return "Lab" }

// GetNumComponents returns the number of color components (3).
func (cs *PdfColorspaceLab) GetNumComponents() int { return 3 }

// DecodeArray returns the component ranges of the colorspace.
func (cs *PdfColorspaceLab) DecodeArray() []float64 {
	return []float64{0, 100, cs.Range[0], cs.Range[1], cs.Range[2], cs.Range[3]}
}

// ToSRGB converts a Lab tuple to sRGB.
func (cs *PdfColorspaceLab) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 3 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	l := math.Max(0, math.Min(100, comps[0]))
	a := math.Max(cs.Range[0], math.Min(cs.Range[1], comps[1]))
	b := math.Max(cs.Range[2], math.Min(cs.Range[3], comps[2]))

	xyz := icc.LabToXYZ([3]float64{l, a, b})
	wp := [3]float64{cs.WhitePoint[0], cs.WhitePoint[1], cs.WhitePoint[2]}
	r, g, bb := icc.XYZToSRGB(xyz, wp)
	return r, g, bb, nil
}

// PdfColorspaceICCBased represents an ICCBased colorspace backed by an
// embedded ICC profile, with an alternate space fallback.
type PdfColorspaceICCBased struct {
	N         int
	Alternate PdfColorspace
	Range     []float64

	profile     *icc.Profile
	transformer *icc.Transformer
}

func newPdfColorspaceICCBasedFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspaceICCBased, error) {
	stream, ok := core.GetStream(arr.Get(1))
	if !ok {
		common.Log.Debug("ERROR: ICCBased not a stream")
		return nil, core.ErrTypeError
	}
	d := stream.PdfObjectDictionary

	cs := &PdfColorspaceICCBased{}
	n, ok := core.GetIntVal(d.Get("N"))
	if !ok || (n != 1 && n != 3 && n != 4) {
		common.Log.Debug("ERROR: ICCBased invalid N=%d", n)
		return nil, core.ErrRangeError
	}
	cs.N = n

	if altObj := d.Get("Alternate"); altObj != nil {
		alt, err := NewPdfColorspaceFromPdfObject(altObj)
		if err == nil {
			cs.Alternate = alt
		}
	}
	if cs.Alternate == nil {
		switch n {
		case 1:
			cs.Alternate = NewPdfColorspaceDeviceGray()
		case 3:
			cs.Alternate = NewPdfColorspaceDeviceRGB()
		case 4:
			cs.Alternate = NewPdfColorspaceDeviceCMYK()
		}
	}
	if r, ok := core.GetArray(d.Get("Range")); ok {
		if vals, err := r.ToFloat64Array(); err == nil && len(vals) == 2*n {
			cs.Range = vals
		}
	}

	data, err := core.DecodeStream(stream)
	if err != nil {
		common.Log.Debug("ERROR: ICCBased stream decode: %v", err)
		return cs, nil
	}
	profile, err := icc.Parse(data)
	if err != nil {
		// Malformed or unsupported profiles fall back to the alternate
		// space.
		common.Log.Debug("ERROR: ICC profile: %v", err)
		return cs, nil
	}
	if profile.Channels() != 0 && profile.Channels() != n {
		common.Log.Debug("ERROR: ICC channels %d != N %d", profile.Channels(), n)
		return cs, nil
	}
	cs.profile = profile
	transformer, err := icc.NewTransformer(profile, icc.Perceptual)
	if err != nil {
		common.Log.Debug("ERROR: ICC transform: %v", err)
		return cs, nil
	}
	cs.transformer = transformer
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceICCBased) String() string { return "ICCBased" }

// GetNumComponents returns the number of color components.
func (cs *PdfColorspaceICCBased) GetNumComponents() int { return cs.N }

// DecodeArray returns the component ranges of the colorspace.
func (cs *PdfColorspaceICCBased) DecodeArray() []float64 {
	if cs.Range != nil {
		return cs.Range
	}
	decode := make([]float64, 2*cs.N)
	for i := 0; i < cs.N; i++ {
		decode[2*i+1] = 1
	}
	return decode
}

// ToSRGB converts a component tuple through the ICC transform, or the
// alternate space when the profile is unusable.
func (cs *PdfColorspaceICCBased) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != cs.N {
		return 0, 0, 0, ErrColorOutOfRange
	}
	if cs.transformer == nil {
		if cs.Alternate != nil {
			return cs.Alternate.ToSRGB(comps)
		}
		return 0, 0, 0, ErrColorOutOfRange
	}
	in := make([]float32, len(comps))
	for i, v := range comps {
		in[i] = float32(clamp01(v))
	}
	r, g, b := cs.transformer.ToSRGB(in)
	return r, g, b, nil
}

// WithIntent returns a converter view using the given rendering intent.
func (cs *PdfColorspaceICCBased) WithIntent(intent icc.RenderingIntent) *PdfColorspaceICCBased {
	if cs.profile == nil {
		return cs
	}
	transformer, err := icc.NewTransformer(cs.profile, intent)
	if err != nil {
		return cs
	}
	out := *cs
	out.transformer = transformer
	return &out
}

// PdfColorspaceIndexed is an indexed color space: integer indices into a
// lookup table of base space component tuples.
type PdfColorspaceIndexed struct {
	Base   PdfColorspace
	HiVal  int
	Lookup []byte
}

func newPdfColorspaceIndexedFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspaceIndexed, error) {
	if arr.Len() != 4 {
		common.Log.Debug("ERROR: Indexed array length %d", arr.Len())
		return nil, core.ErrRangeError
	}
	base, err := NewPdfColorspaceFromPdfObject(arr.Get(1))
	if err != nil {
		return nil, err
	}
	hival, ok := core.GetIntVal(arr.Get(2))
	if !ok || hival < 0 || hival > 255 {
		return nil, core.ErrRangeError
	}

	cs := &PdfColorspaceIndexed{Base: base, HiVal: hival}
	switch t := core.TraceToDirectObject(arr.Get(3)).(type) {
	case *core.PdfObjectString:
		cs.Lookup = t.Bytes()
	case *core.PdfObjectStream:
		data, err := core.DecodeStream(t)
		if err != nil {
			return nil, err
		}
		cs.Lookup = data
	default:
		common.Log.Debug("ERROR: Indexed lookup not a string or stream (%T)", t)
		return nil, core.ErrTypeError
	}

	if want := (hival + 1) * base.GetNumComponents(); len(cs.Lookup) < want {
		common.Log.Debug("ERROR: Indexed lookup too short: %d < %d", len(cs.Lookup), want)
	}
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceIndexed) String() string { return "Indexed" }

// GetNumComponents returns the number of input components (1, the index).
func (cs *PdfColorspaceIndexed) GetNumComponents() int { return 1 }

// DecodeArray returns the index range of the colorspace.
func (cs *PdfColorspaceIndexed) DecodeArray() []float64 {
	return []float64{0, float64(cs.HiVal)}
}

// ToSRGB maps the index through the lookup table and converts through the
// base space. Out of range indices clamp.
func (cs *PdfColorspaceIndexed) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 1 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	idx := int(comps[0])
	if idx < 0 {
		idx = 0
	}
	if idx > cs.HiVal {
		idx = cs.HiVal
	}
	n := cs.Base.GetNumComponents()
	baseComps := make([]float64, n)
	decode := cs.Base.DecodeArray()
	for i := 0; i < n; i++ {
		pos := idx*n + i
		var raw float64
		if pos < len(cs.Lookup) {
			raw = float64(cs.Lookup[pos]) / 255
		}
		// Lookup bytes span the base decode range.
		lo, hi := decode[2*i], decode[2*i+1]
		baseComps[i] = lo + raw*(hi-lo)
	}
	return cs.Base.ToSRGB(baseComps)
}

// PdfColorspaceSeparation is a single-colorant space with a tint
// transform into an alternate space.
type PdfColorspaceSeparation struct {
	ColorantName  string
	AlternateSpace PdfColorspace
	TintTransform Function
}

func newPdfColorspaceSeparationFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspaceSeparation, error) {
	if arr.Len() != 4 {
		common.Log.Debug("ERROR: Separation array length %d", arr.Len())
		return nil, core.ErrRangeError
	}
	cs := &PdfColorspaceSeparation{}
	if name, ok := core.GetNameVal(arr.Get(1)); ok {
		cs.ColorantName = name
	}
	alternate, err := NewPdfColorspaceFromPdfObject(arr.Get(2))
	if err != nil {
		return nil, err
	}
	cs.AlternateSpace = alternate
	cs.TintTransform = functionForObject(arr.Get(3))
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceSeparation) String() string { return "Separation" }

// GetNumComponents returns the number of input components (1, the tint).
func (cs *PdfColorspaceSeparation) GetNumComponents() int { return 1 }

// DecodeArray returns the tint range of the colorspace.
func (cs *PdfColorspaceSeparation) DecodeArray() []float64 { return []float64{0, 1} }

// ToSRGB evaluates the tint transform and converts through the alternate
// space.
func (cs *PdfColorspaceSeparation) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != 1 {
		return 0, 0, 0, ErrColorOutOfRange
	}
	if cs.TintTransform == nil || cs.AlternateSpace == nil {
		v := uint8((1 - clamp01(comps[0])) * 255)
		return v, v, v, nil
	}
	alt, err := cs.TintTransform.Evaluate([]float64{clamp01(comps[0])})
	if err != nil {
		common.Log.Debug("ERROR: tint transform: %v", err)
		return 0, 0, 0, err
	}
	return cs.AlternateSpace.ToSRGB(alt)
}

// PdfColorspaceDeviceN is a multi-colorant space with a tint transform
// into an alternate space.
type PdfColorspaceDeviceN struct {
	ColorantNames  []string
	AlternateSpace PdfColorspace
	TintTransform  Function
}

func newPdfColorspaceDeviceNFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspaceDeviceN, error) {
	if arr.Len() < 4 {
		common.Log.Debug("ERROR: DeviceN array length %d", arr.Len())
		return nil, core.ErrRangeError
	}
	cs := &PdfColorspaceDeviceN{}
	names, ok := core.GetArray(arr.Get(1))
	if !ok {
		return nil, core.ErrTypeError
	}
	for _, obj := range names.Elements() {
		name, _ := core.GetNameVal(obj)
		cs.ColorantNames = append(cs.ColorantNames, name)
	}
	alternate, err := NewPdfColorspaceFromPdfObject(arr.Get(2))
	if err != nil {
		return nil, err
	}
	cs.AlternateSpace = alternate
	cs.TintTransform = functionForObject(arr.Get(3))
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspaceDeviceN) String() string { return "DeviceN" }

// GetNumComponents returns the number of colorants.
func (cs *PdfColorspaceDeviceN) GetNumComponents() int { return len(cs.ColorantNames) }

// DecodeArray returns the component ranges of the colorspace.
func (cs *PdfColorspaceDeviceN) DecodeArray() []float64 {
	decode := make([]float64, 2*len(cs.ColorantNames))
	for i := range cs.ColorantNames {
		decode[2*i+1] = 1
	}
	return decode
}

// ToSRGB evaluates the tint transform and converts through the alternate
// space.
func (cs *PdfColorspaceDeviceN) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if len(comps) != len(cs.ColorantNames) {
		return 0, 0, 0, ErrColorOutOfRange
	}
	if cs.TintTransform == nil || cs.AlternateSpace == nil {
		return 0, 0, 0, ErrColorOutOfRange
	}
	in := make([]float64, len(comps))
	for i, v := range comps {
		in[i] = clamp01(v)
	}
	alt, err := cs.TintTransform.Evaluate(in)
	if err != nil {
		common.Log.Debug("ERROR: tint transform: %v", err)
		return 0, 0, 0, err
	}
	return cs.AlternateSpace.ToSRGB(alt)
}

// PdfColorspacePattern is the Pattern color space. It resolves to pattern
// content delegated to the canvas, not to a sampler; ToSRGB is only a
// placeholder for degenerate content streams that paint with an
// unresolved pattern.
type PdfColorspacePattern struct {
	UnderlyingCS PdfColorspace
}

func newPdfColorspacePatternFromPdfObject(arr *core.PdfObjectArray) (*PdfColorspacePattern, error) {
	cs := &PdfColorspacePattern{}
	if arr.Len() > 1 {
		under, err := NewPdfColorspaceFromPdfObject(arr.Get(1))
		if err != nil {
			return nil, err
		}
		cs.UnderlyingCS = under
	}
	return cs, nil
}

// String returns the name of the colorspace.
func (cs *PdfColorspacePattern) String() string { return "Pattern" }

// GetNumComponents returns the number of components of the underlying
// space, or 1.
func (cs *PdfColorspacePattern) GetNumComponents() int {
	if cs.UnderlyingCS != nil {
		return cs.UnderlyingCS.GetNumComponents()
	}
	return 1
}

// DecodeArray returns the underlying component ranges.
func (cs *PdfColorspacePattern) DecodeArray() []float64 {
	if cs.UnderlyingCS != nil {
		return cs.UnderlyingCS.DecodeArray()
	}
	return []float64{0, 1}
}

// ToSRGB delegates to the underlying space when present.
func (cs *PdfColorspacePattern) ToSRGB(comps []float64) (uint8, uint8, uint8, error) {
	if cs.UnderlyingCS != nil {
		return cs.UnderlyingCS.ToSRGB(comps)
	}
	return 0, 0, 0, nil
}

// functionForObject resolves a PDF function object through the registered
// function loader. The function engine is an external collaborator.
var functionLoader func(obj core.PdfObject) (Function, error)

// RegisterFunctionLoader installs the loader used to resolve tint
// transform function objects.
func RegisterFunctionLoader(loader func(obj core.PdfObject) (Function, error)) {
	functionLoader = loader
}

func functionForObject(obj core.PdfObject) Function {
	if functionLoader == nil {
		common.Log.Debug("ERROR: no function loader registered")
		return nil
	}
	fn, err := functionLoader(obj)
	if err != nil {
		common.Log.Debug("ERROR: loading function: %v", err)
		return nil
	}
	return fn
}
