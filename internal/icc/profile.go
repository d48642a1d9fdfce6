/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package icc parses ICC v2/v4 color profiles and evaluates their
// transforms to sRGB. iccMAX (v5) profiles are not supported.
package icc

import (
	"encoding/binary"
	"errors"

	"github.com/pixelpdf/pixelpdf/common"
)

var (
	errTruncated   = errors.New("icc: truncated profile")
	errMalformed   = errors.New("icc: malformed structure")
	ErrUnsupported = errors.New("icc: unsupported profile version")
)

// Tag and type signatures used by the parser. ICC data is big-endian
// throughout.
const (
	sigAcsp = 0x61637370 // 'acsp'

	sigGray = 0x47524159 // 'GRAY'
	sigRGB  = 0x52474220 // 'RGB '
	sigCMYK = 0x434d594b // 'CMYK'
	sigLab  = 0x4c616220 // 'Lab '
	sigXYZ  = 0x58595a20 // 'XYZ '

	tagWtpt = 0x77747074 // 'wtpt'
	tagBkpt = 0x626b7074 // 'bkpt'
	tagRXYZ = 0x7258595a // 'rXYZ'
	tagGXYZ = 0x6758595a // 'gXYZ'
	tagBXYZ = 0x6258595a // 'bXYZ'
	tagRTRC = 0x72545243 // 'rTRC'
	tagGTRC = 0x67545243 // 'gTRC'
	tagBTRC = 0x62545243 // 'bTRC'
	tagKTRC = 0x6b545243 // 'kTRC'
	tagA2B0 = 0x41324230 // 'A2B0'
	tagA2B1 = 0x41324231 // 'A2B1'
	tagA2B2 = 0x41324232 // 'A2B2'

	typeCurv = 0x63757276 // 'curv'
	typePara = 0x70617261 // 'para'
	typeXYZ  = 0x58595a20 // 'XYZ '
	typeMft1 = 0x6d667431 // 'mft1'
	typeMft2 = 0x6d667432 // 'mft2'
	typeMAB  = 0x6d414220 // 'mAB '
)

const headerSize = 128

// Header is the fixed 128 byte ICC profile header.
type Header struct {
	Size            uint32
	CMMType         uint32
	Version         uint32
	DeviceClass     uint32
	ColorSpace      uint32
	PCS             uint32
	Created         [6]uint16
	Platform        uint32
	Flags           uint32
	Manufacturer    uint32
	Model           uint32
	Attributes      uint64
	RenderingIntent uint32
	Illuminant      [3]float64
	Creator         uint32
}

// MajorVersion returns the major profile version from the packed BCD
// version field.
func (h *Header) MajorVersion() int {
	return int(h.Version >> 24)
}

type tagEntry struct {
	sig    uint32
	offset uint32
	size   uint32
}

// Profile is a parsed ICC profile with the tags the transform evaluator
// needs decoded.
type Profile struct {
	Header Header

	data []byte
	tags []tagEntry

	// WhitePoint is the media white point from wtpt, profile-referred.
	WhitePoint [3]float64

	// TRC holds the per-channel tone curves: index 0..2 for rTRC/gTRC/bTRC
	// of RGB profiles, index 0 for the kTRC of gray profiles.
	TRC [3]*Curve

	// MatrixRGB holds the rXYZ/gXYZ/bXYZ columns of shaper-matrix
	// profiles, row-major.
	MatrixRGB [3][3]float64
	HasMatrix bool

	// A2B holds the decoded A2B0/A2B1/A2B2 pipelines, indexed by intent.
	A2B [3]*LutPipeline
}

// Parse reads an ICC profile from `data`. Profiles with major version 5
// (iccMAX) return ErrUnsupported. Malformed tags degrade to nil entries;
// callers fall back to the alternate color space.
func Parse(data []byte) (*Profile, error) {
	if len(data) < headerSize+4 {
		return nil, errTruncated
	}
	p := &Profile{data: data}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	if err := p.parseTagDirectory(); err != nil {
		return nil, err
	}
	p.decodeKnownTags()
	return p, nil
}

func (p *Profile) parseHeader() error {
	b := p.data
	h := &p.Header
	h.Size = binary.BigEndian.Uint32(b[0:])
	h.CMMType = binary.BigEndian.Uint32(b[4:])
	h.Version = binary.BigEndian.Uint32(b[8:])
	h.DeviceClass = binary.BigEndian.Uint32(b[12:])
	h.ColorSpace = binary.BigEndian.Uint32(b[16:])
	h.PCS = binary.BigEndian.Uint32(b[20:])
	for i := 0; i < 6; i++ {
		h.Created[i] = binary.BigEndian.Uint16(b[24+2*i:])
	}
	// The 'acsp' signature check is lenient: real-world profiles have been
	// seen with a zeroed signature field.
	if sig := binary.BigEndian.Uint32(b[36:]); sig != sigAcsp && sig != 0 {
		common.Log.Debug("ERROR: ICC signature 0x%08x != 'acsp'", sig)
		return errMalformed
	}
	h.Platform = binary.BigEndian.Uint32(b[40:])
	h.Flags = binary.BigEndian.Uint32(b[44:])
	h.Manufacturer = binary.BigEndian.Uint32(b[48:])
	h.Model = binary.BigEndian.Uint32(b[52:])
	h.Attributes = binary.BigEndian.Uint64(b[56:])
	h.RenderingIntent = binary.BigEndian.Uint32(b[64:])
	for i := 0; i < 3; i++ {
		h.Illuminant[i] = s15Fixed16(b[68+4*i:])
	}
	h.Creator = binary.BigEndian.Uint32(b[80:])

	if h.MajorVersion() >= 5 {
		common.Log.Debug("ERROR: iccMAX profile (version %d)", h.MajorVersion())
		return ErrUnsupported
	}
	return nil
}

func (p *Profile) parseTagDirectory() error {
	count := binary.BigEndian.Uint32(p.data[headerSize:])
	if count > 1024 {
		return errMalformed
	}
	pos := headerSize + 4
	if pos+int(count)*12 > len(p.data) {
		return errTruncated
	}
	for i := 0; i < int(count); i++ {
		entry := tagEntry{
			sig:    binary.BigEndian.Uint32(p.data[pos:]),
			offset: binary.BigEndian.Uint32(p.data[pos+4:]),
			size:   binary.BigEndian.Uint32(p.data[pos+8:]),
		}
		pos += 12
		if int(entry.offset)+int(entry.size) > len(p.data) || entry.size < 4 {
			common.Log.Debug("ERROR: ICC tag %08x out of bounds", entry.sig)
			continue
		}
		p.tags = append(p.tags, entry)
	}
	return nil
}

// tag returns the payload of the first tag with signature `sig`.
func (p *Profile) tag(sig uint32) []byte {
	for _, t := range p.tags {
		if t.sig == sig {
			return p.data[t.offset : t.offset+t.size]
		}
	}
	return nil
}

// decodeKnownTags decodes the tags the transform evaluator consumes.
// Failures leave nil entries behind.
func (p *Profile) decodeKnownTags() {
	if wp, ok := decodeXYZ(p.tag(tagWtpt)); ok {
		p.WhitePoint = wp
	} else {
		p.WhitePoint = illuminantD50
	}

	r, okR := decodeXYZ(p.tag(tagRXYZ))
	g, okG := decodeXYZ(p.tag(tagGXYZ))
	b, okB := decodeXYZ(p.tag(tagBXYZ))
	if okR && okG && okB {
		// Columns to row-major matrix.
		for row := 0; row < 3; row++ {
			p.MatrixRGB[row] = [3]float64{r[row], g[row], b[row]}
		}
		p.HasMatrix = true
	}

	if p.Header.ColorSpace == sigGray {
		p.TRC[0] = decodeCurve(p.tag(tagKTRC))
	} else {
		p.TRC[0] = decodeCurve(p.tag(tagRTRC))
		p.TRC[1] = decodeCurve(p.tag(tagGTRC))
		p.TRC[2] = decodeCurve(p.tag(tagBTRC))
	}

	for i, sig := range []uint32{tagA2B0, tagA2B1, tagA2B2} {
		if data := p.tag(sig); data != nil {
			pipeline, err := decodeLut(data)
			if err != nil {
				common.Log.Debug("ERROR: ICC A2B%d: %v", i, err)
				continue
			}
			p.A2B[i] = pipeline
		}
	}
}

// HasA2B returns true if the profile carries any A to B pipeline.
func (p *Profile) HasA2B() bool {
	return p.A2B[0] != nil || p.A2B[1] != nil || p.A2B[2] != nil
}

// Channels returns the number of device channels of the profile data color
// space, or 0 when the space is not recognized.
func (p *Profile) Channels() int {
	switch p.Header.ColorSpace {
	case sigGray:
		return 1
	case sigRGB, sigLab:
		return 3
	case sigCMYK:
		return 4
	}
	return 0
}

// decodeXYZ reads an XYZType tag: type signature, reserved, then three
// s15Fixed16 values.
func decodeXYZ(data []byte) ([3]float64, bool) {
	var out [3]float64
	if len(data) < 20 || binary.BigEndian.Uint32(data) != typeXYZ {
		return out, false
	}
	for i := 0; i < 3; i++ {
		out[i] = s15Fixed16(data[8+4*i:])
	}
	return out, true
}

// decodeCurve reads a curv or para tag into a Curve. Returns nil on
// malformed data.
func decodeCurve(data []byte) *Curve {
	if len(data) < 12 {
		return nil
	}
	switch binary.BigEndian.Uint32(data) {
	case typeCurv:
		count := int(binary.BigEndian.Uint32(data[8:]))
		switch count {
		case 0:
			return IdentityCurve()
		case 1:
			if len(data) < 14 {
				return nil
			}
			// u8Fixed8 gamma.
			return GammaCurve(float32(binary.BigEndian.Uint16(data[12:])) / 256)
		default:
			if len(data) < 12+2*count {
				return nil
			}
			samples := make([]float32, count)
			for i := 0; i < count; i++ {
				samples[i] = float32(binary.BigEndian.Uint16(data[12+2*i:])) / 65535
			}
			return SampledCurve(samples)
		}
	case typePara:
		funcType := int(binary.BigEndian.Uint16(data[8:]))
		nParams := []int{1, 3, 4, 5, 7}
		if funcType < 0 || funcType > 4 {
			return nil
		}
		n := nParams[funcType]
		if len(data) < 12+4*n {
			return nil
		}
		params := make([]float32, n)
		for i := 0; i < n; i++ {
			params[i] = float32(s15Fixed16(data[12+4*i:]))
		}
		return ParametricCurve(funcType, params)
	}
	return nil
}

// s15Fixed16 reads a signed 15.16 fixed point number.
func s15Fixed16(b []byte) float64 {
	return float64(int32(binary.BigEndian.Uint32(b))) / 65536
}

// illuminantD50 is the ICC PCS illuminant.
var illuminantD50 = [3]float64{0.9642, 1.0, 0.8249}
