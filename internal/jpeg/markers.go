/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package jpeg

import (
	"errors"

	"github.com/pixelpdf/pixelpdf/common"
)

var (
	errTruncated   = errors.New("jpeg: truncated data")
	errMalformed   = errors.New("jpeg: malformed structure")
	errUnsupported = errors.New("jpeg: unsupported variant")
	errMissing     = errors.New("jpeg: missing table")
)

// JPEG markers (ITU T.81 table B.1).
const (
	markerSOF0  = 0xc0 // baseline
	markerSOF1  = 0xc1 // extended sequential
	markerSOF2  = 0xc2 // progressive
	markerDHT   = 0xc4
	markerRST0  = 0xd0
	markerRST7  = 0xd7
	markerSOI   = 0xd8
	markerEOI   = 0xd9
	markerSOS   = 0xda
	markerDQT   = 0xdb
	markerDRI   = 0xdd
	markerAPP14 = 0xee
)

// scanComponent is one component entry of an SOS header.
type scanComponent struct {
	index   int // index into Decoder.components
	dcTable int
	acTable int
}

// scanSpec is a parsed SOS header: the component selection and the
// spectral/successive approximation parameters. Baseline scans have
// ss=0, se=63, ah=0, al=0.
type scanSpec struct {
	components []scanComponent
	ss, se     int
	ah, al     int
}

// parseSegments walks the marker stream up to the first SOS, filling the
// decoder tables and frame header. The stream offset of the entropy-coded
// data is stored in d.scanDataPos.
func (d *Decoder) parseSegments() error {
	data := d.data
	if len(data) < 2 || data[0] != 0xff || data[1] != markerSOI {
		common.Log.Debug("ERROR: missing SOI")
		return errMalformed
	}
	pos := 2
	for {
		if pos+4 > len(data) {
			return errTruncated
		}
		if data[pos] != 0xff {
			// Tolerate fill bytes before markers.
			pos++
			continue
		}
		marker := data[pos+1]
		pos += 2
		if marker == 0xff {
			pos--
			continue
		}
		if marker == markerEOI {
			return errTruncated // EOI before any scan
		}

		if pos+2 > len(data) {
			return errTruncated
		}
		length := int(data[pos])<<8 | int(data[pos+1])
		if length < 2 || pos+length > len(data) {
			return errTruncated
		}
		segment := data[pos+2 : pos+length]

		switch {
		case marker == markerSOF0 || marker == markerSOF1 || marker == markerSOF2:
			if err := d.parseSOF(segment, marker == markerSOF2); err != nil {
				return err
			}
		case marker >= 0xc3 && marker <= 0xcf && marker != markerDHT && marker != 0xc8:
			common.Log.Debug("ERROR: unsupported SOF%d (arithmetic or hierarchical)", marker-0xc0)
			return errUnsupported
		case marker == markerDQT:
			if err := d.parseDQT(segment); err != nil {
				return err
			}
		case marker == markerDHT:
			if err := d.parseDHT(segment); err != nil {
				return err
			}
		case marker == markerDRI:
			if len(segment) < 2 {
				return errTruncated
			}
			d.restartInterval = int(segment[0])<<8 | int(segment[1])
		case marker == markerSOS:
			scan, err := d.parseSOS(segment)
			if err != nil {
				return err
			}
			d.scan = scan
			d.scanDataPos = pos + length
			return nil
		case marker == markerAPP14:
			d.parseAdobe(segment)
		default:
			// APPn/COM and other segments are skipped.
		}
		pos += length
	}
}

// parseSOF records the frame header: precision, dimensions and component
// sampling factors.
func (d *Decoder) parseSOF(segment []byte, progressive bool) error {
	if len(segment) < 6 {
		return errTruncated
	}
	precision := int(segment[0])
	if precision != 8 {
		common.Log.Debug("ERROR: sample precision %d", precision)
		return errUnsupported
	}
	d.height = int(segment[1])<<8 | int(segment[2])
	d.width = int(segment[3])<<8 | int(segment[4])
	if d.width == 0 || d.height == 0 {
		return errMalformed
	}
	n := int(segment[5])
	if n != 1 && n != 3 && n != 4 {
		common.Log.Debug("ERROR: %d components", n)
		return errUnsupported
	}
	if len(segment) < 6+3*n {
		return errTruncated
	}
	d.progressive = progressive
	d.components = make([]component, n)
	for i := 0; i < n; i++ {
		c := &d.components[i]
		c.id = segment[6+3*i]
		c.h = int(segment[7+3*i]) >> 4
		c.v = int(segment[7+3*i]) & 0x0f
		c.quantID = int(segment[8+3*i])
		if c.h < 1 || c.h > 4 || c.v < 1 || c.v > 4 || c.quantID > 3 {
			return errMalformed
		}
	}
	return nil
}

// parseDQT reads one or more quantization tables: precision/id byte then
// 64 values in zig-zag order.
func (d *Decoder) parseDQT(segment []byte) error {
	pos := 0
	for pos < len(segment) {
		pq := int(segment[pos]) >> 4
		tq := int(segment[pos]) & 0x0f
		pos++
		if tq > 3 || pq > 1 {
			return errMalformed
		}
		var table [64]uint16
		if pq == 0 {
			if pos+64 > len(segment) {
				return errTruncated
			}
			for i := 0; i < 64; i++ {
				table[i] = uint16(segment[pos+i])
			}
			pos += 64
		} else {
			if pos+128 > len(segment) {
				return errTruncated
			}
			for i := 0; i < 64; i++ {
				table[i] = uint16(segment[pos+2*i])<<8 | uint16(segment[pos+2*i+1])
			}
			pos += 128
		}
		d.quant[tq] = &table
	}
	return nil
}

// parseDHT reads one or more Huffman tables and builds their canonical
// decoders.
func (d *Decoder) parseDHT(segment []byte) error {
	pos := 0
	for pos < len(segment) {
		if pos+17 > len(segment) {
			return errTruncated
		}
		class := int(segment[pos]) >> 4
		id := int(segment[pos]) & 0x0f
		pos++
		if class > 1 || id > 3 {
			return errMalformed
		}
		var bits [16]int
		total := 0
		for i := 0; i < 16; i++ {
			bits[i] = int(segment[pos+i])
			total += bits[i]
		}
		pos += 16
		if pos+total > len(segment) {
			return errTruncated
		}
		values := make([]byte, total)
		copy(values, segment[pos:pos+total])
		pos += total

		table, err := buildHuffTable(bits, values)
		if err != nil {
			return err
		}
		if class == 0 {
			d.huffDC[id] = table
		} else {
			d.huffAC[id] = table
		}
	}
	return nil
}

// parseSOS reads a scan header.
func (d *Decoder) parseSOS(segment []byte) (*scanSpec, error) {
	if len(segment) < 1 {
		return nil, errTruncated
	}
	n := int(segment[0])
	if n < 1 || n > 4 || len(segment) < 1+2*n+3 {
		return nil, errMalformed
	}
	scan := &scanSpec{}
	for i := 0; i < n; i++ {
		id := segment[1+2*i]
		tables := segment[2+2*i]
		idx := -1
		for j := range d.components {
			if d.components[j].id == id {
				idx = j
			}
		}
		if idx < 0 {
			common.Log.Debug("ERROR: scan references unknown component %d", id)
			return nil, errMalformed
		}
		scan.components = append(scan.components, scanComponent{
			index:   idx,
			dcTable: int(tables) >> 4,
			acTable: int(tables) & 0x0f,
		})
	}
	scan.ss = int(segment[1+2*n])
	scan.se = int(segment[2+2*n])
	scan.ah = int(segment[3+2*n]) >> 4
	scan.al = int(segment[3+2*n]) & 0x0f
	if scan.ss > 63 || scan.se > 63 || scan.se < scan.ss {
		return nil, errMalformed
	}
	return scan, nil
}

// parseAdobe records the APP14 Adobe color transform code.
func (d *Decoder) parseAdobe(segment []byte) {
	if len(segment) >= 12 && string(segment[:5]) == "Adobe" {
		d.adobeTransform = int(segment[11])
		d.hasAdobe = true
	}
}

// nextMarker scans for the next marker at or after `pos`, skipping stuffed
// bytes.
func nextMarker(data []byte, pos int) (byte, int) {
	for pos+1 < len(data) {
		if data[pos] == 0xff && data[pos+1] != 0x00 && data[pos+1] != 0xff {
			return data[pos+1], pos + 2
		}
		pos++
	}
	return 0, len(data)
}
