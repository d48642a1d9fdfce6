/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package jpeg decodes baseline and progressive JPEG images (ITU T.81) as
// found in DCTDecode streams, producing interleaved 8-bit rows on demand.
// Arithmetic coding and hierarchical frames are not supported.
package jpeg

import (
	"github.com/pixelpdf/pixelpdf/common"
)

// ColorModel describes the color interpretation of the decoder output.
type ColorModel int

// Output color models.
const (
	ColorGray ColorModel = iota
	ColorRGB
	ColorCMYK
)

// component is one frame component with its decode state and band buffers.
type component struct {
	id      byte
	h, v    int
	quantID int

	dequant *dequantTable

	// Current scan entropy state.
	dcTable, acTable int
	prevDC           int32

	// Full-image block dimensions at component resolution.
	blocksPerLine int
	blocksPerCol  int

	// coeffs holds all dequantizable coefficients for progressive frames,
	// 64 per block in natural order.
	coeffs []int32

	// samples is the band buffer at component resolution:
	// blocksPerLine*8 x v*8.
	samples []byte

	// plane is the upsampled band at full resolution.
	plane []byte
}

// Decoder decodes a JPEG byte stream row by row. Headers are parsed and
// lookup tables built lazily on the first row read (or metadata query).
type Decoder struct {
	data []byte

	width, height int
	progressive   bool
	components    []component

	quant  [4]*[64]uint16
	huffDC [4]*huffTable
	huffAC [4]*huffTable

	restartInterval int
	adobeTransform  int
	hasAdobe        bool

	scan        *scanSpec
	scanDataPos int

	// Derived decoding parameters.
	hMax, vMax         int
	mcuWidth, mcuHeight int
	mcuCols, mcuRows    int

	bits bitReader

	initialized bool
	err         error

	// Band state: the decoder produces one MCU row of output rows at a
	// time.
	band     []byte
	bandRows int
	bandRow  int
	mcuRow   int

	restartCountdown int
	eobRun           int

	currentRow       int
	outputComponents int
	colorModel       ColorModel
}

// NewDecoder returns a Decoder over the JPEG data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data, adobeTransform: -1}
}

// Width returns the image width in pixels.
func (d *Decoder) Width() int {
	d.init()
	return d.width
}

// Height returns the image height in pixels.
func (d *Decoder) Height() int {
	d.init()
	return d.height
}

// Components returns the number of frame components.
func (d *Decoder) Components() int {
	d.init()
	return len(d.components)
}

// OutputComponents returns the number of interleaved components per output
// pixel: 1 for grayscale, 3 for RGB, 4 for CMYK.
func (d *Decoder) OutputComponents() int {
	d.init()
	return d.outputComponents
}

// ColorSpace returns the color model of the output rows.
func (d *Decoder) ColorSpace() ColorModel {
	d.init()
	return d.colorModel
}

// CurrentRow returns the index of the next row TryReadRow will produce.
func (d *Decoder) CurrentRow() int {
	return d.currentRow
}

// Err returns the error that ended decoding, if any.
func (d *Decoder) Err() error {
	return d.err
}

// init parses the headers, derives the decoding parameters and allocates
// the band buffers. Progressive frames decode all scans into coefficient
// buffers here; band IDCT stays lazy.
func (d *Decoder) init() {
	if d.initialized || d.err != nil {
		return
	}
	d.initialized = true

	if err := d.parseSegments(); err != nil {
		d.fail(err)
		return
	}
	if d.scan == nil || len(d.components) == 0 {
		d.fail(errMalformed)
		return
	}

	d.hMax, d.vMax = 1, 1
	for i := range d.components {
		if d.components[i].h > d.hMax {
			d.hMax = d.components[i].h
		}
		if d.components[i].v > d.vMax {
			d.vMax = d.components[i].v
		}
	}
	d.mcuWidth = d.hMax * 8
	d.mcuHeight = d.vMax * 8
	d.mcuCols = (d.width + d.mcuWidth - 1) / d.mcuWidth
	d.mcuRows = (d.height + d.mcuHeight - 1) / d.mcuHeight

	for i := range d.components {
		c := &d.components[i]
		raw := d.quant[c.quantID]
		if raw == nil {
			d.fail(errMissing)
			return
		}
		c.dequant = makeDequantTable(raw)
		c.blocksPerLine = d.mcuCols * c.h
		c.blocksPerCol = d.mcuRows * c.v
		c.samples = make([]byte, c.blocksPerLine*8*c.v*8)
		c.plane = make([]byte, d.mcuCols*d.mcuWidth*d.mcuHeight)
	}

	d.outputComponents, d.colorModel = d.outputFormat()
	d.band = make([]byte, d.mcuCols*d.mcuWidth*d.mcuHeight*d.outputComponents)

	if d.progressive {
		for i := range d.components {
			c := &d.components[i]
			c.coeffs = make([]int32, c.blocksPerLine*c.blocksPerCol*64)
		}
		if err := d.decodeProgressiveScans(); err != nil {
			d.fail(err)
			return
		}
	} else {
		for _, sc := range d.scan.components {
			d.components[sc.index].dcTable = sc.dcTable
			d.components[sc.index].acTable = sc.acTable
		}
		d.bits = newBitReader(d.data, d.scanDataPos)
		d.restartCountdown = d.restartInterval
	}
}

// fail records a decode-fatal error; the row iterator signals end.
func (d *Decoder) fail(err error) {
	common.Log.Debug("ERROR: jpeg decode: %v", err)
	if d.err == nil {
		d.err = err
	}
}

// outputFormat picks the output layout from the component count and the
// Adobe transform marker.
func (d *Decoder) outputFormat() (int, ColorModel) {
	switch len(d.components) {
	case 1:
		return 1, ColorGray
	case 4:
		return 4, ColorCMYK
	default:
		return 3, ColorRGB
	}
}

// TryReadRow copies the next row of interleaved samples into `dst` and
// advances the row cursor. It returns false when all rows have been
// produced or decoding failed. `dst` must hold at least
// Width()*OutputComponents() bytes.
func (d *Decoder) TryReadRow(dst []byte) bool {
	d.init()
	if d.err != nil || d.currentRow >= d.height {
		return false
	}

	if d.bandRow >= d.bandRows {
		if !d.produceBand() {
			return false
		}
	}

	stride := d.width * d.outputComponents
	offset := d.bandRow * d.mcuCols * d.mcuWidth * d.outputComponents
	copy(dst[:stride], d.band[offset:offset+stride])
	d.bandRow++
	d.currentRow++
	return true
}

// DecodeAll decodes the remaining rows into a single buffer of
// Width()*OutputComponents() bytes per row.
func (d *Decoder) DecodeAll() ([]byte, error) {
	d.init()
	if d.err != nil {
		return nil, d.err
	}
	stride := d.width * d.outputComponents
	out := make([]byte, stride*d.height)
	for row := d.currentRow; row < d.height; row++ {
		if !d.TryReadRow(out[row*stride:]) {
			if d.err != nil {
				return nil, d.err
			}
			break
		}
	}
	return out, nil
}

// produceBand decodes the next MCU row into the band buffer: entropy
// decode (baseline) or coefficient fetch (progressive), dequantize, IDCT,
// upsample and color convert.
func (d *Decoder) produceBand() bool {
	if d.mcuRow >= d.mcuRows {
		return false
	}

	var err error
	if d.progressive {
		err = d.bandFromCoefficients(d.mcuRow)
	} else {
		err = d.decodeBaselineMCURow(d.mcuRow)
	}
	if err != nil {
		d.fail(err)
		return false
	}

	d.upsampleBand()
	d.convertBand()

	rows := d.mcuHeight
	if remaining := d.height - d.mcuRow*d.mcuHeight; remaining < rows {
		rows = remaining
	}
	d.bandRows = rows
	d.bandRow = 0
	d.mcuRow++
	return true
}
