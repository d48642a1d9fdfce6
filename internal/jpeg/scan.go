/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package jpeg

import (
	"github.com/pixelpdf/pixelpdf/common"
)

// decodeBaselineMCURow entropy-decodes one row of MCUs, dequantizes,
// applies the IDCT and stores the samples into the component band buffers.
func (d *Decoder) decodeBaselineMCURow(mcuRow int) error {
	for mcuCol := 0; mcuCol < d.mcuCols; mcuCol++ {
		if d.restartInterval > 0 && d.restartCountdown == 0 {
			if err := d.processRestart(); err != nil {
				return err
			}
			d.restartCountdown = d.restartInterval
		}

		for _, sc := range d.scan.components {
			c := &d.components[sc.index]
			for by := 0; by < c.v; by++ {
				for bx := 0; bx < c.h; bx++ {
					var block Block8x8F
					if err := d.decodeBaselineBlock(c, &block); err != nil {
						return err
					}
					block.idct()
					stride := c.blocksPerLine * 8
					x := (mcuCol*c.h + bx) * 8
					y := by * 8
					block.samples(c.samples[y*stride+x:], stride)
				}
			}
		}

		if d.restartInterval > 0 {
			d.restartCountdown--
		}
	}
	return nil
}

// decodeBaselineBlock reads one block: DC category plus signed diff, then
// AC run/size pairs. Coefficients are placed in natural order through the
// zig-zag lookup and dequantized with the premultiplied table.
func (d *Decoder) decodeBaselineBlock(c *component, block *Block8x8F) error {
	dcTable := d.huffDC[c.dcTable]
	acTable := d.huffAC[c.acTable]
	if dcTable == nil || acTable == nil {
		return errMissing
	}

	t, ok := dcTable.decode(&d.bits)
	if !ok {
		return errTruncated
	}
	diff, ok := d.bits.readSigned(int(t))
	if !ok {
		return errTruncated
	}
	dc := c.prevDC + diff
	c.prevDC = dc
	block.setIdx(0, float32(dc)*c.dequant[0])

	for k := 1; k < 64; {
		rs, ok := acTable.decode(&d.bits)
		if !ok {
			return errTruncated
		}
		r, s := int(rs>>4), int(rs&0x0f)
		if s == 0 {
			if r != 15 {
				break // EOB
			}
			k += 16 // ZRL
			continue
		}
		k += r
		if k > 63 {
			common.Log.Debug("ERROR: AC index %d out of range", k)
			return errMalformed
		}
		v, ok := d.bits.readSigned(s)
		if !ok {
			return errTruncated
		}
		n := zigzagToNatural[k]
		block.setIdx(n, float32(v)*c.dequant[n])
		k++
	}
	return nil
}

// processRestart aligns to a byte boundary, consumes the expected RSTn
// marker and resets the DC predictors and the EOB run.
func (d *Decoder) processRestart() error {
	d.bits.align()
	marker, pos := nextMarker(d.data, d.bits.markerPos())
	if marker < markerRST0 || marker > markerRST7 {
		common.Log.Debug("ERROR: expected RSTn, got 0x%02x", marker)
		return errMalformed
	}
	d.bits.reset(pos)
	for i := range d.components {
		d.components[i].prevDC = 0
	}
	d.eobRun = 0
	return nil
}

// decodeProgressiveScans decodes every scan of a progressive frame into
// the per-component coefficient buffers.
func (d *Decoder) decodeProgressiveScans() error {
	scan := d.scan
	pos := d.scanDataPos
	for {
		endPos, err := d.decodeProgressiveScan(scan, pos)
		if err != nil {
			return err
		}

		// Walk the tables between scans until the next SOS or EOI.
		done := false
		for !done {
			marker, next := nextMarker(d.data, endPos)
			switch {
			case marker == markerSOS:
				if next+2 > len(d.data) {
					return errTruncated
				}
				length := int(d.data[next])<<8 | int(d.data[next+1])
				if next+length > len(d.data) {
					return errTruncated
				}
				var err error
				scan, err = d.parseSOS(d.data[next+2 : next+length])
				if err != nil {
					return err
				}
				pos = next + length
				done = true
			case marker == markerDHT:
				if next+2 > len(d.data) {
					return errTruncated
				}
				length := int(d.data[next])<<8 | int(d.data[next+1])
				if next+length > len(d.data) {
					return errTruncated
				}
				if err := d.parseDHT(d.data[next+2 : next+length]); err != nil {
					return err
				}
				endPos = next + length
			case marker == markerDQT:
				if next+2 > len(d.data) {
					return errTruncated
				}
				length := int(d.data[next])<<8 | int(d.data[next+1])
				if next+length > len(d.data) {
					return errTruncated
				}
				if err := d.parseDQT(d.data[next+2 : next+length]); err != nil {
					return err
				}
				endPos = next + length
			case marker == markerDRI:
				if next+4 > len(d.data) {
					return errTruncated
				}
				length := int(d.data[next])<<8 | int(d.data[next+1])
				if length >= 4 {
					d.restartInterval = int(d.data[next+2])<<8 | int(d.data[next+3])
				}
				endPos = next + length
			case marker >= markerRST0 && marker <= markerRST7:
				endPos = next
			case marker == markerEOI || marker == 0:
				return nil
			default:
				// Skip unknown segments.
				if next+2 > len(d.data) {
					return nil
				}
				endPos = next + (int(d.data[next])<<8 | int(d.data[next+1]))
			}
		}
	}
}

// decodeProgressiveScan decodes one scan's coefficient contributions and
// returns the position after its entropy-coded data.
func (d *Decoder) decodeProgressiveScan(scan *scanSpec, pos int) (int, error) {
	for _, sc := range scan.components {
		c := &d.components[sc.index]
		c.dcTable = sc.dcTable
		c.acTable = sc.acTable
		c.prevDC = 0
	}
	d.bits = newBitReader(d.data, pos)
	d.eobRun = 0
	d.restartCountdown = d.restartInterval

	if scan.ss == 0 {
		if err := d.decodeDCScan(scan); err != nil {
			return 0, err
		}
	} else {
		if len(scan.components) != 1 {
			common.Log.Debug("ERROR: AC scan with %d components", len(scan.components))
			return 0, errMalformed
		}
		if err := d.decodeACScan(scan); err != nil {
			return 0, err
		}
	}
	return d.bits.markerPos(), nil
}

// restartIfDue consumes a restart marker after restartInterval MCUs.
func (d *Decoder) restartIfDue() error {
	if d.restartInterval == 0 {
		return nil
	}
	if d.restartCountdown == 0 {
		if err := d.processRestart(); err != nil {
			return err
		}
		d.restartCountdown = d.restartInterval
	}
	d.restartCountdown--
	return nil
}

// decodeDCScan handles both the initial DC pass (ah=0) and DC refinement.
// DC scans may interleave multiple components in MCU order.
func (d *Decoder) decodeDCScan(scan *scanSpec) error {
	interleaved := len(scan.components) > 1
	if !interleaved {
		c := &d.components[scan.components[0].index]
		w, h := c.nonPaddedBlocks(d)
		for by := 0; by < h; by++ {
			for bx := 0; bx < w; bx++ {
				if err := d.restartIfDue(); err != nil {
					return err
				}
				if err := d.decodeDCBlock(c, scan, (by*c.blocksPerLine+bx)*64); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for mcuRow := 0; mcuRow < d.mcuRows; mcuRow++ {
		for mcuCol := 0; mcuCol < d.mcuCols; mcuCol++ {
			if err := d.restartIfDue(); err != nil {
				return err
			}
			for _, sc := range scan.components {
				c := &d.components[sc.index]
				for by := 0; by < c.v; by++ {
					for bx := 0; bx < c.h; bx++ {
						blockRow := mcuRow*c.v + by
						blockCol := mcuCol*c.h + bx
						offset := (blockRow*c.blocksPerLine + blockCol) * 64
						if err := d.decodeDCBlock(c, scan, offset); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

func (d *Decoder) decodeDCBlock(c *component, scan *scanSpec, offset int) error {
	if scan.ah == 0 {
		table := d.huffDC[c.dcTable]
		if table == nil {
			return errMissing
		}
		t, ok := table.decode(&d.bits)
		if !ok {
			return errTruncated
		}
		diff, ok := d.bits.readSigned(int(t))
		if !ok {
			return errTruncated
		}
		c.prevDC += diff
		c.coeffs[offset] = c.prevDC << uint(scan.al)
		return nil
	}

	// Refinement: one bit per existing DC value.
	bit, ok := d.bits.readBit()
	if !ok {
		return errTruncated
	}
	if bit != 0 {
		c.coeffs[offset] |= 1 << uint(scan.al)
	}
	return nil
}

// nonPaddedBlocks returns the component's block dimensions without MCU
// padding, used by non-interleaved scans.
func (c *component) nonPaddedBlocks(d *Decoder) (int, int) {
	w := (d.width*c.h + d.hMax*8 - 1) / (d.hMax * 8)
	h := (d.height*c.v + d.vMax*8 - 1) / (d.vMax * 8)
	return w, h
}

// decodeACScan handles AC first passes and AC refinement over the spectral
// band [ss, se] of a single component.
func (d *Decoder) decodeACScan(scan *scanSpec) error {
	c := &d.components[scan.components[0].index]
	w, h := c.nonPaddedBlocks(d)
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			if err := d.restartIfDue(); err != nil {
				return err
			}
			offset := (by*c.blocksPerLine + bx) * 64
			var err error
			if scan.ah == 0 {
				err = d.decodeACBlockFirst(c, scan, offset)
			} else {
				err = d.decodeACBlockRefine(c, scan, offset)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// decodeACBlockFirst is the initial AC pass with EOB run support: a
// run/size of r|0 with r < 15 starts an EOB run of (1<<r)+bits-1 blocks.
func (d *Decoder) decodeACBlockFirst(c *component, scan *scanSpec, offset int) error {
	if d.eobRun > 0 {
		d.eobRun--
		return nil
	}
	table := d.huffAC[c.acTable]
	if table == nil {
		return errMissing
	}

	for k := scan.ss; k <= scan.se; {
		rs, ok := table.decode(&d.bits)
		if !ok {
			return errTruncated
		}
		r, s := int(rs>>4), int(rs&0x0f)
		if s == 0 {
			if r != 15 {
				extra, ok := d.bits.readBits(r)
				if !ok && r > 0 {
					return errTruncated
				}
				d.eobRun = (1 << uint(r)) + extra - 1
				return nil
			}
			k += 16
			continue
		}
		k += r
		if k > scan.se {
			common.Log.Debug("ERROR: AC band overflow k=%d", k)
			return errMalformed
		}
		v, ok := d.bits.readSigned(s)
		if !ok {
			return errTruncated
		}
		c.coeffs[offset+zigzagToNatural[k]] = v << uint(scan.al)
		k++
	}
	return nil
}

// decodeACBlockRefine is the AC successive approximation refinement pass:
// existing nonzero coefficients receive a correction bit, and new
// magnitude 1 coefficients appear at run positions.
func (d *Decoder) decodeACBlockRefine(c *component, scan *scanSpec, offset int) error {
	table := d.huffAC[c.acTable]
	if table == nil {
		return errMissing
	}
	plus := int32(1) << uint(scan.al)
	minus := -plus

	k := scan.ss
	if d.eobRun == 0 {
		for k <= scan.se {
			rs, ok := table.decode(&d.bits)
			if !ok {
				return errTruncated
			}
			r, s := int(rs>>4), int(rs&0x0f)
			var newVal int32

			switch s {
			case 0:
				if r != 15 {
					extra, ok := d.bits.readBits(r)
					if !ok && r > 0 {
						return errTruncated
					}
					d.eobRun = (1 << uint(r)) + extra
					// The run is consumed below, this block included.
					goto refineRemaining
				}
			case 1:
				bit, ok := d.bits.readBit()
				if !ok {
					return errTruncated
				}
				if bit != 0 {
					newVal = plus
				} else {
					newVal = minus
				}
			default:
				common.Log.Debug("ERROR: AC refinement size %d", s)
				return errMalformed
			}

			// Advance past r zero-history coefficients, refining nonzero
			// ones on the way.
			for k <= scan.se {
				n := zigzagToNatural[k]
				if c.coeffs[offset+n] != 0 {
					if err := d.refineACCoefficient(&c.coeffs[offset+n], plus, minus); err != nil {
						return err
					}
				} else {
					if r == 0 {
						if newVal != 0 {
							c.coeffs[offset+n] = newVal
						}
						k++
						break
					}
					r--
				}
				k++
			}
		}
		return nil
	}

refineRemaining:
	// Inside an EOB run only the already-nonzero coefficients of the band
	// receive correction bits.
	for ; k <= scan.se; k++ {
		n := zigzagToNatural[k]
		if c.coeffs[offset+n] != 0 {
			if err := d.refineACCoefficient(&c.coeffs[offset+n], plus, minus); err != nil {
				return err
			}
		}
	}
	if d.eobRun > 0 {
		d.eobRun--
	}
	return nil
}

// refineACCoefficient applies one correction bit following the sign of the
// existing value.
func (d *Decoder) refineACCoefficient(coeff *int32, plus, minus int32) error {
	bit, ok := d.bits.readBit()
	if !ok {
		return errTruncated
	}
	if bit == 0 {
		return nil
	}
	if *coeff >= 0 {
		*coeff += plus
	} else {
		*coeff += minus
	}
	return nil
}

// bandFromCoefficients produces one MCU row of samples from the
// progressive coefficient buffers: dequantize, IDCT, store.
func (d *Decoder) bandFromCoefficients(mcuRow int) error {
	for i := range d.components {
		c := &d.components[i]
		stride := c.blocksPerLine * 8
		for by := 0; by < c.v; by++ {
			blockRow := mcuRow*c.v + by
			for bx := 0; bx < c.blocksPerLine; bx++ {
				offset := (blockRow*c.blocksPerLine + bx) * 64
				var block Block8x8F
				for n := 0; n < 64; n++ {
					if v := c.coeffs[offset+n]; v != 0 {
						block.setIdx(n, float32(v)*c.dequant[n])
					}
				}
				block.idct()
				block.samples(c.samples[by*8*stride+bx*8:], stride)
			}
		}
	}
	return nil
}
