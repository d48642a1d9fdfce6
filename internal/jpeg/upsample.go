/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package jpeg

// upsampleBand expands each component's band samples to full MCU
// resolution in its plane buffer. Components already at full resolution
// are copied through; the 2x1, 1x2 and 2x2 scale factors take replication
// fast paths and other factors fall back to nearest neighbor.
func (d *Decoder) upsampleBand() {
	fullWidth := d.mcuCols * d.mcuWidth
	for i := range d.components {
		c := &d.components[i]
		srcStride := c.blocksPerLine * 8
		sx := d.hMax / c.h
		sy := d.vMax / c.v

		switch {
		case sx == 1 && sy == 1:
			copy(c.plane, c.samples[:fullWidth*d.mcuHeight])
		case sx == 2 && sy == 1:
			upsample2x1(c.plane, c.samples, srcStride, fullWidth, d.mcuHeight)
		case sx == 1 && sy == 2:
			upsample1x2(c.plane, c.samples, srcStride, fullWidth, d.mcuHeight)
		case sx == 2 && sy == 2:
			upsample2x2(c.plane, c.samples, srcStride, fullWidth, d.mcuHeight)
		default:
			upsampleGeneric(c.plane, c.samples, srcStride, fullWidth, d.mcuHeight, sx, sy)
		}
	}
}

// upsample2x1 doubles each sample horizontally.
func upsample2x1(dst, src []byte, srcStride, dstWidth, rows int) {
	for y := 0; y < rows; y++ {
		srcRow := src[y*srcStride:]
		dstRow := dst[y*dstWidth : (y+1)*dstWidth]
		for x := 0; x < dstWidth/2; x++ {
			v := srcRow[x]
			dstRow[2*x] = v
			dstRow[2*x+1] = v
		}
	}
}

// upsample1x2 doubles each row vertically.
func upsample1x2(dst, src []byte, srcStride, dstWidth, rows int) {
	for y := 0; y < rows; y++ {
		srcRow := src[(y/2)*srcStride : (y/2)*srcStride+dstWidth]
		copy(dst[y*dstWidth:(y+1)*dstWidth], srcRow)
	}
}

// upsample2x2 replicates each sample into a 2x2 quad, expanding quarter
// blocks into full blocks.
func upsample2x2(dst, src []byte, srcStride, dstWidth, rows int) {
	for y := 0; y < rows; y++ {
		srcRow := src[(y/2)*srcStride:]
		dstRow := dst[y*dstWidth : (y+1)*dstWidth]
		for x := 0; x < dstWidth/2; x++ {
			v := srcRow[x]
			dstRow[2*x] = v
			dstRow[2*x+1] = v
		}
	}
}

// upsampleGeneric is the per-pixel nearest neighbor fallback.
func upsampleGeneric(dst, src []byte, srcStride, dstWidth, rows, sx, sy int) {
	for y := 0; y < rows; y++ {
		srcRow := src[(y/sy)*srcStride:]
		dstRow := dst[y*dstWidth : (y+1)*dstWidth]
		for x := 0; x < dstWidth; x++ {
			dstRow[x] = srcRow[x/sx]
		}
	}
}
