/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package jpeg

// convertBand color-converts the upsampled planes of the current band into
// the interleaved output buffer. The conversion is chosen from the
// component count and the APP14 Adobe transform code.
func (d *Decoder) convertBand() {
	width := d.mcuCols * d.mcuWidth
	rows := d.mcuHeight

	switch len(d.components) {
	case 1:
		copy(d.band, d.components[0].plane[:width*rows])
	case 3:
		if d.hasAdobe && d.adobeTransform == 0 {
			d.packRGB(width, rows)
		} else {
			d.convertYCbCr(width, rows)
		}
	case 4:
		// YCCK when the Adobe marker says transform 2, CMYK direct
		// otherwise. Writers that omit the marker store CMYK direct.
		if d.hasAdobe && d.adobeTransform == 2 {
			d.convertYCCK(width, rows)
		} else {
			d.packCMYK(width, rows)
		}
	}
}

// ycbcrToRGB is the ITU T.871 conversion:
//
//	R = Y + 1.402 (Cr-128)
//	G = Y - 0.344136 (Cb-128) - 0.714136 (Cr-128)
//	B = Y + 1.772 (Cb-128)
func ycbcrToRGB(y, cb, cr byte) (byte, byte, byte) {
	yy := float32(y)
	cbf := float32(cb) - 128
	crf := float32(cr) - 128

	r := yy + 1.402*crf
	g := yy - 0.344136*cbf - 0.714136*crf
	b := yy + 1.772*cbf
	return clamp8(r), clamp8(g), clamp8(b)
}

func clamp8(v float32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}

func (d *Decoder) convertYCbCr(width, rows int) {
	yp := d.components[0].plane
	cbp := d.components[1].plane
	crp := d.components[2].plane
	for y := 0; y < rows; y++ {
		base := y * width
		out := d.band[base*3:]
		for x := 0; x < width; x++ {
			r, g, b := ycbcrToRGB(yp[base+x], cbp[base+x], crp[base+x])
			out[3*x] = r
			out[3*x+1] = g
			out[3*x+2] = b
		}
	}
}

// packRGB interleaves three pass-through components.
func (d *Decoder) packRGB(width, rows int) {
	rp := d.components[0].plane
	gp := d.components[1].plane
	bp := d.components[2].plane
	for y := 0; y < rows; y++ {
		base := y * width
		out := d.band[base*3:]
		for x := 0; x < width; x++ {
			out[3*x] = rp[base+x]
			out[3*x+1] = gp[base+x]
			out[3*x+2] = bp[base+x]
		}
	}
}

// packCMYK interleaves four components directly. Adobe CMYK JPEGs store
// inverted values; the inversion is left to the color engine, which knows
// the Decode array of the image dictionary.
func (d *Decoder) packCMYK(width, rows int) {
	cp := d.components[0].plane
	mp := d.components[1].plane
	yp := d.components[2].plane
	kp := d.components[3].plane
	for y := 0; y < rows; y++ {
		base := y * width
		out := d.band[base*4:]
		for x := 0; x < width; x++ {
			out[4*x] = cp[base+x]
			out[4*x+1] = mp[base+x]
			out[4*x+2] = yp[base+x]
			out[4*x+3] = kp[base+x]
		}
	}
}

// convertYCCK converts YCCK to CMYK: the YCbCr channels invert into CMY,
// K passes through.
func (d *Decoder) convertYCCK(width, rows int) {
	yp := d.components[0].plane
	cbp := d.components[1].plane
	crp := d.components[2].plane
	kp := d.components[3].plane
	for y := 0; y < rows; y++ {
		base := y * width
		out := d.band[base*4:]
		for x := 0; x < width; x++ {
			r, g, b := ycbcrToRGB(yp[base+x], cbp[base+x], crp[base+x])
			out[4*x] = 255 - r
			out[4*x+1] = 255 - g
			out[4*x+2] = 255 - b
			out[4*x+3] = kp[base+x]
		}
	}
}
