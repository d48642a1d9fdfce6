/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/internal/jpeg"
)

// PdfImage is a decoded image XObject ready for the canvas: interleaved
// RGBA rows at the source resolution.
type PdfImage struct {
	Width  int
	Height int

	// RGBA holds 4 bytes per pixel in row-major order.
	RGBA []byte
}

// NewImageFromJPEG decodes a DCTDecode payload and converts it to RGBA
// through the given color space sampler. A nil sampler uses the decoder's
// native color interpretation.
func NewImageFromJPEG(data []byte, sampler Sampler) (*PdfImage, error) {
	decoder := jpeg.NewDecoder(data)
	width, height := decoder.Width(), decoder.Height()
	if err := decoder.Err(); err != nil {
		return nil, err
	}

	out := &PdfImage{
		Width:  width,
		Height: height,
		RGBA:   make([]byte, width*height*4),
	}
	components := decoder.OutputComponents()
	row := make([]byte, width*components)
	comps := make([]float64, components)

	for y := 0; y < height; y++ {
		if !decoder.TryReadRow(row) {
			if err := decoder.Err(); err != nil {
				common.Log.Debug("ERROR: image decode stopped at row %d: %v", y, err)
				return nil, err
			}
			break
		}
		dst := out.RGBA[y*width*4:]
		for x := 0; x < width; x++ {
			if sampler != nil {
				for c := 0; c < components; c++ {
					comps[c] = float64(row[x*components+c]) / 255
				}
				rgba := sampler(comps)
				copy(dst[x*4:], rgba[:])
				continue
			}
			switch components {
			case 1:
				v := row[x]
				dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = v, v, v, 255
			case 3:
				dst[x*4] = row[x*3]
				dst[x*4+1] = row[x*3+1]
				dst[x*4+2] = row[x*3+2]
				dst[x*4+3] = 255
			case 4:
				r, g, b, _ := NewPdfColorspaceDeviceCMYK().toSRGBBytes(
					row[x*4], row[x*4+1], row[x*4+2], row[x*4+3])
				dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = r, g, b, 255
			}
		}
	}
	return out, nil
}

// toSRGBBytes converts raw CMYK bytes without the float tuple detour.
func (cs *PdfColorspaceDeviceCMYK) toSRGBBytes(c, m, y, k byte) (uint8, uint8, uint8, error) {
	return cs.ToSRGB([]float64{
		float64(c) / 255, float64(m) / 255, float64(y) / 255, float64(k) / 255,
	})
}

// ToGoImage exposes the rows as an image.Image.
func (img *PdfImage) ToGoImage() image.Image {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.RGBA)
	return out
}

// Resample scales the image to the given size with Catmull-Rom filtering,
// for canvases that rasterize at a different resolution than the source.
func (img *PdfImage) Resample(width, height int) *PdfImage {
	if width <= 0 || height <= 0 || (width == img.Width && height == img.Height) {
		return img
	}
	src := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(src.Pix, img.RGBA)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return &PdfImage{
		Width:  width,
		Height: height,
		RGBA:   dst.Pix,
	}
}

// At returns the pixel color at (x, y), mainly for tests.
func (img *PdfImage) At(x, y int) color.RGBA {
	off := (y*img.Width + x) * 4
	return color.RGBA{
		R: img.RGBA[off],
		G: img.RGBA[off+1],
		B: img.RGBA[off+2],
		A: img.RGBA[off+3],
	}
}
